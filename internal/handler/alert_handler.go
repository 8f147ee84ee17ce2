package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/service"
	"github.com/tiUlisses/securityvision-presence-backend/pkg/response"
)

// AlertHandler handles HTTP requests for raw alert events.
type AlertHandler struct {
	service *service.AlertService
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(service *service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

// ListAlerts handles GET /api/v1/alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var f models.AlertFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	events, err := h.service.ListAlerts(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, events)
}
