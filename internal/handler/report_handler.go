package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/service"
	"github.com/tiUlisses/securityvision-presence-backend/pkg/response"
)

// ReportHandler handles HTTP requests for presence reports.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// writeError maps the report error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Scope not found", err)
	case errors.Is(err, models.ErrInvalidWindow):
		response.Error(c, http.StatusBadRequest, "Invalid time window", err)
	case errors.Is(err, models.ErrInvalidParameter):
		response.Error(c, http.StatusBadRequest, "Invalid parameter", err)
	case errors.Is(err, models.ErrUpstreamUnavailable):
		response.Error(c, http.StatusBadGateway, "Session store unavailable", err)
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to compute report", err)
	}
}

func bindReportFilter(c *gin.Context) (models.ReportFilter, bool) {
	var f models.ReportFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return f, false
	}
	return f, true
}

// GetOverview handles GET /api/v1/overview
func (h *ReportHandler) GetOverview(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetOverview(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetPersonSummary handles GET /api/v1/people/:id/summary
func (h *ReportHandler) GetPersonSummary(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetPersonSummary(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetGroupSummary handles GET /api/v1/groups/:id/summary
func (h *ReportHandler) GetGroupSummary(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetGroupSummary(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetPersonDistribution handles GET /api/v1/people/:id/distribution
func (h *ReportHandler) GetPersonDistribution(c *gin.Context) {
	h.subjectDistribution(c, models.ScopePerson)
}

// GetGroupDistribution handles GET /api/v1/groups/:id/distribution
func (h *ReportHandler) GetGroupDistribution(c *gin.Context) {
	h.subjectDistribution(c, models.ScopeGroup)
}

func (h *ReportHandler) subjectDistribution(c *gin.Context, scopeType string) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetSubjectDistribution(c.Request.Context(), scopeType, c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetPersonHourByGateway handles GET /api/v1/people/:id/hour-by-gateway
func (h *ReportHandler) GetPersonHourByGateway(c *gin.Context) {
	h.subjectHourByGateway(c, models.ScopePerson)
}

// GetGroupHourByGateway handles GET /api/v1/groups/:id/hour-by-gateway
func (h *ReportHandler) GetGroupHourByGateway(c *gin.Context) {
	h.subjectHourByGateway(c, models.ScopeGroup)
}

func (h *ReportHandler) subjectHourByGateway(c *gin.Context, scopeType string) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetHourByGateway(c.Request.Context(), scopeType, c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetPersonAlerts handles GET /api/v1/people/:id/alerts
func (h *ReportHandler) GetPersonAlerts(c *gin.Context) {
	h.subjectAlerts(c, models.ScopePerson)
}

// GetGroupAlerts handles GET /api/v1/groups/:id/alerts
func (h *ReportHandler) GetGroupAlerts(c *gin.Context) {
	h.subjectAlerts(c, models.ScopeGroup)
}

func (h *ReportHandler) subjectAlerts(c *gin.Context, scopeType string) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetSubjectAlerts(c.Request.Context(), scopeType, c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetGatewaySummary handles GET /api/v1/gateways/:id/summary
func (h *ReportHandler) GetGatewaySummary(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetGatewaySummary(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetGatewayTimeOfDay handles GET /api/v1/gateways/:id/time-of-day
func (h *ReportHandler) GetGatewayTimeOfDay(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetGatewayTimeOfDay(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetGatewayOccupancy handles GET /api/v1/gateways/:id/occupancy
func (h *ReportHandler) GetGatewayOccupancy(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetGatewayOccupancy(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetGatewayAlerts handles GET /api/v1/gateways/:id/alerts
func (h *ReportHandler) GetGatewayAlerts(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetGatewayAlerts(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetBuildingSummary handles GET /api/v1/buildings/:id/summary
func (h *ReportHandler) GetBuildingSummary(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetBuildingSummary(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetBuildingDistribution handles GET /api/v1/buildings/:id/distribution
func (h *ReportHandler) GetBuildingDistribution(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetBuildingDistribution(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}

// GetBuildingAlerts handles GET /api/v1/buildings/:id/alerts
func (h *ReportHandler) GetBuildingAlerts(c *gin.Context) {
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}
	rep, err := h.service.GetBuildingAlerts(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, rep)
}
