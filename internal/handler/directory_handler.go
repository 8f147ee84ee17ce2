package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiUlisses/securityvision-presence-backend/internal/service"
	"github.com/tiUlisses/securityvision-presence-backend/pkg/response"
)

// DirectoryHandler handles HTTP requests for the location and group
// directory.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(service *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// ListBuildings handles GET /api/v1/buildings
func (h *DirectoryHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.service.ListBuildings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list buildings", err)
		return
	}
	response.Success(c, buildings)
}

// ListDevices handles GET /api/v1/gateways
func (h *DirectoryHandler) ListDevices(c *gin.Context) {
	devices, err := h.service.ListDevices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list gateways", err)
		return
	}
	response.Success(c, devices)
}

// ListPeople handles GET /api/v1/people
func (h *DirectoryHandler) ListPeople(c *gin.Context) {
	people, err := h.service.ListPeople(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list people", err)
		return
	}
	response.Success(c, people)
}

// ListGroups handles GET /api/v1/groups
func (h *DirectoryHandler) ListGroups(c *gin.Context) {
	groups, err := h.service.ListGroups(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list groups", err)
		return
	}
	response.Success(c, groups)
}
