package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/services"
)

// latestPropertiesCount is how many recent properties the dashboard shows.
const latestPropertiesCount = 3

// RestDashboardHandler handles the dashboard aggregate endpoint.
type RestDashboardHandler struct {
	queryService services.IQueryService
}

// NewRestDashboardHandler creates a new RestDashboardHandler.
func NewRestDashboardHandler(queryService services.IQueryService) *RestDashboardHandler {
	return &RestDashboardHandler{queryService: queryService}
}

// GetDashboard handles GET /v1/dashboard
func (h *RestDashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.queryService.GetDashboardStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}

	latest, err := h.queryService.LatestProperties(c.Request.Context(), latestPropertiesCount)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load latest properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":             stats,
		"latest_properties": latest,
	})
}
