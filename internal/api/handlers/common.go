package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/api/middleware"
	"rentdesk/internal/utils"
)

// parseIDParam parses a SixID path parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (utils.SixID, bool) {
	id, err := utils.ParseSixID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return utils.SixID{}, false
	}
	return id, true
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (utils.SixID, bool) {
	raw, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return utils.SixID{}, false
	}
	id, err := utils.ParseSixID(raw.(string))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user id in token"})
		return utils.SixID{}, false
	}
	return id, true
}
