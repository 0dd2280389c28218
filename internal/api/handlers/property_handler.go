package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/models"
	"rentdesk/internal/services"
)

// RestPropertyHandler handles REST requests for properties, including the
// search endpoint and media uploads.
type RestPropertyHandler struct {
	propertyService services.IPropertyService
	queryService    services.IQueryService
	mediaService    services.IMediaService
}

// NewRestPropertyHandler creates a new RestPropertyHandler.
func NewRestPropertyHandler(propertyService services.IPropertyService, queryService services.IQueryService, mediaService services.IMediaService) *RestPropertyHandler {
	return &RestPropertyHandler{
		propertyService: propertyService,
		queryService:    queryService,
		mediaService:    mediaService,
	}
}

// CreateProperty handles POST /v1/property
func (h *RestPropertyHandler) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.propertyService.CreateProperty(c.Request.Context(), &property); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": property})
}

// ListProperties handles GET /v1/property
func (h *RestPropertyHandler) ListProperties(c *gin.Context) {
	properties, err := h.propertyService.ListProperties(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": properties})
}

// GetPropertyByID handles GET /v1/property/:id
func (h *RestPropertyHandler) GetPropertyByID(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	property, found, err := h.propertyService.FindPropertyByID(c.Request.Context(), propertyID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": property})
}

// UpdateProperty handles PUT /v1/property/:id
func (h *RestPropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, found, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, updates)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteProperty handles DELETE /v1/property/:id
func (h *RestPropertyHandler) DeleteProperty(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": removed})
}

// SearchProperties handles GET /v1/property/search
func (h *RestPropertyHandler) SearchProperties(c *gin.Context) {
	search := services.PropertySearch{
		Term:         c.Query("q"),
		PropertyType: c.Query("type"),
		Location:     c.Query("location"),
		Availability: c.Query("availability"),
	}

	if minStr := c.Query("min_price"); minStr != "" {
		if v, err := strconv.ParseFloat(minStr, 64); err == nil && v >= 0 {
			search.MinPrice = v
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if v, err := strconv.ParseFloat(maxStr, 64); err == nil && v > 0 {
			search.MaxPrice = v
		}
	}

	properties, err := h.queryService.SearchProperties(c.Request.Context(), search)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
}

// UploadMedia handles POST /v1/property/:id/media with a multipart file. The
// file is stored inline as a data URL on the property.
func (h *RestPropertyHandler) UploadMedia(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	upload := services.MediaUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}

	url, err := h.mediaService.UploadMedia(c.Request.Context(), propertyID, upload)
	if err != nil {
		if errors.Is(err, services.ErrOversizedUpload) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the upload size limit"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required"`
}

// PresignMedia handles POST /v1/property/:id/media/presign for direct-to-S3
// uploads.
func (h *RestPropertyHandler) PresignMedia(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	putURL, objectURL, err := h.mediaService.PresignUpload(c.Request.Context(), propertyID, req.Filename, req.ContentType, req.Size)
	if err != nil {
		if errors.Is(err, services.ErrOversizedUpload) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the upload size limit"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"upload_url": putURL, "object_url": objectURL})
}
