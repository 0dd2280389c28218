package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/models"
	"rentdesk/internal/services"
)

// RestTenantHandler handles REST requests for tenants.
type RestTenantHandler struct {
	tenantService services.ITenantService
}

// NewRestTenantHandler creates a new RestTenantHandler.
func NewRestTenantHandler(tenantService services.ITenantService) *RestTenantHandler {
	return &RestTenantHandler{tenantService: tenantService}
}

// CreateTenant handles POST /v1/tenant
func (h *RestTenantHandler) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.tenantService.CreateTenant(c.Request.Context(), &tenant); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tenant})
}

// ListTenants handles GET /v1/tenant
func (h *RestTenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tenants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tenants})
}

// GetTenantByID handles GET /v1/tenant/:id
func (h *RestTenantHandler) GetTenantByID(c *gin.Context) {
	tenantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tenant, found, err := h.tenantService.FindTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tenant"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenant})
}

// UpdateTenant handles PUT /v1/tenant/:id
func (h *RestTenantHandler) UpdateTenant(c *gin.Context) {
	tenantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, found, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, updates)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteTenant handles DELETE /v1/tenant/:id
func (h *RestTenantHandler) DeleteTenant(c *gin.Context) {
	tenantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.tenantService.DeleteTenant(c.Request.Context(), tenantID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": removed})
}

// AddDocument handles POST /v1/tenant/:id/document
func (h *RestTenantHandler) AddDocument(c *gin.Context) {
	tenantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var document models.Document
	if err := c.ShouldBindJSON(&document); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	added, err := h.tenantService.AddDocument(c.Request.Context(), tenantID, document)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add document"})
		return
	}
	if added == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": added})
}

// AddPayment handles POST /v1/tenant/:id/payment
func (h *RestTenantHandler) AddPayment(c *gin.Context) {
	tenantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	added, err := h.tenantService.AddPayment(c.Request.Context(), tenantID, payment)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add payment"})
		return
	}
	if added == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": added})
}
