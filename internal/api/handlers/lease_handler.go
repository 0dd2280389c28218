package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/models"
	"rentdesk/internal/services"
)

// RestLeaseHandler handles REST requests for leases and their payment ledger.
type RestLeaseHandler struct {
	leaseService services.ILeaseService
}

// NewRestLeaseHandler creates a new RestLeaseHandler.
func NewRestLeaseHandler(leaseService services.ILeaseService) *RestLeaseHandler {
	return &RestLeaseHandler{leaseService: leaseService}
}

// CreateLease handles POST /v1/lease
func (h *RestLeaseHandler) CreateLease(c *gin.Context) {
	var lease models.Lease
	if err := c.ShouldBindJSON(&lease); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.leaseService.CreateLease(c.Request.Context(), &lease); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lease"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": lease})
}

// ListLeases handles GET /v1/lease
func (h *RestLeaseHandler) ListLeases(c *gin.Context) {
	leases, err := h.leaseService.ListLeases(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": leases})
}

// GetLeaseByID handles GET /v1/lease/:id
func (h *RestLeaseHandler) GetLeaseByID(c *gin.Context) {
	leaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lease, found, err := h.leaseService.FindLeaseByID(c.Request.Context(), leaseID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lease"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": lease})
}

// UpdateLease handles PUT /v1/lease/:id
func (h *RestLeaseHandler) UpdateLease(c *gin.Context) {
	leaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, found, err := h.leaseService.UpdateLease(c.Request.Context(), leaseID, updates)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lease"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteLease handles DELETE /v1/lease/:id
func (h *RestLeaseHandler) DeleteLease(c *gin.Context) {
	leaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.leaseService.DeleteLease(c.Request.Context(), leaseID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lease"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": removed})
}

// AddPayment handles POST /v1/lease/:id/payment
func (h *RestLeaseHandler) AddPayment(c *gin.Context) {
	leaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	added, err := h.leaseService.AddPayment(c.Request.Context(), leaseID, payment)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add payment"})
		return
	}
	if added == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": added})
}

// UpdatePayment handles PUT /v1/lease/:id/payment/:payment_id
func (h *RestLeaseHandler) UpdatePayment(c *gin.Context) {
	leaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "payment_id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, found, err := h.leaseService.UpdatePayment(c.Request.Context(), leaseID, paymentID, updates)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// AddDocument handles POST /v1/lease/:id/document
func (h *RestLeaseHandler) AddDocument(c *gin.Context) {
	leaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var document models.Document
	if err := c.ShouldBindJSON(&document); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	added, err := h.leaseService.AddDocument(c.Request.Context(), leaseID, document)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add document"})
		return
	}
	if added == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lease not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": added})
}

// CheckOverduePayments handles POST /v1/payments/check-overdue
func (h *RestLeaseHandler) CheckOverduePayments(c *gin.Context) {
	flipped, err := h.leaseService.CheckOverduePayments(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check overdue payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"overdue_found": flipped})
}
