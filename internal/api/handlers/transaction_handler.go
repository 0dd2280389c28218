package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"rentdesk/internal/models"
	"rentdesk/internal/services"
)

// RestTransactionHandler handles REST requests for the online-payment ledger.
type RestTransactionHandler struct {
	transactionService services.ITransactionService
}

// NewRestTransactionHandler creates a new RestTransactionHandler.
func NewRestTransactionHandler(transactionService services.ITransactionService) *RestTransactionHandler {
	return &RestTransactionHandler{transactionService: transactionService}
}

// ListTransactions handles GET /v1/transaction (newest first)
func (h *RestTransactionHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

// CreateTransaction handles POST /v1/transaction
func (h *RestTransactionHandler) CreateTransaction(c *gin.Context) {
	var transaction models.Transaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.transactionService.CreateTransaction(c.Request.Context(), &transaction); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": transaction})
}

// GetTransactionByID handles GET /v1/transaction/:id
func (h *RestTransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	transaction, found, err := h.transactionService.FindTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction})
}

// DeleteTransaction handles DELETE /v1/transaction/:id
func (h *RestTransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": removed})
}

// ProcessPayment handles POST /v1/transaction/process. The request blocks for
// the simulated gateway settlement delay.
func (h *RestTransactionHandler) ProcessPayment(c *gin.Context) {
	var transaction models.Transaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.transactionService.ProcessOnlinePayment(c.Request.Context(), &transaction)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction, "receipt_number": receipt})
}

// GenerateReceipt handles POST /v1/transaction/:id/receipt
func (h *RestTransactionHandler) GenerateReceipt(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receiptURL, err := h.transactionService.GenerateReceipt(c.Request.Context(), transactionID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}
	if receiptURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt_url": receiptURL})
}
