package models

import (
	"time"

	"rentdesk/internal/utils"
)

// PaymentStatus is the lifecycle state of a single ledger payment.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// Payment is the canonical ledger entry used by both the lease and tenant
// ledgers. Method, ReceiptURL and Notes are optional; the two ledgers remain
// independent of each other.
type Payment struct {
	ID         utils.SixID   `json:"id"`
	Date       time.Time     `json:"date"` // due date for pending payments
	Amount     float64       `json:"amount"`
	Status     PaymentStatus `json:"status"`
	Method     string        `json:"method,omitempty"`
	ReceiptURL string        `json:"receipt_url,omitempty"`
	Notes      string        `json:"notes,omitempty"`
}

// Document is an attachment reference stored with a tenant or lease.
type Document struct {
	ID   utils.SixID `json:"id"`
	Name string      `json:"name"`
	URL  string      `json:"url"`
	Type string      `json:"type"`
}
