package models

import (
	"time"

	"rentdesk/internal/utils"
)

// TransactionType classifies what an online payment was for.
type TransactionType string

const (
	TransactionTypeRent    TransactionType = "rent"
	TransactionTypeDeposit TransactionType = "deposit"
	TransactionTypeSale    TransactionType = "sale"
	TransactionTypeFee     TransactionType = "fee"
	TransactionTypeOther   TransactionType = "other"
)

// PaymentMethod enumerates the simulated gateway methods.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodOnline       PaymentMethod = "online"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheck        PaymentMethod = "check"
)

// TransactionStatus is the gateway-side state of an online payment.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an entry in the online-payment ledger. The ledger is kept
// newest-first and is not cross-referenced with the lease or tenant ledgers.
type Transaction struct {
	Base
	TenantID        utils.SixID       `json:"tenant_id"`
	PropertyID      utils.SixID       `json:"property_id"`
	LeaseID         *utils.SixID      `json:"lease_id,omitempty"`
	Amount          float64           `json:"amount"`
	Date            time.Time         `json:"date"`
	TransactionType TransactionType   `json:"transaction_type"`
	PaymentMethod   PaymentMethod     `json:"payment_method"`
	Status          TransactionStatus `json:"status"`
	ReceiptURL      string            `json:"receipt_url,omitempty"`
	Reference       string            `json:"reference,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}
