package models

import (
	"time"

	"rentdesk/internal/utils"
)

// LeaseStatus is the lifecycle state of a lease agreement.
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusExpired    LeaseStatus = "expired"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

// Lease binds a tenant to a property for a period and carries its own payment
// ledger and document attachments.
type Lease struct {
	Base
	PropertyID      utils.SixID `json:"property_id"`
	TenantID        utils.SixID `json:"tenant_id"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         time.Time   `json:"end_date"`
	RentAmount      float64     `json:"rent_amount"`
	SecurityDeposit float64     `json:"security_deposit"`
	Status          LeaseStatus `json:"status"`
	Payments        []Payment   `json:"payments"`
	Documents       []Document  `json:"documents"`
}
