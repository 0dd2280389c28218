package models

import (
	"rentdesk/internal/utils"
)

// ApplicationStatus is the state of a tenant's rental application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Tenant represents a rental applicant or current occupant. A tenant
// references at most one property at a time; the zero PropertyID means
// unassigned.
type Tenant struct {
	Base
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	Documents         []Document        `json:"documents"`
	PropertyID        utils.SixID       `json:"property_id"`
	Payments          []Payment         `json:"payments"` // independent of the lease ledger
}

// Assigned reports whether the tenant currently references a property.
func (t *Tenant) Assigned() bool {
	return t.PropertyID != (utils.SixID{})
}
