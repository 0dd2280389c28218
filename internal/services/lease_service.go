package services

import (
	"context"
	"fmt"

	"rentdesk/internal/models"
	"rentdesk/internal/notify"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// ILeaseService defines the interface for lease-related operations, including
// the per-lease payment ledger and the overdue sweep. Lease lifecycle changes
// feed the property status synchronizer alongside tenant application changes:
// an active lease marks its property rented, and ending one releases the
// property when no other active lease or approved tenant holds it.
type ILeaseService interface {
	CreateLease(ctx context.Context, lease *models.Lease) error
	ListLeases(ctx context.Context) ([]models.Lease, error)
	FindLeaseByID(ctx context.Context, leaseID utils.SixID) (*models.Lease, bool, error)
	UpdateLease(ctx context.Context, leaseID utils.SixID, updates map[string]interface{}) (*models.Lease, bool, error)
	DeleteLease(ctx context.Context, leaseID utils.SixID) (bool, error)
	AddPayment(ctx context.Context, leaseID utils.SixID, payment models.Payment) (*models.Payment, error)
	UpdatePayment(ctx context.Context, leaseID, paymentID utils.SixID, updates map[string]interface{}) (*models.Payment, bool, error)
	AddDocument(ctx context.Context, leaseID utils.SixID, document models.Document) (*models.Document, error)
	CheckOverduePayments(ctx context.Context) (bool, error)
}

// leaseService implements ILeaseService.
type leaseService struct {
	leases          *store.Collection[models.Lease, *models.Lease]
	tenants         *store.Collection[models.Tenant, *models.Tenant]
	propertyService IPropertyService
	sink            notify.Sink
}

// NewLeaseService creates a new LeaseService.
func NewLeaseService(stores *store.Stores, propertyService IPropertyService, sink notify.Sink) ILeaseService {
	return &leaseService{
		leases:          stores.Leases,
		tenants:         stores.Tenants,
		propertyService: propertyService,
		sink:            sink,
	}
}

// CreateLease persists a new lease. A lease created in the active state marks
// its property as rented.
func (s *leaseService) CreateLease(ctx context.Context, lease *models.Lease) error {
	if lease.Payments == nil {
		lease.Payments = []models.Payment{}
	}
	if lease.Documents == nil {
		lease.Documents = []models.Document{}
	}

	if err := s.leases.Create(ctx, lease); err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	if lease.Status == models.LeaseStatusActive && lease.PropertyID != (utils.SixID{}) {
		if err := s.propertyService.MarkPropertyAsRented(ctx, lease.PropertyID); err != nil {
			return err
		}
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Lease added",
		"The lease has been successfully created.")
	return nil
}

// ListLeases returns all leases in stored order.
func (s *leaseService) ListLeases(ctx context.Context) ([]models.Lease, error) {
	return s.leases.List(ctx)
}

// FindLeaseByID returns a lease by id; absence is not an error.
func (s *leaseService) FindLeaseByID(ctx context.Context, leaseID utils.SixID) (*models.Lease, bool, error) {
	return s.leases.Get(ctx, leaseID)
}

// UpdateLease shallow-merges the given fields into the lease. A status change
// to active marks the property rented; a change to expired or terminated
// releases it when nothing else holds it. An unknown id is a silent no-op.
func (s *leaseService) UpdateLease(ctx context.Context, leaseID utils.SixID, updates map[string]interface{}) (*models.Lease, bool, error) {
	prior, found, err := s.leases.Get(ctx, leaseID)
	if err != nil {
		return nil, false, err
	}

	updated, merged, err := s.leases.Update(ctx, leaseID, updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update lease %s: %w", leaseID.String(), err)
	}

	if found && merged {
		if newStatus, ok := stringField(updates, "status"); ok {
			switch models.LeaseStatus(newStatus) {
			case models.LeaseStatusActive:
				if err := s.propertyService.MarkPropertyAsRented(ctx, prior.PropertyID); err != nil {
					return nil, false, err
				}
			case models.LeaseStatusExpired, models.LeaseStatusTerminated:
				if err := s.releaseIfUnoccupied(ctx, prior.PropertyID, leaseID); err != nil {
					return nil, false, err
				}
			}
		}
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Lease updated",
		"The lease has been successfully updated.")
	return updated, merged, nil
}

// DeleteLease removes the lease. Deleting an active lease releases the
// property when nothing else holds it. An unknown id is a silent no-op.
func (s *leaseService) DeleteLease(ctx context.Context, leaseID utils.SixID) (bool, error) {
	prior, found, err := s.leases.Get(ctx, leaseID)
	if err != nil {
		return false, err
	}

	removed, err := s.leases.Remove(ctx, leaseID)
	if err != nil {
		return false, fmt.Errorf("failed to delete lease %s: %w", leaseID.String(), err)
	}

	if found && prior.Status == models.LeaseStatusActive {
		if err := s.releaseIfUnoccupied(ctx, prior.PropertyID, leaseID); err != nil {
			return false, err
		}
	}

	notify.Send(ctx, s.sink, notify.SeverityDestructive, "Lease deleted",
		"The lease has been successfully deleted.")
	return removed, nil
}

// releaseIfUnoccupied marks the property available unless another active
// lease or an approved tenant still holds it.
func (s *leaseService) releaseIfUnoccupied(ctx context.Context, propertyID, excludeLeaseID utils.SixID) error {
	leases, err := s.leases.List(ctx)
	if err != nil {
		return err
	}
	for i := range leases {
		l := &leases[i]
		if l.ID != excludeLeaseID && l.PropertyID == propertyID && l.Status == models.LeaseStatusActive {
			return nil
		}
	}

	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return err
	}
	if hasOtherApprovedTenant(tenants, utils.SixID{}, propertyID) {
		return nil
	}

	return s.propertyService.MarkPropertyAsAvailable(ctx, propertyID)
}

// AddPayment appends a payment with a generated id to the lease ledger. A
// payment recorded directly as overdue raises a destructive notification. An
// unknown lease id is a silent no-op.
func (s *leaseService) AddPayment(ctx context.Context, leaseID utils.SixID, payment models.Payment) (*models.Payment, error) {
	lease, found, err := s.leases.Get(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	payment.ID = utils.NewSixID()
	payments := append(lease.Payments, payment)

	if _, _, err := s.leases.Update(ctx, leaseID, map[string]interface{}{"payments": payments}); err != nil {
		return nil, fmt.Errorf("failed to add payment to lease %s: %w", leaseID.String(), err)
	}

	leaseRef := leaseID.String()[:8]
	if payment.Status == models.PaymentStatusOverdue {
		notify.Send(ctx, s.sink, notify.SeverityDestructive, "Overdue Payment",
			fmt.Sprintf("A payment of ₹%s is overdue for lease #%s", formatAmount(payment.Amount), leaseRef))
	} else {
		notify.Send(ctx, s.sink, notify.SeverityInfo, "Payment recorded",
			fmt.Sprintf("A payment of ₹%s has been recorded for lease #%s", formatAmount(payment.Amount), leaseRef))
	}

	return &payment, nil
}

// UpdatePayment shallow-merges the given fields into one ledger entry. The
// payment id is immutable. An unknown lease or payment id is a silent no-op.
func (s *leaseService) UpdatePayment(ctx context.Context, leaseID, paymentID utils.SixID, updates map[string]interface{}) (*models.Payment, bool, error) {
	lease, found, err := s.leases.Get(ctx, leaseID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	idx := -1
	for i := range lease.Payments {
		if lease.Payments[i].ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false, nil
	}

	merged, err := store.MergeRecord(lease.Payments[idx], updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to merge payment update for lease %s: %w", leaseID.String(), err)
	}
	merged.ID = paymentID
	lease.Payments[idx] = merged

	if _, _, err := s.leases.Update(ctx, leaseID, map[string]interface{}{"payments": lease.Payments}); err != nil {
		return nil, false, fmt.Errorf("failed to update payment for lease %s: %w", leaseID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Payment updated",
		"The payment information has been successfully updated.")
	return &merged, true, nil
}

// AddDocument appends a document with a generated id to the lease's
// attachments. An unknown lease id is a silent no-op.
func (s *leaseService) AddDocument(ctx context.Context, leaseID utils.SixID, document models.Document) (*models.Document, error) {
	lease, found, err := s.leases.Get(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	document.ID = utils.NewSixID()
	documents := append(lease.Documents, document)

	if _, _, err := s.leases.Update(ctx, leaseID, map[string]interface{}{"documents": documents}); err != nil {
		return nil, fmt.Errorf("failed to add document to lease %s: %w", leaseID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Document added",
		"The document has been successfully added to the lease.")
	return &document, nil
}

// CheckOverduePayments flips every pending lease payment whose due date has
// passed to overdue and raises one aggregate destructive notification when
// anything changed. Already-overdue payments are untouched, so the sweep is
// idempotent. It reports whether any payment was flipped.
func (s *leaseService) CheckOverduePayments(ctx context.Context) (bool, error) {
	leases, err := s.leases.List(ctx)
	if err != nil {
		return false, err
	}

	now := utils.Now()
	hasOverdue := false

	for i := range leases {
		lease := &leases[i]
		changed := false
		for j := range lease.Payments {
			p := &lease.Payments[j]
			if p.Status == models.PaymentStatusPending && p.Date.Before(now) {
				p.Status = models.PaymentStatusOverdue
				changed = true
			}
		}
		if !changed {
			continue
		}
		if _, _, err := s.leases.Update(ctx, lease.ID, map[string]interface{}{"payments": lease.Payments}); err != nil {
			return hasOverdue, fmt.Errorf("failed to persist overdue payments for lease %s: %w", lease.ID.String(), err)
		}
		hasOverdue = true
	}

	if hasOverdue {
		notify.Send(ctx, s.sink, notify.SeverityDestructive, "Overdue Payments Detected",
			"Some payments are now overdue. Please check the payments section.")
	}

	return hasOverdue, nil
}
