package services

import (
	"context"
	"fmt"

	"rentdesk/internal/models"
	"rentdesk/internal/notify"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// ITenantService defines the interface for tenant-related operations. Tenant
// mutations feed the property status synchronizer: application approvals mark
// the referenced property rented, and rejections, deletions and reassignments
// release it when no other approved tenant remains.
type ITenantService interface {
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	FindTenantByID(ctx context.Context, tenantID utils.SixID) (*models.Tenant, bool, error)
	UpdateTenant(ctx context.Context, tenantID utils.SixID, updates map[string]interface{}) (*models.Tenant, bool, error)
	DeleteTenant(ctx context.Context, tenantID utils.SixID) (bool, error)
	AddDocument(ctx context.Context, tenantID utils.SixID, document models.Document) (*models.Document, error)
	AddPayment(ctx context.Context, tenantID utils.SixID, payment models.Payment) (*models.Payment, error)
}

// tenantService implements ITenantService.
type tenantService struct {
	tenants         *store.Collection[models.Tenant, *models.Tenant]
	propertyService IPropertyService
	sink            notify.Sink
}

// NewTenantService creates a new TenantService.
func NewTenantService(stores *store.Stores, propertyService IPropertyService, sink notify.Sink) ITenantService {
	return &tenantService{
		tenants:         stores.Tenants,
		propertyService: propertyService,
		sink:            sink,
	}
}

// CreateTenant persists a new tenant. A tenant created already approved and
// assigned immediately marks the property as rented.
func (s *tenantService) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.Documents == nil {
		tenant.Documents = []models.Document{}
	}
	if tenant.Payments == nil {
		tenant.Payments = []models.Payment{}
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if tenant.ApplicationStatus == models.ApplicationStatusApproved && tenant.Assigned() {
		if err := s.propertyService.MarkPropertyAsRented(ctx, tenant.PropertyID); err != nil {
			return err
		}
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Tenant added",
		"The tenant has been successfully added.")
	return nil
}

// ListTenants returns all tenants in stored order.
func (s *tenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return s.tenants.List(ctx)
}

// FindTenantByID returns a tenant by id; absence is not an error.
func (s *tenantService) FindTenantByID(ctx context.Context, tenantID utils.SixID) (*models.Tenant, bool, error) {
	return s.tenants.Get(ctx, tenantID)
}

// UpdateTenant shallow-merges the given fields into the tenant and reconciles
// the property status:
//
//   - status changed to approved: the referenced property is marked rented
//   - status changed to rejected: the property is released unless another
//     approved tenant still references it
//   - property reassigned: the old property is released under the same
//     sibling check, and the new one is marked rented when the tenant is (or
//     becomes) approved
//
// An unknown id merges nothing and triggers no synchronization.
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID utils.SixID, updates map[string]interface{}) (*models.Tenant, bool, error) {
	prior, found, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, false, err
	}

	// Sibling checks run against the pre-update snapshot.
	siblings, err := s.tenants.List(ctx)
	if err != nil {
		return nil, false, err
	}

	updated, merged, err := s.tenants.Update(ctx, tenantID, updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update tenant %s: %w", tenantID.String(), err)
	}

	if found && merged {
		if err := s.syncAfterUpdate(ctx, prior, siblings, updates); err != nil {
			return nil, false, err
		}
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Tenant updated",
		"The tenant information has been successfully updated.")
	return updated, merged, nil
}

func (s *tenantService) syncAfterUpdate(ctx context.Context, prior *models.Tenant, siblings []models.Tenant, updates map[string]interface{}) error {
	newStatus, statusChanged := stringField(updates, "application_status")

	if statusChanged && prior.Assigned() {
		switch models.ApplicationStatus(newStatus) {
		case models.ApplicationStatusApproved:
			if err := s.propertyService.MarkPropertyAsRented(ctx, prior.PropertyID); err != nil {
				return err
			}
		case models.ApplicationStatusRejected:
			if !hasOtherApprovedTenant(siblings, prior.ID, prior.PropertyID) {
				if err := s.propertyService.MarkPropertyAsAvailable(ctx, prior.PropertyID); err != nil {
					return err
				}
			}
		}
	}

	newPropertyID, propertyChanged := idField(updates, "property_id")
	if propertyChanged && newPropertyID != (utils.SixID{}) && prior.PropertyID != newPropertyID {
		if prior.Assigned() && !hasOtherApprovedTenant(siblings, prior.ID, prior.PropertyID) {
			if err := s.propertyService.MarkPropertyAsAvailable(ctx, prior.PropertyID); err != nil {
				return err
			}
		}
		wasApproved := prior.ApplicationStatus == models.ApplicationStatusApproved
		becomesApproved := statusChanged && models.ApplicationStatus(newStatus) == models.ApplicationStatusApproved
		if wasApproved || becomesApproved {
			if err := s.propertyService.MarkPropertyAsRented(ctx, newPropertyID); err != nil {
				return err
			}
		}
	}

	return nil
}

// DeleteTenant removes the tenant. Deleting an approved, assigned tenant
// releases the property unless another approved tenant still references it.
// An unknown id is a silent no-op.
func (s *tenantService) DeleteTenant(ctx context.Context, tenantID utils.SixID) (bool, error) {
	prior, found, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return false, err
	}

	if found && prior.Assigned() && prior.ApplicationStatus == models.ApplicationStatusApproved {
		siblings, err := s.tenants.List(ctx)
		if err != nil {
			return false, err
		}
		if !hasOtherApprovedTenant(siblings, tenantID, prior.PropertyID) {
			if err := s.propertyService.MarkPropertyAsAvailable(ctx, prior.PropertyID); err != nil {
				return false, err
			}
		}
	}

	removed, err := s.tenants.Remove(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("failed to delete tenant %s: %w", tenantID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityDestructive, "Tenant deleted",
		"The tenant has been successfully removed.")
	return removed, nil
}

// AddDocument appends a document with a generated id to the tenant's
// attachments. An unknown tenant id is a silent no-op.
func (s *tenantService) AddDocument(ctx context.Context, tenantID utils.SixID, document models.Document) (*models.Document, error) {
	tenant, found, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	document.ID = utils.NewSixID()
	documents := append(tenant.Documents, document)

	if _, _, err := s.tenants.Update(ctx, tenantID, map[string]interface{}{"documents": documents}); err != nil {
		return nil, fmt.Errorf("failed to add document to tenant %s: %w", tenantID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Document added",
		"The document has been successfully added to the tenant.")
	return &document, nil
}

// AddPayment appends a payment with a generated id to the tenant's private
// ledger. This ledger never feeds the overdue sweep; only lease payments do.
func (s *tenantService) AddPayment(ctx context.Context, tenantID utils.SixID, payment models.Payment) (*models.Payment, error) {
	tenant, found, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	payment.ID = utils.NewSixID()
	payments := append(tenant.Payments, payment)

	if _, _, err := s.tenants.Update(ctx, tenantID, map[string]interface{}{"payments": payments}); err != nil {
		return nil, fmt.Errorf("failed to add payment to tenant %s: %w", tenantID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Payment recorded",
		"The payment has been successfully recorded for the tenant.")
	return &payment, nil
}

// hasOtherApprovedTenant reports whether any tenant other than excludeID
// references the property with an approved application.
func hasOtherApprovedTenant(tenants []models.Tenant, excludeID, propertyID utils.SixID) bool {
	for i := range tenants {
		t := &tenants[i]
		if t.ID != excludeID && t.PropertyID == propertyID && t.ApplicationStatus == models.ApplicationStatusApproved {
			return true
		}
	}
	return false
}
