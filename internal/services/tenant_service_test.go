package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/models"
	"rentdesk/internal/utils"
)

func newTenantFixture(t *testing.T) (IPropertyService, ITenantService, *recorderSink) {
	t.Helper()
	stores := newTestStores()
	sink := &recorderSink{}
	props := NewPropertyService(stores, sink)
	tenants := NewTenantService(stores, props, sink)
	return props, tenants, sink
}

func TestCreateApprovedAssignedTenantRentsProperty(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{
		FirstName:         "Asha",
		ApplicationStatus: models.ApplicationStatusApproved,
		PropertyID:        p.ID,
	}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))
	assert.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))
}

func TestCreatePendingTenantLeavesPropertyAlone(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{
		FirstName:         "Ravi",
		ApplicationStatus: models.ApplicationStatusPending,
		PropertyID:        p.ID,
	}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, p.ID))
}

func TestApprovingTenantRentsProperty(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{ApplicationStatus: models.ApplicationStatusPending, PropertyID: p.ID}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))

	_, found, err := tenants.UpdateTenant(ctx, tenant.ID, map[string]interface{}{
		"application_status": "approved",
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))
}

func TestRejectingSoleApprovedTenantReleasesProperty(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{ApplicationStatus: models.ApplicationStatusApproved, PropertyID: p.ID}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))
	require.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))

	_, _, err := tenants.UpdateTenant(ctx, tenant.ID, map[string]interface{}{
		"application_status": "rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, p.ID))
}

func TestRejectingWithSiblingApprovedKeepsPropertyRented(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	first := &models.Tenant{FirstName: "A", ApplicationStatus: models.ApplicationStatusApproved, PropertyID: p.ID}
	second := &models.Tenant{FirstName: "B", ApplicationStatus: models.ApplicationStatusApproved, PropertyID: p.ID}
	require.NoError(t, tenants.CreateTenant(ctx, first))
	require.NoError(t, tenants.CreateTenant(ctx, second))

	_, _, err := tenants.UpdateTenant(ctx, first.ID, map[string]interface{}{
		"application_status": "rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))

	// With the only remaining approved tenant rejected, the property frees up.
	_, _, err = tenants.UpdateTenant(ctx, second.ID, map[string]interface{}{
		"application_status": "rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, p.ID))
}

func TestReassigningApprovedTenantMovesOccupancy(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	oldProp := seedProperty(t, props, models.PropertyStatusAvailable)
	newProp := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{ApplicationStatus: models.ApplicationStatusApproved, PropertyID: oldProp.ID}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))
	require.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, oldProp.ID))

	_, _, err := tenants.UpdateTenant(ctx, tenant.ID, map[string]interface{}{
		"property_id": newProp.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, oldProp.ID))
	assert.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, newProp.ID))
}

func TestReassigningPendingTenantDoesNotRent(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	oldProp := seedProperty(t, props, models.PropertyStatusAvailable)
	newProp := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{ApplicationStatus: models.ApplicationStatusPending, PropertyID: oldProp.ID}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))

	_, _, err := tenants.UpdateTenant(ctx, tenant.ID, map[string]interface{}{
		"property_id": newProp.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, newProp.ID))
}

func TestReassignmentWithApprovalInSameUpdate(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{ApplicationStatus: models.ApplicationStatusPending}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))

	_, _, err := tenants.UpdateTenant(ctx, tenant.ID, map[string]interface{}{
		"application_status": "approved",
		"property_id":        p.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))
}

func TestDeleteApprovedTenantReleasesProperty(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	tenant := &models.Tenant{ApplicationStatus: models.ApplicationStatusApproved, PropertyID: p.ID}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))
	require.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))

	removed, err := tenants.DeleteTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, p.ID))
}

func TestDeleteApprovedTenantWithSiblingKeepsPropertyRented(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	first := &models.Tenant{ApplicationStatus: models.ApplicationStatusApproved, PropertyID: p.ID}
	second := &models.Tenant{ApplicationStatus: models.ApplicationStatusApproved, PropertyID: p.ID}
	require.NoError(t, tenants.CreateTenant(ctx, first))
	require.NoError(t, tenants.CreateTenant(ctx, second))

	_, err := tenants.DeleteTenant(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusRented, propertyStatus(t, props, p.ID))
}

func TestUpdateUnknownTenantTriggersNoSync(t *testing.T) {
	ctx := context.Background()
	props, tenants, _ := newTenantFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	updated, found, err := tenants.UpdateTenant(ctx, utils.NewSixID(), map[string]interface{}{
		"application_status": "approved",
		"property_id":        p.ID.String(),
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, updated)
	assert.Equal(t, models.PropertyStatusAvailable, propertyStatus(t, props, p.ID))
}

func TestTenantAddDocumentAndPayment(t *testing.T) {
	ctx := context.Background()
	_, tenants, sink := newTenantFixture(t)

	tenant := &models.Tenant{FirstName: "Meera"}
	require.NoError(t, tenants.CreateTenant(ctx, tenant))
	sink.reset()

	doc, err := tenants.AddDocument(ctx, tenant.ID, models.Document{Name: "ID Proof", URL: "https://files/id.pdf"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEqual(t, utils.SixID{}, doc.ID)

	payment, err := tenants.AddPayment(ctx, tenant.ID, models.Payment{Amount: 5000, Status: models.PaymentStatusPaid})
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.NotEqual(t, utils.SixID{}, payment.ID)

	got, _, err := tenants.FindTenantByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, got.Documents, 1)
	assert.Len(t, got.Payments, 1)

	_, ok := sink.find("Document added")
	assert.True(t, ok)
	_, ok = sink.find("Payment recorded")
	assert.True(t, ok)

	// Unknown tenant is a silent no-op.
	missing, err := tenants.AddDocument(ctx, utils.NewSixID(), models.Document{Name: "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}
