package store

import (
	"rentdesk/internal/kv"
	"rentdesk/internal/models"
)

// Durable keys, one per entity type. Each holds the full JSON-serialized
// array of that entity's records. No schema versioning.
const (
	KeyProperties   = "properties"
	KeyTenants      = "tenants"
	KeyLeases       = "leases"
	KeyTransactions = "transactions"
	KeyUsers        = "users"
)

// Stores bundles the per-entity collections over one backing kv store.
type Stores struct {
	Properties   *Collection[models.Property, *models.Property]
	Tenants      *Collection[models.Tenant, *models.Tenant]
	Leases       *Collection[models.Lease, *models.Lease]
	Transactions *Collection[models.Transaction, *models.Transaction]
	Users        *Collection[models.User, *models.User]
}

// NewStores wires every collection to the given backend.
func NewStores(kvs kv.Store) *Stores {
	return &Stores{
		Properties:   NewCollection[models.Property, *models.Property](kvs, KeyProperties),
		Tenants:      NewCollection[models.Tenant, *models.Tenant](kvs, KeyTenants),
		Leases:       NewCollection[models.Lease, *models.Lease](kvs, KeyLeases),
		Transactions: NewCollection[models.Transaction, *models.Transaction](kvs, KeyTransactions),
		Users:        NewCollection[models.User, *models.User](kvs, KeyUsers),
	}
}
