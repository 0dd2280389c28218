package services

import (
	"context"
	"sort"
	"strings"

	"rentdesk/internal/models"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// DashboardStats is the aggregate snapshot shown on the dashboard. All
// property counts read the stored property status; they never re-derive
// occupancy from leases or tenants.
type DashboardStats struct {
	TotalProperties     int     `json:"total_properties"`
	AvailableProperties int     `json:"available_properties"`
	RentedProperties    int     `json:"rented_properties"`
	ForSaleProperties   int     `json:"for_sale_properties"`
	PropertiesLastYear  int     `json:"properties_last_year"`
	ActiveLeases        int     `json:"active_leases"`
	TotalRentAmount     float64 `json:"total_rent_amount"`
	PendingPayments     int     `json:"pending_payments"`
}

// PropertySearch carries the property search filters. Zero values mean "no
// filter"; MaxPrice of zero disables the price range.
type PropertySearch struct {
	Term         string
	PropertyType string
	Location     string
	Availability string // rent, sale or lease
	MinPrice     float64
	MaxPrice     float64
}

// IQueryService defines the read-only derivation layer over the entity store.
type IQueryService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	LatestProperties(ctx context.Context, limit int) ([]models.Property, error)
	SearchProperties(ctx context.Context, search PropertySearch) ([]models.Property, error)
}

// queryService implements IQueryService.
type queryService struct {
	properties *store.Collection[models.Property, *models.Property]
	leases     *store.Collection[models.Lease, *models.Lease]
}

// NewQueryService creates a new QueryService.
func NewQueryService(stores *store.Stores) IQueryService {
	return &queryService{
		properties: stores.Properties,
		leases:     stores.Leases,
	}
}

// GetDashboardStats computes the dashboard aggregates from the current
// snapshots.
func (s *queryService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, err
	}
	leases, err := s.leases.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalProperties: len(properties)}
	lastYear := utils.Now().AddDate(-1, 0, 0)

	for i := range properties {
		p := &properties[i]
		switch p.Status {
		case models.PropertyStatusAvailable:
			stats.AvailableProperties++
		case models.PropertyStatusRented:
			stats.RentedProperties++
			stats.TotalRentAmount += p.RentAmount
		case models.PropertyStatusForSale:
			stats.ForSaleProperties++
		}
		if p.CreatedAt.After(lastYear) {
			stats.PropertiesLastYear++
		}
	}

	for i := range leases {
		l := &leases[i]
		if l.Status == models.LeaseStatusActive {
			stats.ActiveLeases++
		}
		for j := range l.Payments {
			if l.Payments[j].Status == models.PaymentStatusPending {
				stats.PendingPayments++
			}
		}
	}

	return stats, nil
}

// LatestProperties returns up to limit properties, most recently created
// first.
func (s *queryService) LatestProperties(ctx context.Context, limit int) ([]models.Property, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})

	if limit > 0 && len(properties) > limit {
		properties = properties[:limit]
	}
	return properties, nil
}

// SearchProperties applies the search filters in sequence over the property
// snapshot and returns the survivors in stored order.
func (s *queryService) SearchProperties(ctx context.Context, search PropertySearch) ([]models.Property, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search.Term))
	result := make([]models.Property, 0, len(properties))

	for i := range properties {
		p := &properties[i]
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if search.PropertyType != "" && search.PropertyType != "all" &&
			string(p.Type) != search.PropertyType {
			continue
		}
		if search.Location != "" && !strings.Contains(p.Location, search.Location) {
			continue
		}
		if !matchesAvailability(p, search.Availability) {
			continue
		}
		if search.MaxPrice > 0 {
			amount := p.EffectivePrice()
			if amount < search.MinPrice || amount > search.MaxPrice {
				continue
			}
		}
		result = append(result, *p)
	}

	return result, nil
}

// matchesTerm checks the free-text term against title, location and
// description, case-insensitively.
func matchesTerm(p *models.Property, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Location), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Description), lowerTerm)
}

// matchesAvailability resolves the availability filter. Properties created
// before listing types existed have an empty ListingType and count as rentals
// when available.
func matchesAvailability(p *models.Property, availability string) bool {
	switch availability {
	case "", "all":
		return true
	case "rent":
		return p.ListingType == models.ListingTypeRent ||
			(p.ListingType == "" && p.Status == models.PropertyStatusAvailable)
	case "sale":
		return p.ListingType == models.ListingTypeSale || p.Status == models.PropertyStatusForSale
	case "lease":
		return p.ListingType == models.ListingTypeLease
	default:
		return true
	}
}
