package models

// PropertyType enumerates the supported dwelling types.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyType1RK       PropertyType = "1rk"
	PropertyType1BHK      PropertyType = "1bhk"
	PropertyType2BHK      PropertyType = "2bhk"
	PropertyType3BHK      PropertyType = "3bhk"
	PropertyType4BHK      PropertyType = "4bhk"
)

// ListingType says how the property is offered on the market.
type ListingType string

const (
	ListingTypeRent  ListingType = "rent"
	ListingTypeSale  ListingType = "sale"
	ListingTypeLease ListingType = "lease"
)

// PropertyStatus is the occupancy/market state of a property.
// "available" and "rented" oscillate under the synchronizer; the remaining
// states are only ever set directly by the manager.
type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "available"
	PropertyStatusRented      PropertyStatus = "rented"
	PropertyStatusForSale     PropertyStatus = "for_sale"
	PropertyStatusMaintenance PropertyStatus = "maintenance"
	PropertyStatusSold        PropertyStatus = "sold"
)

// Property represents a managed rental or sale property.
type Property struct {
	Base
	Title       string         `json:"title"`
	Type        PropertyType   `json:"type"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	RentAmount  float64        `json:"rent_amount"` // monthly
	Deposit     float64        `json:"deposit"`
	Price       *float64       `json:"price,omitempty"` // for sale listings
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Amenities   []string       `json:"amenities"`
	Images      []string       `json:"images"`
	Videos      []string       `json:"videos,omitempty"`
	ListingType ListingType    `json:"listing_type"`
	Status      PropertyStatus `json:"status"`
}

// EffectivePrice is the amount used for range filtering: the sale price for
// sale listings (zero when unset), otherwise the monthly rent.
func (p *Property) EffectivePrice() float64 {
	if p.ListingType == ListingTypeSale {
		if p.Price != nil {
			return *p.Price
		}
		return 0
	}
	return p.RentAmount
}
