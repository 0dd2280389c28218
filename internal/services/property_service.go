package services

import (
	"context"
	"fmt"

	"rentdesk/internal/models"
	"rentdesk/internal/notify"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// IPropertyService defines the interface for property-related operations.
type IPropertyService interface {
	CreateProperty(ctx context.Context, property *models.Property) error
	ListProperties(ctx context.Context) ([]models.Property, error)
	FindPropertyByID(ctx context.Context, propertyID utils.SixID) (*models.Property, bool, error)
	UpdateProperty(ctx context.Context, propertyID utils.SixID, updates map[string]interface{}) (*models.Property, bool, error)
	DeleteProperty(ctx context.Context, propertyID utils.SixID) (bool, error)
	MarkPropertyAsRented(ctx context.Context, propertyID utils.SixID) error
	MarkPropertyAsAvailable(ctx context.Context, propertyID utils.SixID) error
	AttachMedia(ctx context.Context, propertyID utils.SixID, url string, video bool) error
}

// propertyService implements IPropertyService.
type propertyService struct {
	properties *store.Collection[models.Property, *models.Property]
	sink       notify.Sink
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(stores *store.Stores, sink notify.Sink) IPropertyService {
	return &propertyService{properties: stores.Properties, sink: sink}
}

// CreateProperty persists a new property with a generated id.
func (s *propertyService) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.Amenities == nil {
		property.Amenities = []string{}
	}
	if property.Images == nil {
		property.Images = []string{}
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Property added",
		"The property has been successfully added.")
	return nil
}

// ListProperties returns all properties in stored order.
func (s *propertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.properties.List(ctx)
}

// FindPropertyByID returns a property by id; absence is not an error.
func (s *propertyService) FindPropertyByID(ctx context.Context, propertyID utils.SixID) (*models.Property, bool, error) {
	return s.properties.Get(ctx, propertyID)
}

// UpdateProperty shallow-merges the given fields into the property. An
// unknown id is a silent no-op.
func (s *propertyService) UpdateProperty(ctx context.Context, propertyID utils.SixID, updates map[string]interface{}) (*models.Property, bool, error) {
	updated, found, err := s.properties.Update(ctx, propertyID, updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update property %s: %w", propertyID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Property updated",
		"The property has been successfully updated.")
	return updated, found, nil
}

// DeleteProperty removes the property. Associated tenants and leases are left
// untouched; they keep their (now dangling) property reference.
func (s *propertyService) DeleteProperty(ctx context.Context, propertyID utils.SixID) (bool, error) {
	removed, err := s.properties.Remove(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("failed to delete property %s: %w", propertyID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityDestructive, "Property deleted",
		"The property has been successfully deleted.")
	return removed, nil
}

// MarkPropertyAsRented flips an available property to rented. Any other
// current status, or an unknown id, leaves the property untouched.
func (s *propertyService) MarkPropertyAsRented(ctx context.Context, propertyID utils.SixID) error {
	property, found, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return err
	}
	if !found || property.Status != models.PropertyStatusAvailable {
		return nil
	}

	if _, _, err := s.properties.Update(ctx, propertyID, map[string]interface{}{
		"status": models.PropertyStatusRented,
	}); err != nil {
		return fmt.Errorf("failed to mark property %s as rented: %w", propertyID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Property status updated",
		"The property has been marked as rented.")
	return nil
}

// MarkPropertyAsAvailable flips a rented property back to available. Any
// other current status, or an unknown id, leaves the property untouched.
func (s *propertyService) MarkPropertyAsAvailable(ctx context.Context, propertyID utils.SixID) error {
	property, found, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return err
	}
	if !found || property.Status != models.PropertyStatusRented {
		return nil
	}

	if _, _, err := s.properties.Update(ctx, propertyID, map[string]interface{}{
		"status": models.PropertyStatusAvailable,
	}); err != nil {
		return fmt.Errorf("failed to mark property %s as available: %w", propertyID.String(), err)
	}

	notify.Send(ctx, s.sink, notify.SeverityInfo, "Property status updated",
		"The property has been marked as available.")
	return nil
}

// AttachMedia appends an uploaded media URL to the property's image or video
// list.
func (s *propertyService) AttachMedia(ctx context.Context, propertyID utils.SixID, url string, video bool) error {
	property, found, err := s.properties.Get(ctx, propertyID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	field := "images"
	list := append(property.Images, url)
	if video {
		field = "videos"
		list = append(property.Videos, url)
	}

	if _, _, err := s.properties.Update(ctx, propertyID, map[string]interface{}{field: list}); err != nil {
		return fmt.Errorf("failed to attach media to property %s: %w", propertyID.String(), err)
	}
	return nil
}
