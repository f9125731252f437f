package travels

import (
	"context"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// Store defines persistence operations for travel locations
type Store interface {
	CreateTravelLocation(ctx context.Context, userID int64, tl *models.TravelLocation) (*models.TravelLocation, error)
	ListTravelLocations(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.TravelLocation, error)
	UpdateTravelLocation(ctx context.Context, userID int64, id uuid.UUID, tl *models.TravelLocation) error
	DeleteTravelLocation(ctx context.Context, userID int64, id uuid.UUID) error
}

// Service coordinates travel-location operations. The map view treats these
// as read-only; creation and editing happen through the travel screens.
type Service struct {
	store Store
}

// New constructs a travel Service backed by the provided Store
func New(store Store) *Service {
	return &Service{store: store}
}

// Create records a visited state or country.
func (s *Service) Create(ctx context.Context, userID int64, tl *models.TravelLocation) (*models.TravelLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateTravelLocation(ctx, userID, tl)
}

// List returns all travel locations for a pet.
func (s *Service) List(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.TravelLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListTravelLocations(ctx, userID, petID)
}

// Update replaces a travel location's descriptive fields.
func (s *Service) Update(ctx context.Context, userID int64, id uuid.UUID, tl *models.TravelLocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateTravelLocation(ctx, userID, id, tl)
}

// Delete removes a travel location.
func (s *Service) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteTravelLocation(ctx, userID, id)
}
