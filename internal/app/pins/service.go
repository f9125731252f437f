package pins

import (
	"context"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// Store defines persistence operations for pins
type Store interface {
	CreatePin(ctx context.Context, userID int64, petID uuid.UUID, lat, lng float64) (*models.Pin, error)
	ListPins(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.Pin, error)
	UpdatePin(ctx context.Context, userID int64, pinID uuid.UUID, upd models.PinUpdate) error
	DeletePin(ctx context.Context, userID int64, pinID uuid.UUID) error
	DeleteAllPins(ctx context.Context, userID int64, petID uuid.UUID) (int64, error)
}

// Service coordinates pin operations for the HTTP layer.
type Service struct {
	store Store
}

// New constructs a pin Service backed by the provided Store
func New(store Store) *Service {
	return &Service{store: store}
}

// Create places a new pin at the clicked position with the default category.
func (s *Service) Create(ctx context.Context, userID int64, petID uuid.UUID, lat, lng float64) (*models.Pin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreatePin(ctx, userID, petID, lat, lng)
}

// List returns the authoritative pin list for a pet.
func (s *Service) List(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.Pin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPins(ctx, userID, petID)
}

// Update changes a pin's metadata. Position and pet are not update targets.
func (s *Service) Update(ctx context.Context, userID int64, pinID uuid.UUID, upd models.PinUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdatePin(ctx, userID, pinID, upd)
}

// Delete removes a single pin.
func (s *Service) Delete(ctx context.Context, userID int64, pinID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePin(ctx, userID, pinID)
}

// ClearForPet removes every pin for a pet in one atomic store call and
// returns how many went away.
func (s *Service) ClearForPet(ctx context.Context, userID int64, petID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.DeleteAllPins(ctx, userID, petID)
}
