package pets

import (
	"context"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// Store defines persistence operations for pet profiles
type Store interface {
	CreatePet(ctx context.Context, userID int64, pet *models.Pet) (*models.Pet, error)
	ListPets(ctx context.Context, userID int64) ([]*models.Pet, error)
	GetPet(ctx context.Context, userID int64, petID uuid.UUID) (*models.Pet, error)
}

// Service coordinates pet profile operations.
type Service struct {
	store Store
}

// New constructs a pet Service backed by the provided Store
func New(store Store) *Service {
	return &Service{store: store}
}

// Create adds a pet profile for the user.
func (s *Service) Create(ctx context.Context, userID int64, pet *models.Pet) (*models.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreatePet(ctx, userID, pet)
}

// List returns the user's pet profiles.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPets(ctx, userID)
}

// Get returns a single pet the user owns.
func (s *Service) Get(ctx context.Context, userID int64, petID uuid.UUID) (*models.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetPet(ctx, userID, petID)
}
