package mapview

import (
	"context"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// PinStore is the remote persistence surface the map view works against.
// internal/store's Postgres-backed Store (through the HTTP client in
// internal/pinapi) and MemoryStore both satisfy it.
//
// Every mutation is followed by a caller-driven List refresh; the view never
// applies optimistic local updates.
type PinStore interface {
	Create(ctx context.Context, petID uuid.UUID, lat, lng float64) (*models.Pin, error)
	Update(ctx context.Context, pinID uuid.UUID, upd models.PinUpdate) error
	Delete(ctx context.Context, pinID uuid.UUID) error
	DeleteAllForPet(ctx context.Context, petID uuid.UUID) error
	List(ctx context.Context, petID uuid.UUID) ([]*models.Pin, error)
}
