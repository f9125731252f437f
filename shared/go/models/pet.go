package models

import (
	"time"

	"github.com/google/uuid"
)

// Pet is the owner entity every pin and travel location belongs to. A pet is
// owned by exactly one user account; permission checks on map data go through
// that ownership.
type Pet struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`     // Optional
	PhotoURL  string    `json:"photo_url,omitempty"` // Optional
	CreatedAt time.Time `json:"created_at"`
}
