package models

import (
	"time"

	"github.com/google/uuid"
)

// TravelKind distinguishes between visited states and countries
type TravelKind string

const (
	TravelKindState   TravelKind = "state"
	TravelKindCountry TravelKind = "country"
)

// TravelLocation records a state or country a pet has visited. Locations are
// rendered on the same map as pins but are an independent entity; the map view
// resolves Name against a static gazetteer to place the marker, and names it
// cannot resolve simply render nothing.
type TravelLocation struct {
	ID          uuid.UUID  `json:"id"`
	PetID       uuid.UUID  `json:"pet_id"`
	Name        string     `json:"name"`
	Kind        TravelKind `json:"kind"`
	Code        string     `json:"code,omitempty"`         // postal or ISO code, e.g. "CO"
	DateVisited *time.Time `json:"date_visited,omitempty"` // Optional
	PhotoURL    string     `json:"photo_url,omitempty"`    // Optional
	Notes       string     `json:"notes,omitempty"`        // Optional
	CreatedAt   time.Time  `json:"created_at"`
}
