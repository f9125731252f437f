package models

import (
	"time"

	"github.com/google/uuid"
)

// PinCategory tags a pin with the kind of place it marks.
type PinCategory string

const (
	CategoryCustom         PinCategory = "custom"
	CategoryTravelLocation PinCategory = "travel_location"
	CategoryFavorite       PinCategory = "favorite"
	CategoryVet            PinCategory = "vet"
	CategoryPark           PinCategory = "park"
	CategoryHotel          PinCategory = "hotel"
	CategoryRestaurant     PinCategory = "restaurant"
	CategoryGrooming       PinCategory = "grooming"
	CategoryTraining       PinCategory = "training"
	CategoryEmergency      PinCategory = "emergency"
)

// KnownCategories lists every category the UI offers, in display order.
var KnownCategories = []PinCategory{
	CategoryCustom,
	CategoryTravelLocation,
	CategoryFavorite,
	CategoryVet,
	CategoryPark,
	CategoryHotel,
	CategoryRestaurant,
	CategoryGrooming,
	CategoryTraining,
	CategoryEmergency,
}

// Known reports whether the category is one of the closed set. Pins read back
// from storage may carry values outside the set (legacy data); those are kept
// as-is and only fall back to custom for display purposes.
func (c PinCategory) Known() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Field limits enforced on pin metadata. Longer input is truncated, not
// rejected.
const (
	MaxPinTitleLen       = 100
	MaxPinDescriptionLen = 500
)

// Pin is a user-placed marker on a pet's map. Latitude, longitude and the
// owning pet are fixed at creation; only title, description and category are
// mutable afterwards.
type Pin struct {
	ID               uuid.UUID   `json:"id"`
	PetID            uuid.UUID   `json:"pet_id"`
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	Title            string      `json:"title,omitempty"`
	Description      string      `json:"description,omitempty"`
	Category         PinCategory `json:"category"`
	TravelLocationID *uuid.UUID  `json:"travel_location_id,omitempty"` // display-only back-reference
	CreatedAt        time.Time   `json:"created_at"`
}

// PinUpdate carries the mutable pin fields. Nil means "leave unchanged".
type PinUpdate struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *PinCategory `json:"category,omitempty"`
}
