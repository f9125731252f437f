package mapview

import (
	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// Filter narrows which pins are rendered. It is either FilterAll or one of
// the pin categories; an unknown stored category still shows up under
// FilterAll and can be filtered for by its raw value.
type Filter string

// FilterAll renders every pin regardless of category.
const FilterAll Filter = "all"

// Matches reports whether a pin passes the filter. Comparison is against the
// pin's raw category, never the display fallback, so legacy values do not
// silently vanish.
func (f Filter) Matches(pin *models.Pin) bool {
	return f == FilterAll || models.PinCategory(f) == pin.Category
}

// VisiblePins returns the pins that should be rendered under the given
// filter. Pure: input order is preserved, no pin is mutated, and applying the
// same filter twice yields the same result.
func VisiblePins(pins []*models.Pin, filter Filter) []*models.Pin {
	visible := make([]*models.Pin, 0, len(pins))
	for _, pin := range pins {
		if filter.Matches(pin) {
			visible = append(visible, pin)
		}
	}
	return visible
}

// DisplayCategory is the category used for labels and glyphs. Values outside
// the known set fall back to custom for display only; callers that need the
// stored value read Pin.Category directly.
func DisplayCategory(c models.PinCategory) models.PinCategory {
	if c.Known() {
		return c
	}
	return models.CategoryCustom
}

// MarkerDiff is the delta between the rendered marker set and the desired
// one.
type MarkerDiff struct {
	Add    []*models.Pin
	Remove []MarkerID
}

// DiffMarkers computes which markers to add and which to remove so that the
// rendered set becomes exactly the desired pin set. It exists as an
// incremental alternative to clear-then-rebuild; the resulting set must be
// identical, only the churn differs. Pins already rendered are left alone.
func DiffMarkers(rendered map[uuid.UUID]MarkerID, desired []*models.Pin) MarkerDiff {
	var diff MarkerDiff

	want := make(map[uuid.UUID]bool, len(desired))
	for _, pin := range desired {
		want[pin.ID] = true
		if _, ok := rendered[pin.ID]; !ok {
			diff.Add = append(diff.Add, pin)
		}
	}
	for id, marker := range rendered {
		if !want[id] {
			diff.Remove = append(diff.Remove, marker)
		}
	}
	return diff
}
