package mapview

import "pawmap/shared/go/models"

// MarkerID is the renderer's handle for a placed marker.
type MarkerID int64

// Glyph names the visual used for a marker. The renderer decides what a glyph
// looks like; the canvas only picks which one.
type Glyph string

const (
	GlyphPending Glyph = "pending"
	GlyphTravel  Glyph = "flag"
)

var categoryGlyphs = map[models.PinCategory]Glyph{
	models.CategoryCustom:         "pin",
	models.CategoryTravelLocation: "flag",
	models.CategoryFavorite:       "heart",
	models.CategoryVet:            "cross",
	models.CategoryPark:           "tree",
	models.CategoryHotel:          "bed",
	models.CategoryRestaurant:     "fork",
	models.CategoryGrooming:       "scissors",
	models.CategoryTraining:       "whistle",
	models.CategoryEmergency:      "alert",
}

// GlyphFor maps a category to its marker glyph. Unknown categories get the
// custom glyph; the raw category value is not changed anywhere.
func GlyphFor(c models.PinCategory) Glyph {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return categoryGlyphs[models.CategoryCustom]
}

// Popup is the info panel bound to a marker. The edit and delete callbacks
// are bound per marker at render time and resolve the current pin by id when
// invoked, so a popup opened after a refresh never acts on a stale snapshot.
type Popup struct {
	Title    string
	Subtitle string
	OnEdit   func()
	OnDelete func()
}

// Renderer is the mapping-library surface the canvas draws on. Any library
// that can place a marker, bind a popup, remove a marker and report clicks
// satisfies it.
//
// Implementations are invoked with the canvas lock held and must not call
// back into the canvas.
type Renderer interface {
	AddMarker(lat, lng float64, glyph Glyph) MarkerID
	BindPopup(id MarkerID, popup Popup)
	RemoveMarker(id MarkerID)
	SetClickHandler(handler func(lat, lng float64))
}
