// Command mapdemo drives the map view against an in-memory pin store and a
// renderer that prints every surface operation. It exercises the full pin
// lifecycle without a browser or a database: click to create, edit metadata,
// filter by category, clear the map.
package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pawmap/internal/mapview"
	"pawmap/internal/store"
	"pawmap/shared/go/logging"
	"pawmap/shared/go/models"
)

// consoleRenderer prints marker operations instead of drawing them.
type consoleRenderer struct {
	mu      sync.Mutex
	log     zerolog.Logger
	nextID  mapview.MarkerID
	onClick func(lat, lng float64)
	popups  map[mapview.MarkerID]mapview.Popup
}

func newConsoleRenderer(log zerolog.Logger) *consoleRenderer {
	return &consoleRenderer{
		log:    log,
		popups: make(map[mapview.MarkerID]mapview.Popup),
	}
}

func (r *consoleRenderer) AddMarker(lat, lng float64, glyph mapview.Glyph) mapview.MarkerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.log.Info().
		Int64("marker", int64(r.nextID)).
		Float64("lat", lat).
		Float64("lng", lng).
		Str("glyph", string(glyph)).
		Msg("add marker")
	return r.nextID
}

func (r *consoleRenderer) BindPopup(id mapview.MarkerID, popup mapview.Popup) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.popups[id] = popup
}

func (r *consoleRenderer) RemoveMarker(id mapview.MarkerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.popups, id)
	r.log.Info().Int64("marker", int64(id)).Msg("remove marker")
}

func (r *consoleRenderer) SetClickHandler(handler func(lat, lng float64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onClick = handler
}

// Click simulates a user clicking the map surface.
func (r *consoleRenderer) Click(lat, lng float64) {
	r.mu.Lock()
	handler := r.onClick
	r.mu.Unlock()
	if handler != nil {
		handler(lat, lng)
	}
}

// OpenPopup simulates opening the popup bound to a marker.
func (r *consoleRenderer) OpenPopup(id mapview.MarkerID) (mapview.Popup, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	popup, ok := r.popups[id]
	return popup, ok
}

func main() {
	logger := logging.New(logging.Config{Level: "debug", Format: "text"})
	logging.SetGlobalLogger(logger)
	zl := logger.Zerolog()

	memStore := store.NewMemoryStore()
	petID := uuid.New()

	memStore.SeedTravelLocation(&models.TravelLocation{
		PetID: petID,
		Name:  "Colorado",
		Kind:  models.TravelKindState,
		Code:  "CO",
	})
	memStore.SeedTravelLocation(&models.TravelLocation{
		PetID: petID,
		Name:  "Canada",
		Kind:  models.TravelKindCountry,
		Code:  "CA",
	})

	renderer := newConsoleRenderer(zl.With().Str("component", "renderer").Logger())

	// refreshed pulses every time a mutation lands and the snapshot is
	// re-rendered, so the script below can sequence its steps.
	refreshed := make(chan struct{}, 16)

	var canvas *mapview.Canvas
	canvas = mapview.NewCanvas(renderer, memStore, petID, zl, mapview.Callbacks{
		Refresh: func() {
			pins, err := memStore.List(context.Background(), petID)
			if err != nil {
				logger.Error(err, "refresh list failed")
				return
			}
			canvas.SetData(pins, memStore.TravelLocations(petID))
			refreshed <- struct{}{}
		},
		Error: func(msg string, err error) {
			logger.Error(err, msg)
		},
		OpenEditor: func(pin *models.Pin) {
			zl.Info().Str("pin_id", pin.ID.String()).Str("title", pin.Title).Msg("editor opened")
		},
	})
	defer canvas.Close()

	// Initial load.
	pins, _ := memStore.List(context.Background(), petID)
	canvas.SetData(pins, memStore.TravelLocations(petID))

	waitRefresh := func(step string) {
		select {
		case <-refreshed:
		case <-time.After(5 * time.Second):
			logger.Warn("timed out waiting for refresh: " + step)
		}
	}

	// Drop two pins.
	renderer.Click(39.7392, -104.9903)
	waitRefresh("first click")
	renderer.Click(40.0150, -105.2705)
	waitRefresh("second click")

	// Edit the first pin's metadata through the editor flow.
	pins, _ = memStore.List(context.Background(), petID)
	if len(pins) > 0 {
		editor := mapview.NewEditor(memStore, pins[0], func() {
			zl.Info().Msg("editor saved")
			pins, _ := memStore.List(context.Background(), petID)
			canvas.SetData(pins, memStore.TravelLocations(petID))
		})
		editor.SetTitle("Cherry Creek Dog Park")
		editor.SetDescription("Off-leash area by the reservoir.")
		editor.SetCategory(models.CategoryPark)
		if err := editor.Save(context.Background()); err != nil {
			logger.Error(err, "editor save failed")
		}
	}

	// Narrow the view to park pins, then widen it again.
	canvas.SetFilter(mapview.Filter(models.CategoryPark))
	zl.Info().Int("visible", len(canvas.RenderedPinIDs())).Msg("park filter applied")
	canvas.SetFilter(mapview.FilterAll)
	zl.Info().Int("visible", len(canvas.RenderedPinIDs())).Msg("filter cleared")

	// Clear the map. The first call is rejected without confirmation.
	if err := canvas.ClearAllPins(context.Background(), false); err != nil {
		zl.Info().Err(err).Msg("bulk delete blocked without confirmation")
	}
	if err := canvas.ClearAllPins(context.Background(), true); err != nil {
		logger.Error(err, "bulk delete failed")
	} else {
		waitRefreshDrain(refreshed)
		zl.Info().Int("visible", len(canvas.RenderedPinIDs())).Msg("map cleared")
	}
}

func waitRefreshDrain(refreshed chan struct{}) {
	for {
		select {
		case <-refreshed:
		default:
			return
		}
	}
}
