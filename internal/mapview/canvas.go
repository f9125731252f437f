package mapview

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pawmap/internal/store"
	"pawmap/shared/go/models"
)

// ErrNotConfirmed is returned when a bulk delete is attempted without the
// explicit confirmation gate.
var ErrNotConfirmed = errors.New("bulk delete requires confirmation")

// Callbacks let the owning context react to canvas events. Refresh must
// re-fetch the authoritative pin list and hand it back via SetData; the
// canvas never mutates its own snapshot after a store call.
type Callbacks struct {
	// Refresh is invoked after every successful mutation.
	Refresh func()
	// Error surfaces a user-visible message for a failed store call.
	Error func(msg string, err error)
	// OpenEditor is invoked with a copy of the current pin when a popup's
	// edit action fires.
	OpenEditor func(pin *models.Pin)
}

// Canvas owns the rendering surface for one pet's map. It is constructed once
// per surface, registers the click handler exactly once, and is the only
// component that adds or removes markers.
//
// The authoritative pin and travel-location lists are owned by the parent and
// handed in as immutable snapshots through SetData.
type Canvas struct {
	mu       sync.Mutex
	renderer Renderer
	store    PinStore
	petID    uuid.UUID
	cb       Callbacks
	log      zerolog.Logger

	pins    []*models.Pin
	travels []*models.TravelLocation
	filter  Filter

	markers       map[uuid.UUID]MarkerID
	travelMarkers []MarkerID
	pending       map[MarkerID]bool
	closed        bool
}

// NewCanvas wires a canvas to its renderer and pin store. The click handler
// is bound here, once, for the lifetime of the canvas.
func NewCanvas(renderer Renderer, pinStore PinStore, petID uuid.UUID, logger zerolog.Logger, cb Callbacks) *Canvas {
	c := &Canvas{
		renderer: renderer,
		store:    pinStore,
		petID:    petID,
		cb:       cb,
		log:      logger.With().Str("pet_id", petID.String()).Logger(),
		filter:   FilterAll,
		markers:  make(map[uuid.UUID]MarkerID),
		pending:  make(map[MarkerID]bool),
	}
	renderer.SetClickHandler(c.handleClick)
	return c
}

// Close tears the canvas down: every marker it owns is removed and any
// continuation still in flight becomes a no-op.
func (c *Canvas) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.removeAllMarkersLocked()
	for id := range c.pending {
		c.renderer.RemoveMarker(id)
	}
	c.pending = nil
	c.closed = true
}

// SetData replaces the authoritative snapshots and re-renders. This is the
// refresh round-trip landing: the rendered set becomes exactly the filtered
// snapshot, whatever was on the canvas before.
func (c *Canvas) SetData(pins []*models.Pin, travels []*models.TravelLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pins = pins
	c.travels = travels
	c.renderLocked()
}

// SetFilter changes the active category filter and re-renders. Travel
// location markers are unaffected by the pin filter.
func (c *Canvas) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.filter = f
	c.renderLocked()
}

// Filter returns the active category filter.
func (c *Canvas) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// RenderedPinIDs reports which pins currently have a marker on the surface.
func (c *Canvas) RenderedPinIDs() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(c.markers))
	for id := range c.markers {
		ids = append(ids, id)
	}
	return ids
}

// renderLocked rebuilds the marker set from scratch. Clearing everything and
// re-adding the filtered snapshot keeps the invariant "rendered set ==
// filtered authoritative set" without tracking any incremental state; the
// collections involved are small enough that churn does not matter.
func (c *Canvas) renderLocked() {
	c.removeAllMarkersLocked()

	for _, pin := range VisiblePins(c.pins, c.filter) {
		marker := c.renderer.AddMarker(pin.Latitude, pin.Longitude, GlyphFor(pin.Category))
		pinID := pin.ID
		c.renderer.BindPopup(marker, Popup{
			Title:    popupTitle(pin),
			Subtitle: pin.Description,
			OnEdit:   func() { c.editPin(pinID) },
			OnDelete: func() { go c.deletePin(context.Background(), pinID) },
		})
		c.markers[pin.ID] = marker
	}

	for _, tl := range c.travels {
		coords, ok := ResolveTravelLocation(tl)
		if !ok {
			// Gazetteer coverage is inherently incomplete; an
			// unresolvable name renders nothing and is not an error.
			c.log.Debug().Str("name", tl.Name).Msg("travel location name did not resolve")
			continue
		}
		marker := c.renderer.AddMarker(coords.Lat, coords.Lng, GlyphTravel)
		c.renderer.BindPopup(marker, Popup{Title: tl.Name, Subtitle: tl.Notes})
		c.travelMarkers = append(c.travelMarkers, marker)
	}
}

func (c *Canvas) removeAllMarkersLocked() {
	for _, marker := range c.markers {
		c.renderer.RemoveMarker(marker)
	}
	for _, marker := range c.travelMarkers {
		c.renderer.RemoveMarker(marker)
	}
	c.markers = make(map[uuid.UUID]MarkerID)
	c.travelMarkers = nil
}

func popupTitle(pin *models.Pin) string {
	if pin.Title != "" {
		return pin.Title
	}
	return string(DisplayCategory(pin.Category))
}

// handleClick originates a pin creation. Each click is independent; two rapid
// clicks at different coordinates run concurrently and each lands through its
// own refresh.
func (c *Canvas) handleClick(lat, lng float64) {
	go c.createPin(context.Background(), lat, lng)
}

// createPin shows a transient pending marker, asks the store to create the
// pin, and removes the pending marker no matter how the call ends. The new
// pin only becomes visible through the refresh round-trip.
func (c *Canvas) createPin(ctx context.Context, lat, lng float64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	pendingMarker := c.renderer.AddMarker(lat, lng, GlyphPending)
	c.pending[pendingMarker] = true
	c.mu.Unlock()

	_, err := c.store.Create(ctx, c.petID, lat, lng)

	c.mu.Lock()
	if c.closed {
		// The canvas is gone; Close already removed the marker.
		c.mu.Unlock()
		return
	}
	c.renderer.RemoveMarker(pendingMarker)
	delete(c.pending, pendingMarker)
	c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Float64("lat", lat).Float64("lng", lng).Msg("pin creation failed")
		c.reportError(createErrorMessage(err), err)
		return
	}
	c.log.Info().Float64("lat", lat).Float64("lng", lng).Msg("pin created")
	c.notifyRefresh()
}

// editPin hands the current pin for the id to the editor callback. If the pin
// is no longer in the snapshot the action quietly does nothing; the popup it
// came from is about to be re-rendered away.
func (c *Canvas) editPin(pinID uuid.UUID) {
	c.mu.Lock()
	var found *models.Pin
	for _, pin := range c.pins {
		if pin.ID == pinID {
			cp := *pin
			found = &cp
			break
		}
	}
	closed := c.closed
	c.mu.Unlock()

	if closed || found == nil || c.cb.OpenEditor == nil {
		return
	}
	c.cb.OpenEditor(found)
}

func (c *Canvas) deletePin(ctx context.Context, pinID uuid.UUID) {
	err := c.store.Delete(ctx, pinID)
	if err != nil {
		c.log.Warn().Err(err).Str("pin_id", pinID.String()).Msg("pin deletion failed")
		c.reportError("Could not delete the pin. Please try again.", err)
		return
	}
	c.notifyRefresh()
}

// ClearAllPins deletes every pin for the pet in one store call. The confirmed
// flag is the irreversible-action gate; callers pass true only after the user
// explicitly agreed. A failure is reported once and leaves all pins in place.
func (c *Canvas) ClearAllPins(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.store.DeleteAllForPet(ctx, c.petID); err != nil {
		c.log.Warn().Err(err).Msg("bulk pin deletion failed")
		c.reportError("Could not clear pins. Please try again.", err)
		return err
	}
	c.log.Info().Msg("all pins cleared")
	c.notifyRefresh()
	return nil
}

func (c *Canvas) notifyRefresh() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed || c.cb.Refresh == nil {
		return
	}
	c.cb.Refresh()
}

func (c *Canvas) reportError(msg string, err error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed || c.cb.Error == nil {
		return
	}
	c.cb.Error(msg, err)
}

// createErrorMessage names the likely cause of a failed creation so the toast
// is more useful than a bare "something went wrong".
func createErrorMessage(err error) string {
	var vErr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrUnauthorized), errors.Is(err, store.ErrPetNotFound):
		return "You do not have permission to add pins to this map."
	case errors.As(err, &vErr):
		return "That point cannot be placed on the map."
	default:
		return "Could not create the pin. Please try again."
	}
}
