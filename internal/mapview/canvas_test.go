package mapview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pawmap/internal/store"
	"pawmap/shared/go/models"
)

type placedMarker struct {
	lat, lng float64
	glyph    Glyph
}

// fakeRenderer records every marker operation so tests can assert on the
// exact rendered set.
type fakeRenderer struct {
	mu            sync.Mutex
	nextID        MarkerID
	markers       map[MarkerID]placedMarker
	popups        map[MarkerID]Popup
	click         func(lat, lng float64)
	clickBindings int
	addLog        []placedMarker
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		markers: make(map[MarkerID]placedMarker),
		popups:  make(map[MarkerID]Popup),
	}
}

func (r *fakeRenderer) AddMarker(lat, lng float64, glyph Glyph) MarkerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m := placedMarker{lat: lat, lng: lng, glyph: glyph}
	r.markers[r.nextID] = m
	r.addLog = append(r.addLog, m)
	return r.nextID
}

func (r *fakeRenderer) BindPopup(id MarkerID, popup Popup) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.popups[id] = popup
}

func (r *fakeRenderer) RemoveMarker(id MarkerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.markers, id)
	delete(r.popups, id)
}

func (r *fakeRenderer) SetClickHandler(handler func(lat, lng float64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.click = handler
	r.clickBindings++
}

func (r *fakeRenderer) markerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.markers)
}

func (r *fakeRenderer) markersByGlyph(glyph Glyph) []placedMarker {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []placedMarker
	for _, m := range r.markers {
		if m.glyph == glyph {
			out = append(out, m)
		}
	}
	return out
}

func (r *fakeRenderer) popupFor(id MarkerID) (Popup, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.popups[id]
	return p, ok
}

// blockingStore wraps a PinStore and parks Create calls until released, so
// tests can hold a creation in flight.
type blockingStore struct {
	PinStore
	gate chan struct{}
	// entered is signalled once per Create as it starts waiting.
	entered chan struct{}
}

func (b *blockingStore) Create(ctx context.Context, petID uuid.UUID, lat, lng float64) (*models.Pin, error) {
	b.entered <- struct{}{}
	<-b.gate
	return b.PinStore.Create(ctx, petID, lat, lng)
}

type canvasFixture struct {
	canvas   *Canvas
	renderer *fakeRenderer
	store    *store.MemoryStore
	petID    uuid.UUID

	mu       sync.Mutex
	errors   []string
	refreshN int
	edited   []*models.Pin
}

// refresh mimics the parent context: re-fetch the authoritative list and hand
// the snapshot back to the canvas.
func (f *canvasFixture) refresh() {
	f.mu.Lock()
	f.refreshN++
	f.mu.Unlock()

	pins, err := f.store.List(context.Background(), f.petID)
	if err != nil {
		panic(err)
	}
	f.canvas.SetData(pins, f.store.TravelLocations(f.petID))
}

func newCanvasFixture(t *testing.T, pinStore PinStore) *canvasFixture {
	t.Helper()
	f := &canvasFixture{
		renderer: newFakeRenderer(),
		petID:    uuid.New(),
	}
	if pinStore == nil {
		f.store = store.NewMemoryStore()
		pinStore = f.store
	} else if ms, ok := pinStore.(*store.MemoryStore); ok {
		f.store = ms
	}
	f.canvas = NewCanvas(f.renderer, pinStore, f.petID, zerolog.Nop(), Callbacks{
		Refresh: func() { f.refresh() },
		Error: func(msg string, err error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.errors = append(f.errors, msg)
		},
		OpenEditor: func(pin *models.Pin) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.edited = append(f.edited, pin)
		},
	})
	return f
}

func (f *canvasFixture) errorCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errors)
}

func (f *canvasFixture) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshN
}

func TestClickHandlerBoundOnce(t *testing.T) {
	f := newCanvasFixture(t, nil)
	f.refresh()
	f.canvas.SetFilter(Filter(models.CategoryPark))
	f.refresh()

	if f.renderer.clickBindings != 1 {
		t.Fatalf("click handler bound %d times, want exactly once", f.renderer.clickBindings)
	}
}

func TestCreatePinLifecycle(t *testing.T) {
	f := newCanvasFixture(t, nil)

	f.canvas.createPin(context.Background(), 40.0, -105.0)

	if n := len(f.renderer.markersByGlyph(GlyphPending)); n != 0 {
		t.Errorf("%d pending markers left after create resolved, want 0", n)
	}
	if f.refreshCount() != 1 {
		t.Errorf("refresh fired %d times, want 1", f.refreshCount())
	}

	pins, _ := f.store.List(context.Background(), f.petID)
	if len(pins) != 1 {
		t.Fatalf("got %d pins, want 1", len(pins))
	}
	if pins[0].Latitude != 40.0 || pins[0].Longitude != -105.0 {
		t.Errorf("pin at (%v, %v), want (40, -105)", pins[0].Latitude, pins[0].Longitude)
	}
	if pins[0].Category != models.CategoryCustom {
		t.Errorf("category = %q, want custom", pins[0].Category)
	}
	if f.renderer.markerCount() != 1 {
		t.Errorf("%d markers rendered, want 1", f.renderer.markerCount())
	}
}

func TestCreateFailureRemovesPendingMarker(t *testing.T) {
	f := newCanvasFixture(t, nil)
	f.store.FailNext(errors.New("connection reset"))

	f.canvas.createPin(context.Background(), 40.0, -105.0)

	if n := len(f.renderer.markersByGlyph(GlyphPending)); n != 0 {
		t.Errorf("%d pending markers left after failed create, want 0", n)
	}
	if f.refreshCount() != 0 {
		t.Errorf("refresh fired on failure")
	}
	if f.errorCount() != 1 {
		t.Errorf("got %d error notifications, want 1", f.errorCount())
	}
}

func TestConcurrentCreatesBothLand(t *testing.T) {
	f := newCanvasFixture(t, nil)

	var wg sync.WaitGroup
	coords := [][2]float64{{40.0, -105.0}, {39.7, -104.9}}
	for _, c := range coords {
		wg.Add(1)
		go func(lat, lng float64) {
			defer wg.Done()
			f.canvas.createPin(context.Background(), lat, lng)
		}(c[0], c[1])
	}
	wg.Wait()

	pins, _ := f.store.List(context.Background(), f.petID)
	if len(pins) != 2 {
		t.Fatalf("got %d pins, want 2 distinct pins", len(pins))
	}
	if pins[0].ID == pins[1].ID {
		t.Error("pins share an id")
	}

	// The final refresh renders the full list.
	f.refresh()
	if f.renderer.markerCount() != 2 {
		t.Errorf("%d markers rendered, want 2", f.renderer.markerCount())
	}
}

func TestCloseDuringInFlightCreate(t *testing.T) {
	mem := store.NewMemoryStore()
	blocking := &blockingStore{
		PinStore: mem,
		gate:     make(chan struct{}),
		entered:  make(chan struct{}, 1),
	}
	f := newCanvasFixture(t, blocking)

	done := make(chan struct{})
	go func() {
		f.canvas.createPin(context.Background(), 40.0, -105.0)
		close(done)
	}()

	<-blocking.entered
	f.canvas.Close()
	close(blocking.gate)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("create continuation did not finish")
	}

	if f.renderer.markerCount() != 0 {
		t.Errorf("%d markers on a closed canvas, want 0", f.renderer.markerCount())
	}
	if f.refreshCount() != 0 {
		t.Error("refresh fired after Close")
	}
}

func TestRenderedSetMatchesFilteredSnapshot(t *testing.T) {
	f := newCanvasFixture(t, nil)
	ctx := context.Background()

	vetPin, _ := f.store.Create(ctx, f.petID, 40.0, -105.0)
	category := models.CategoryVet
	if err := f.store.Update(ctx, vetPin.ID, models.PinUpdate{Category: &category}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := f.store.Create(ctx, f.petID, 39.0, -104.0); err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.refresh()
	if f.renderer.markerCount() != 2 {
		t.Fatalf("%d markers under filter all, want 2", f.renderer.markerCount())
	}

	f.canvas.SetFilter(Filter(models.CategoryVet))
	ids := f.canvas.RenderedPinIDs()
	if len(ids) != 1 || ids[0] != vetPin.ID {
		t.Fatalf("rendered %v under vet filter, want just %v", ids, vetPin.ID)
	}

	// No pins of this category: zero pin markers.
	f.canvas.SetFilter(Filter(models.CategoryPark))
	if n := len(f.canvas.RenderedPinIDs()); n != 0 {
		t.Fatalf("%d pin markers under park filter, want 0", n)
	}
}

func TestTravelMarkersUnaffectedByPinFilter(t *testing.T) {
	f := newCanvasFixture(t, nil)
	f.store.SeedTravelLocation(&models.TravelLocation{
		PetID: f.petID,
		Name:  "Colorado",
		Kind:  models.TravelKindState,
	})
	f.store.SeedTravelLocation(&models.TravelLocation{
		PetID: f.petID,
		Name:  "Atlantis", // not in the gazetteer; renders nothing
		Kind:  models.TravelKindCountry,
	})

	f.refresh()
	if n := len(f.renderer.markersByGlyph(GlyphTravel)); n != 1 {
		t.Fatalf("%d travel markers, want 1 (Atlantis must be silently skipped)", n)
	}

	f.canvas.SetFilter(Filter(models.CategoryPark))
	if n := len(f.renderer.markersByGlyph(GlyphTravel)); n != 1 {
		t.Fatalf("pin filter removed travel markers: got %d, want 1", n)
	}
	if f.errorCount() != 0 {
		t.Errorf("unresolvable travel location raised an error")
	}
}

func TestPopupEditResolvesCurrentPin(t *testing.T) {
	f := newCanvasFixture(t, nil)
	ctx := context.Background()

	pin, _ := f.store.Create(ctx, f.petID, 40.0, -105.0)
	f.refresh()

	var popup Popup
	f.renderer.mu.Lock()
	for _, p := range f.renderer.popups {
		popup = p
	}
	f.renderer.mu.Unlock()
	if popup.OnEdit == nil {
		t.Fatal("popup has no edit action")
	}

	// The pin changes between render and popup invocation.
	title := "Dr. Smith"
	if err := f.store.Update(ctx, pin.ID, models.PinUpdate{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.refresh()

	// Invoking the stale popup's action must still act on the current pin.
	popup.OnEdit()

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edited) != 1 {
		t.Fatalf("editor opened %d times, want 1", len(f.edited))
	}
	if f.edited[0].Title != "Dr. Smith" {
		t.Errorf("editor got title %q, want the current %q", f.edited[0].Title, "Dr. Smith")
	}
	if f.edited[0].ID != pin.ID {
		t.Error("editor got a different pin")
	}
}

func TestPopupDeleteRemovesPin(t *testing.T) {
	f := newCanvasFixture(t, nil)
	ctx := context.Background()

	pin, _ := f.store.Create(ctx, f.petID, 40.0, -105.0)
	f.refresh()

	f.canvas.deletePin(ctx, pin.ID)

	pins, _ := f.store.List(ctx, f.petID)
	if len(pins) != 0 {
		t.Fatalf("pin still present after delete")
	}
	if f.renderer.markerCount() != 0 {
		t.Errorf("%d markers after delete refresh, want 0", f.renderer.markerCount())
	}
}

func TestClearAllPins(t *testing.T) {
	f := newCanvasFixture(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.store.Create(ctx, f.petID, float64(i), float64(i)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	f.refresh()

	// Without confirmation nothing happens.
	if err := f.canvas.ClearAllPins(ctx, false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	pins, _ := f.store.List(ctx, f.petID)
	if len(pins) != 3 {
		t.Fatal("unconfirmed clear mutated the store")
	}

	// A failed clear reports once and leaves everything in place.
	f.store.FailNext(errors.New("connection reset"))
	if err := f.canvas.ClearAllPins(ctx, true); err == nil {
		t.Fatal("expected error from failed clear")
	}
	pins, _ = f.store.List(ctx, f.petID)
	if len(pins) != 3 {
		t.Fatal("failed clear must leave pins untouched")
	}
	if f.errorCount() != 1 {
		t.Errorf("got %d error notifications, want exactly 1", f.errorCount())
	}

	if err := f.canvas.ClearAllPins(ctx, true); err != nil {
		t.Fatalf("ClearAllPins: %v", err)
	}
	pins, _ = f.store.List(ctx, f.petID)
	if len(pins) != 0 {
		t.Fatalf("%d pins after clear, want 0", len(pins))
	}
	if f.renderer.markerCount() != 0 {
		t.Errorf("%d markers after clear refresh, want 0", f.renderer.markerCount())
	}
}

func TestUnknownCategoryRendersWithFallbackGlyph(t *testing.T) {
	f := newCanvasFixture(t, nil)
	ctx := context.Background()

	pin, _ := f.store.Create(ctx, f.petID, 10.0, 20.0)
	f.refresh()
	_ = pin

	// Hand the canvas a snapshot containing a legacy category directly; the
	// store would reject writing one today but old rows still carry them.
	legacy := &models.Pin{
		ID:       uuid.New(),
		PetID:    f.petID,
		Latitude: 1, Longitude: 2,
		Category: "legacy_tag",
	}
	f.canvas.SetData([]*models.Pin{legacy}, nil)

	markers := f.renderer.markersByGlyph(GlyphFor(models.CategoryCustom))
	if len(markers) != 1 {
		t.Fatalf("legacy pin not rendered with fallback glyph")
	}

	// The raw value still distinguishes it from custom pins.
	if got := VisiblePins([]*models.Pin{legacy}, Filter(models.CategoryCustom)); len(got) != 0 {
		t.Error("legacy pin matched the custom filter")
	}
	if got := VisiblePins([]*models.Pin{legacy}, FilterAll); len(got) != 1 {
		t.Error("legacy pin missing under the all filter")
	}
}
