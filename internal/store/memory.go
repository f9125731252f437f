package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// MemoryStore keeps pins and travel locations in process memory. It satisfies
// the map view's PinStore contract and backs tests and the headless demo,
// where a Postgres round-trip would add nothing.
type MemoryStore struct {
	mu      sync.RWMutex
	pins    map[uuid.UUID]*models.Pin
	travels map[uuid.UUID]*models.TravelLocation
	seq     map[uuid.UUID]int
	nextSeq int
	nextErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pins:    make(map[uuid.UUID]*models.Pin),
		travels: make(map[uuid.UUID]*models.TravelLocation),
		seq:     make(map[uuid.UUID]int),
	}
}

// FailNext makes the next mutating or listing call return err instead of
// doing anything. Used to exercise error paths.
func (m *MemoryStore) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}

func (m *MemoryStore) takeInjectedError() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

// Create places a new pin for a pet with the default category.
func (m *MemoryStore) Create(_ context.Context, petID uuid.UUID, lat, lng float64) (*models.Pin, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeInjectedError(); err != nil {
		return nil, err
	}

	pin := &models.Pin{
		ID:        uuid.New(),
		PetID:     petID,
		Latitude:  lat,
		Longitude: lng,
		Category:  models.CategoryCustom,
		CreatedAt: time.Now().UTC(),
	}
	m.pins[pin.ID] = pin
	m.seq[pin.ID] = m.nextSeq
	m.nextSeq++

	return clonePin(pin), nil
}

// Update changes a pin's mutable fields. Position and pet are untouched.
func (m *MemoryStore) Update(_ context.Context, pinID uuid.UUID, upd models.PinUpdate) error {
	if err := validatePinUpdate(upd); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeInjectedError(); err != nil {
		return err
	}

	pin, ok := m.pins[pinID]
	if !ok {
		return ErrPinNotFound
	}
	if upd.Title != nil {
		pin.Title = *upd.Title
	}
	if upd.Description != nil {
		pin.Description = *upd.Description
	}
	if upd.Category != nil {
		pin.Category = *upd.Category
	}
	return nil
}

// Delete removes a single pin.
func (m *MemoryStore) Delete(_ context.Context, pinID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeInjectedError(); err != nil {
		return err
	}

	if _, ok := m.pins[pinID]; !ok {
		return ErrPinNotFound
	}
	delete(m.pins, pinID)
	delete(m.seq, pinID)
	return nil
}

// DeleteAllForPet removes every pin for a pet. All or nothing: an injected
// failure leaves the collection untouched.
func (m *MemoryStore) DeleteAllForPet(_ context.Context, petID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeInjectedError(); err != nil {
		return err
	}

	for id, pin := range m.pins {
		if pin.PetID == petID {
			delete(m.pins, id)
			delete(m.seq, id)
		}
	}
	return nil
}

// List returns the pet's pins in creation order.
func (m *MemoryStore) List(_ context.Context, petID uuid.UUID) ([]*models.Pin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var pins []*models.Pin
	for _, pin := range m.pins {
		if pin.PetID == petID {
			pins = append(pins, clonePin(pin))
		}
	}
	sort.Slice(pins, func(i, j int) bool {
		return m.seq[pins[i].ID] < m.seq[pins[j].ID]
	})
	return pins, nil
}

// SeedTravelLocation adds a travel location directly, bypassing validation.
// Travel locations are read-only from the map view's perspective.
func (m *MemoryStore) SeedTravelLocation(tl *models.TravelLocation) *models.TravelLocation {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *tl
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	m.travels[cp.ID] = &cp
	m.seq[cp.ID] = m.nextSeq
	m.nextSeq++

	out := cp
	return &out
}

// TravelLocations returns the pet's travel locations in insertion order.
func (m *MemoryStore) TravelLocations(petID uuid.UUID) []*models.TravelLocation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var locations []*models.TravelLocation
	for _, tl := range m.travels {
		if tl.PetID == petID {
			cp := *tl
			locations = append(locations, &cp)
		}
	}
	sort.Slice(locations, func(i, j int) bool {
		return m.seq[locations[i].ID] < m.seq[locations[j].ID]
	})
	return locations
}

func clonePin(pin *models.Pin) *models.Pin {
	cp := *pin
	if pin.TravelLocationID != nil {
		id := *pin.TravelLocationID
		cp.TravelLocationID = &id
	}
	return &cp
}
