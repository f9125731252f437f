package mapview

import (
	"context"
	"errors"
	"sync"

	"pawmap/shared/go/models"
)

// ErrSaveInFlight is returned when Save is called while a previous save has
// not resolved yet. The UI disables the save control for the duration; this
// is the backstop against duplicate submissions.
var ErrSaveInFlight = errors.New("a save is already in flight")

// Editor holds the modal-scoped form state for editing one pin's metadata.
// Form state is local until Save succeeds; Cancel discards it without a
// single store call. Position and identity are not represented here at all;
// only title, description and category ever leave the editor.
type Editor struct {
	mu    sync.Mutex
	store PinStore
	pin   *models.Pin // nil in new-pin mode, where Save is a no-op

	title       string
	description string
	category    models.PinCategory

	saving  bool
	onSaved func()
}

// NewEditor seeds an editor from the pin's current metadata. A nil pin opens
// the editor in new-pin mode; nothing can be saved from it (direct creation
// goes through the canvas click path).
func NewEditor(pinStore PinStore, pin *models.Pin, onSaved func()) *Editor {
	e := &Editor{
		store:    pinStore,
		onSaved:  onSaved,
		category: models.CategoryCustom,
	}
	if pin != nil {
		cp := *pin
		e.pin = &cp
		e.title = pin.Title
		e.description = pin.Description
		e.category = pin.Category
	}
	return e
}

// SetTitle updates the form title, truncated at the max length. Truncation
// mirrors the form's maxlength attribute; it is not an error.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = truncateRunes(title, models.MaxPinTitleLen)
}

// SetDescription updates the form description, truncated at the max length.
func (e *Editor) SetDescription(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.description = truncateRunes(description, models.MaxPinDescriptionLen)
}

// SetCategory picks a category from the known set. Unknown values are
// ignored; the form only offers known ones.
func (e *Editor) SetCategory(c models.PinCategory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c.Known() {
		e.category = c
	}
}

// Title returns the current form title.
func (e *Editor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// Description returns the current form description.
func (e *Editor) Description() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.description
}

// Category returns the current form category.
func (e *Editor) Category() models.PinCategory {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.category
}

// Save issues the metadata update. Only one save may be in flight per editor;
// a second call while the first is pending returns ErrSaveInFlight. On
// success the onSaved callback fires (the parent refreshes and closes the
// modal); on failure the form state is untouched so the user can retry.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	if e.pin == nil {
		// New-pin mode has no save target yet.
		e.mu.Unlock()
		return nil
	}
	e.saving = true
	title := e.title
	description := e.description
	category := e.category
	pinID := e.pin.ID
	e.mu.Unlock()

	err := e.store.Update(ctx, pinID, models.PinUpdate{
		Title:       &title,
		Description: &description,
		Category:    &category,
	})

	e.mu.Lock()
	e.saving = false
	e.mu.Unlock()

	if err != nil {
		return err
	}
	if e.onSaved != nil {
		e.onSaved()
	}
	return nil
}

// Cancel discards the form. Deliberately empty of store calls: whatever was
// typed, the authoritative pin is untouched.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = ""
	e.description = ""
	e.category = models.CategoryCustom
	e.pin = nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
