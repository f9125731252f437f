package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

// ValidateCoordinates rejects latitudes and longitudes outside the WGS84
// ranges before they reach the database.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return &ValidationError{Field: "latitude", Reason: "must be between -90 and 90"}
	}
	if lng < -180 || lng > 180 {
		return &ValidationError{Field: "longitude", Reason: "must be between -180 and 180"}
	}
	return nil
}

func validatePinUpdate(upd models.PinUpdate) error {
	if upd.Title != nil && len([]rune(*upd.Title)) > models.MaxPinTitleLen {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("longer than %d characters", models.MaxPinTitleLen)}
	}
	if upd.Description != nil && len([]rune(*upd.Description)) > models.MaxPinDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("longer than %d characters", models.MaxPinDescriptionLen)}
	}
	if upd.Category != nil && !upd.Category.Known() {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	return nil
}

// CreatePin places a new pin for a pet. Position and pet are fixed here and
// never change afterwards; the category starts out as custom.
func (s *Store) CreatePin(ctx context.Context, userID int64, petID uuid.UUID, lat, lng float64) (*models.Pin, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if err := s.requirePetOwned(ctx, petID, userID); err != nil {
		return nil, err
	}

	pin := &models.Pin{
		ID:        uuid.New(),
		PetID:     petID,
		Latitude:  lat,
		Longitude: lng,
		Category:  models.CategoryCustom,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pins (id, pet_id, latitude, longitude, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, pin.ID, petID, lat, lng, string(pin.Category)).Scan(&pin.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return nil, &ValidationError{Field: "position", Reason: "coordinates out of range"}
		}
		return nil, fmt.Errorf("insert pin: %w", err)
	}

	return pin, nil
}

// ListPins returns every pin for a pet, oldest first.
func (s *Store) ListPins(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.Pin, error) {
	if err := s.requirePetOwned(ctx, petID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pet_id, latitude, longitude, title, description, category,
		       travel_location_id, created_at
		FROM pins
		WHERE pet_id = $1
		ORDER BY created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, fmt.Errorf("list pins: %w", err)
	}
	defer rows.Close()

	var pins []*models.Pin
	for rows.Next() {
		var (
			p        models.Pin
			travelID uuid.NullUUID
		)
		if err := rows.Scan(&p.ID, &p.PetID, &p.Latitude, &p.Longitude,
			&p.Title, &p.Description, &p.Category, &travelID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		if travelID.Valid {
			id := travelID.UUID
			p.TravelLocationID = &id
		}
		pins = append(pins, &p)
	}

	return pins, rows.Err()
}

// UpdatePin changes a pin's title, description and/or category. Position and
// owning pet are immutable; they are deliberately absent from the statement.
func (s *Store) UpdatePin(ctx context.Context, userID int64, pinID uuid.UUID, upd models.PinUpdate) error {
	if err := validatePinUpdate(upd); err != nil {
		return err
	}

	var category *string
	if upd.Category != nil {
		v := string(*upd.Category)
		category = &v
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE pins
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    category = COALESCE($4, category)
		FROM pets
		WHERE pins.id = $1
		  AND pets.id = pins.pet_id
		  AND pets.user_id = $5
	`, pinID, upd.Title, upd.Description, category, userID)
	if err != nil {
		return fmt.Errorf("update pin: %w", err)
	}

	return s.explainNoRows(ctx, res, pinID, userID)
}

// DeletePin removes a single pin.
func (s *Store) DeletePin(ctx context.Context, userID int64, pinID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM pins
		USING pets
		WHERE pins.id = $1
		  AND pets.id = pins.pet_id
		  AND pets.user_id = $2
	`, pinID, userID)
	if err != nil {
		return fmt.Errorf("delete pin: %w", err)
	}

	return s.explainNoRows(ctx, res, pinID, userID)
}

// DeleteAllPins removes every pin belonging to a pet in one statement, so the
// client never observes a partially cleared map. Returns the number of pins
// removed.
func (s *Store) DeleteAllPins(ctx context.Context, userID int64, petID uuid.UUID) (int64, error) {
	if err := s.requirePetOwned(ctx, petID, userID); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM pins
		WHERE pet_id = $1
	`, petID)
	if err != nil {
		return 0, fmt.Errorf("delete pins: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// explainNoRows turns a zero-row mutation into the right sentinel: the pin is
// gone, or it exists but belongs to someone else's pet.
func (s *Store) explainNoRows(ctx context.Context, res sql.Result, pinID uuid.UUID, userID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var petID uuid.UUID
	err = s.db.QueryRowContext(ctx, `
		SELECT pet_id
		FROM pins
		WHERE id = $1
	`, pinID).Scan(&petID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPinNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup pin: %w", err)
	}
	return ErrUnauthorized
}
