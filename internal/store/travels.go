package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pawmap/shared/go/models"
)

func validateTravelLocation(tl *models.TravelLocation) error {
	if strings.TrimSpace(tl.Name) == "" {
		return &ValidationError{Field: "name", Reason: "location name is required"}
	}
	if tl.Kind != models.TravelKindState && tl.Kind != models.TravelKindCountry {
		return &ValidationError{Field: "kind", Reason: "must be state or country"}
	}
	return nil
}

// CreateTravelLocation records a visited state or country for a pet.
func (s *Store) CreateTravelLocation(ctx context.Context, userID int64, tl *models.TravelLocation) (*models.TravelLocation, error) {
	if err := validateTravelLocation(tl); err != nil {
		return nil, err
	}
	if err := s.requirePetOwned(ctx, tl.PetID, userID); err != nil {
		return nil, err
	}

	tl.ID = uuid.New()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO travel_locations (id, pet_id, name, kind, code, date_visited, photo_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, tl.ID, tl.PetID, tl.Name, string(tl.Kind), tl.Code, tl.DateVisited,
		tl.PhotoURL, tl.Notes).Scan(&tl.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert travel location: %w", err)
	}

	return tl, nil
}

// ListTravelLocations returns all travel locations for a pet, oldest first.
func (s *Store) ListTravelLocations(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.TravelLocation, error) {
	if err := s.requirePetOwned(ctx, petID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pet_id, name, kind, code, date_visited, photo_url, notes, created_at
		FROM travel_locations
		WHERE pet_id = $1
		ORDER BY created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, fmt.Errorf("list travel locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.TravelLocation
	for rows.Next() {
		var (
			tl      models.TravelLocation
			visited sql.NullTime
		)
		if err := rows.Scan(&tl.ID, &tl.PetID, &tl.Name, &tl.Kind, &tl.Code,
			&visited, &tl.PhotoURL, &tl.Notes, &tl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan travel location: %w", err)
		}
		if visited.Valid {
			t := visited.Time
			tl.DateVisited = &t
		}
		locations = append(locations, &tl)
	}

	return locations, rows.Err()
}

// UpdateTravelLocation replaces the descriptive fields of a travel location.
func (s *Store) UpdateTravelLocation(ctx context.Context, userID int64, id uuid.UUID, tl *models.TravelLocation) error {
	if err := validateTravelLocation(tl); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE travel_locations
		SET name = $2,
		    kind = $3,
		    code = $4,
		    date_visited = $5,
		    photo_url = $6,
		    notes = $7
		FROM pets
		WHERE travel_locations.id = $1
		  AND pets.id = travel_locations.pet_id
		  AND pets.user_id = $8
	`, id, tl.Name, string(tl.Kind), tl.Code, tl.DateVisited, tl.PhotoURL, tl.Notes, userID)
	if err != nil {
		return fmt.Errorf("update travel location: %w", err)
	}

	return s.explainNoTravelRows(ctx, res, id)
}

// DeleteTravelLocation removes a travel location.
func (s *Store) DeleteTravelLocation(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM travel_locations
		USING pets
		WHERE travel_locations.id = $1
		  AND pets.id = travel_locations.pet_id
		  AND pets.user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete travel location: %w", err)
	}

	return s.explainNoTravelRows(ctx, res, id)
}

func (s *Store) explainNoTravelRows(ctx context.Context, res sql.Result, id uuid.UUID) error {
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
		FROM travel_locations
		WHERE id = $1
	`, id).Scan(&petID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTravelLocationNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup travel location: %w", err)
	}
	return ErrUnauthorized
}
