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

// petOwner returns the account that owns the given pet.
func (s *Store) petOwner(ctx context.Context, petID uuid.UUID) (int64, error) {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM pets
		WHERE id = $1
	`, petID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPetNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup pet owner: %w", err)
	}
	return ownerID, nil
}

// requirePetOwned gates every pin and travel-location mutation on pet
// ownership.
func (s *Store) requirePetOwned(ctx context.Context, petID uuid.UUID, userID int64) error {
	owner, err := s.petOwner(ctx, petID)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrUnauthorized
	}
	return nil
}

// CreatePet adds a pet profile for a user.
func (s *Store) CreatePet(ctx context.Context, userID int64, pet *models.Pet) (*models.Pet, error) {
	if strings.TrimSpace(pet.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "pet name is required"}
	}

	pet.ID = uuid.New()
	pet.UserID = userID

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pets (id, user_id, name, species, breed, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, pet.ID, userID, pet.Name, pet.Species, pet.Breed, pet.PhotoURL).Scan(&pet.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert pet: %w", err)
	}

	return pet, nil
}

// ListPets returns all pet profiles for a user.
func (s *Store) ListPets(ctx context.Context, userID int64) ([]*models.Pet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, species, breed, photo_url, created_at
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		var p models.Pet
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed,
			&p.PhotoURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		pets = append(pets, &p)
	}

	return pets, rows.Err()
}

// GetPet retrieves a single pet owned by the user.
func (s *Store) GetPet(ctx context.Context, userID int64, petID uuid.UUID) (*models.Pet, error) {
	var p models.Pet
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, species, breed, photo_url, created_at
		FROM pets
		WHERE id = $1
	`, petID).Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &p.PhotoURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pet: %w", err)
	}
	if p.UserID != userID {
		return nil, ErrUnauthorized
	}
	return &p, nil
}
