package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawmap/internal/store"
	"pawmap/shared/go/models"
)

// bootstrapDemoData seeds a demo account with one pet, a few pins and a
// travel history so a fresh install has a map worth looking at.
func bootstrapDemoData(ctx context.Context, dataStore *store.Store) error {
	userID, err := ensureDemoUser(ctx, dataStore)
	if err != nil {
		return err
	}
	if userID == 0 {
		// Account already existed; assume it was seeded on a previous run.
		return nil
	}
	return seedDemoPet(ctx, dataStore, userID)
}

func ensureDemoUser(ctx context.Context, dataStore *store.Store) (int64, error) {
	userID, err := dataStore.CreateUser(ctx, "demo", "demo123")
	if errors.Is(err, store.ErrUserExists) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("bootstrap demo user: %w", err)
	}
	return userID, nil
}

func seedDemoPet(ctx context.Context, dataStore *store.Store, userID int64) error {
	pet, err := dataStore.CreatePet(ctx, userID, &models.Pet{
		Name:    "Biscuit",
		Species: "dog",
		Breed:   "golden retriever",
	})
	if err != nil {
		return fmt.Errorf("bootstrap demo pet: %w", err)
	}

	type seedPin struct {
		Lat, Lng    float64
		Title       string
		Description string
		Category    models.PinCategory
	}

	pins := []seedPin{
		{
			Lat: 39.7392, Lng: -104.9903,
			Title:       "Cherry Creek Dog Park",
			Description: "Off-leash area by the reservoir.",
			Category:    models.CategoryPark,
		},
		{
			Lat: 39.7508, Lng: -104.9966,
			Title:       "Union Station Vet Clinic",
			Description: "Annual checkup, all clear.",
			Category:    models.CategoryVet,
		},
		{
			Lat: 40.0150, Lng: -105.2705,
			Title:    "Boulder weekend trip",
			Category: models.CategoryFavorite,
		},
	}

	for _, sp := range pins {
		pin, err := dataStore.CreatePin(ctx, userID, pet.ID, sp.Lat, sp.Lng)
		if err != nil {
			return fmt.Errorf("bootstrap demo pin %q: %w", sp.Title, err)
		}
		category := sp.Category
		title := sp.Title
		description := sp.Description
		if err := dataStore.UpdatePin(ctx, userID, pin.ID, models.PinUpdate{
			Title:       &title,
			Description: &description,
			Category:    &category,
		}); err != nil {
			return fmt.Errorf("bootstrap demo pin %q: %w", sp.Title, err)
		}
	}

	visited := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	travels := []*models.TravelLocation{
		{
			PetID:       pet.ID,
			Name:        "Colorado",
			Kind:        models.TravelKindState,
			Code:        "CO",
			DateVisited: &visited,
			Notes:       "Home state.",
		},
		{
			PetID: pet.ID,
			Name:  "Canada",
			Kind:  models.TravelKindCountry,
			Code:  "CA",
			Notes: "Road trip to Banff.",
		},
	}
	for _, tl := range travels {
		if _, err := dataStore.CreateTravelLocation(ctx, userID, tl); err != nil {
			return fmt.Errorf("bootstrap demo travel location %q: %w", tl.Name, err)
		}
	}

	return nil
}
