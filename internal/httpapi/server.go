package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"pawmap/internal/store"
	"pawmap/shared/go/models"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Signup(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (int64, error)
}

// PetService coordinates pet profile workflows.
type PetService interface {
	Create(ctx context.Context, userID int64, pet *models.Pet) (*models.Pet, error)
	List(ctx context.Context, userID int64) ([]*models.Pet, error)
	Get(ctx context.Context, userID int64, petID uuid.UUID) (*models.Pet, error)
}

// PinService coordinates pin workflows.
type PinService interface {
	Create(ctx context.Context, userID int64, petID uuid.UUID, lat, lng float64) (*models.Pin, error)
	List(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.Pin, error)
	Update(ctx context.Context, userID int64, pinID uuid.UUID, upd models.PinUpdate) error
	Delete(ctx context.Context, userID int64, pinID uuid.UUID) error
	ClearForPet(ctx context.Context, userID int64, petID uuid.UUID) (int64, error)
}

// TravelService coordinates travel-location workflows.
type TravelService interface {
	Create(ctx context.Context, userID int64, tl *models.TravelLocation) (*models.TravelLocation, error)
	List(ctx context.Context, userID int64, petID uuid.UUID) ([]*models.TravelLocation, error)
	Update(ctx context.Context, userID int64, id uuid.UUID, tl *models.TravelLocation) error
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	pets      PetService
	pins      PinService
	travels   TravelService
	jwtSecret []byte
}

// New configures a Server with the given services and token signing secret.
func New(users UserService, pets PetService, pins PinService, travels TravelService, jwtSecret []byte) *Server {
	return &Server{
		users:     users,
		pets:      pets,
		pins:      pins,
		travels:   travels,
		jwtSecret: jwtSecret,
	}
}

// Routes exposes the HTTP handlers for accounts, pets and map data.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Pet profile routes
	mux.HandleFunc("POST /api/v1/pets", s.requireUser(s.handleCreatePet))
	mux.HandleFunc("GET /api/v1/pets", s.requireUser(s.handleListPets))
	mux.HandleFunc("GET /api/v1/pets/{id}", s.requireUser(s.handleGetPet))

	// Pin routes
	mux.HandleFunc("GET /api/v1/pets/{petID}/pins", s.requireUser(s.handleListPins))
	mux.HandleFunc("POST /api/v1/pets/{petID}/pins", s.requireUser(s.handleCreatePin))
	mux.HandleFunc("DELETE /api/v1/pets/{petID}/pins", s.requireUser(s.handleClearPins))
	mux.HandleFunc("PATCH /api/v1/pins/{id}", s.requireUser(s.handleUpdatePin))
	mux.HandleFunc("DELETE /api/v1/pins/{id}", s.requireUser(s.handleDeletePin))

	// Travel location routes
	mux.HandleFunc("GET /api/v1/pets/{petID}/travel-locations", s.requireUser(s.handleListTravels))
	mux.HandleFunc("POST /api/v1/pets/{petID}/travel-locations", s.requireUser(s.handleCreateTravel))
	mux.HandleFunc("PATCH /api/v1/travel-locations/{id}", s.requireUser(s.handleUpdateTravel))
	mux.HandleFunc("DELETE /api/v1/travel-locations/{id}", s.requireUser(s.handleDeleteTravel))

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeServiceError maps store sentinels onto HTTP statuses. Anything
// unrecognized is a 500; clients treat those as transient.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *store.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
	case errors.Is(err, store.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "you do not have access to this pet"})
	case errors.Is(err, store.ErrPetNotFound),
		errors.Is(err, store.ErrPinNotFound),
		errors.Is(err, store.ErrTravelLocationNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrUserExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func parseUUIDPath(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
