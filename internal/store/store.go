package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserExists signals the username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized indicates the caller does not own the pet the data
	// belongs to.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPetNotFound is returned when a pet id resolves to nothing.
	ErrPetNotFound = errors.New("pet not found")
	// ErrPinNotFound is returned for stale or unknown pin identifiers.
	ErrPinNotFound = errors.New("pin not found")
	// ErrTravelLocationNotFound is returned for unknown travel location ids.
	ErrTravelLocationNotFound = errors.New("travel location not found")
)

// ValidationError reports malformed input: out-of-range coordinates, oversized
// text, unknown enum values. It is distinct from the transient failures the
// caller may retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}
