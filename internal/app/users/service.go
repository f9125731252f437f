package users

import "context"

// Store defines the account operations the user service needs
type Store interface {
	CreateUser(ctx context.Context, username, password string) (int64, error)
	Authenticate(ctx context.Context, username, password string) (int64, error)
}

// Service coordinates account signup and login.
type Service struct {
	store Store
}

// New constructs a user Service backed by the provided Store
func New(store Store) *Service {
	return &Service{store: store}
}

// Signup registers an account and returns its id.
func (s *Service) Signup(ctx context.Context, username, password string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateUser(ctx, username, password)
}

// Login validates credentials and returns the account id.
func (s *Service) Login(ctx context.Context, username, password string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.Authenticate(ctx, username, password)
}
