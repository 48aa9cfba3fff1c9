// Package users manages the local accounts table. Accounts are created from the CLI only;
// no HTTP route authenticates against them.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/company-prep/internal/config"
	"github.com/jonathan/company-prep/internal/db"
)

var validate = validator.New()

// ErrUsernameTaken indicates the username is already registered
var ErrUsernameTaken = errors.New("username already taken")

// ErrInvalidCredentials indicates an unknown username or a wrong password
var ErrInvalidCredentials = errors.New("invalid username or password")

// Store is the persistence the service needs; *db.DB implements it
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByUsername(ctx context.Context, username string) (*db.User, error)
}

// CreateRequest is the input for Create
type CreateRequest struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=8,max=72"`
}

// User is an account without its password hash
type User struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}

// Service provides account creation and password checks
type Service struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewService creates a Service with the given dependencies
func NewService(store Store, passwordConfig *config.PasswordConfig) *Service {
	return &Service{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

func toUser(u *db.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// Create registers a new account
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	existing, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreateUser(ctx, req.Username, hash)
	if err != nil {
		return nil, err
	}
	return toUser(created), nil
}

// Get returns the account with id, or nil when none exists
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

// Authenticate checks a username and password pair
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil || !s.passwordConfig.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return toUser(u), nil
}
