// Package auth manages the local account registry: registration, login
// and the persisted current-user marker. Passwords are stored as bcrypt
// hashes, never in the clear.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/models"
	"github.com/avezina/skilltrack/internal/storage"
)

var (
	ErrEmailTaken     = errors.New("an account with this email already exists")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrWeakPassword   = fmt.Errorf("password must be at least %d characters", config.MinPasswordLen)
	ErrInvalidEmail   = errors.New("invalid email address")
)

// DemoEmail is the pre-seeded account available on a fresh install.
const (
	DemoEmail    = "demo@example.com"
	demoName     = "Demo User"
	demoPassword = "demo123"
)

// Service owns account lifecycle on top of the shared record store.
type Service struct {
	store *storage.Store
	clock func() time.Time
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store, clock: time.Now}
}

// ValidatePassword reports whether a candidate password meets the
// minimum length policy.
func ValidatePassword(password string) error {
	if len(password) < config.MinPasswordLen {
		return ErrWeakPassword
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates a new account, hashes its password and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, errors.New("name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock(),
	}
	users = append(users, user)
	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}
	if err := s.store.SetCurrentUser(ctx, user); err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}
	return &user, nil
}

// Login verifies credentials and persists the session marker. The same
// error is returned for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrBadCredentials
		}
		if err := s.store.SetCurrentUser(ctx, u); err != nil {
			return nil, fmt.Errorf("signing in: %w", err)
		}
		return &u, nil
	}
	return nil, ErrBadCredentials
}

// Logout clears the persisted session marker.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearCurrentUser(ctx)
}

// CurrentUser returns the signed-in account, or nil when nobody is.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.store.CurrentUser(ctx)
}

// EnsureDemoUser seeds the demo account on first run so the app is
// usable without registering. It never overwrites an existing account.
func (s *Service) EnsureDemoUser(ctx context.Context) error {
	users, err := s.store.Users(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, DemoEmail) {
			return nil
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	users = append(users, models.User{
		ID:           uuid.NewString(),
		Name:         demoName,
		Email:        DemoEmail,
		PasswordHash: string(hash),
		CreatedAt:    s.clock(),
	})
	return s.store.SaveUsers(ctx, users)
}
