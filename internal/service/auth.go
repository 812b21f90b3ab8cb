package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/urbanfresh/auth-api/internal/auth"
	"github.com/urbanfresh/auth-api/internal/models"
	"github.com/urbanfresh/auth-api/internal/storage"
)

// AuthService orchestrates registration and login over the credential store,
// password hasher, and token manager. It holds no per-request state.
type AuthService struct {
	store  storage.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	log    zerolog.Logger
}

// NewAuthService constructs the service.
func NewAuthService(store storage.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new CUSTOMER account. The email is normalized before any
// store access; a taken email fails with *DuplicateEmailError. The returned
// user carries the stored hash internally but handlers only expose public
// fields.
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (models.User, error) {
	normalized := NormalizeEmail(email)

	exists, err := s.store.EmailExists(ctx, normalized)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, &DuplicateEmailError{Email: normalized}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		Phone:        strings.TrimSpace(phone),
		Role:         models.RoleCustomer,
		PasswordHash: hash,
	}
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index decides the race and the loser lands here.
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, &DuplicateEmailError{Email: normalized}
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token. An unknown email and
// a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	normalized := NormalizeEmail(email)

	user, err := s.store.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("fetch user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Email, user.Role)
	if err != nil {
		return models.User{}, "", fmt.Errorf("generate token: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// ListUsers returns every account. Exposed on the admin surface only.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// NormalizeEmail lowercases and trims an email so lookups and storage agree
// on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
