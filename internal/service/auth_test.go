package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbanfresh/auth-api/internal/auth"
	"github.com/urbanfresh/auth-api/internal/models"
	"github.com/urbanfresh/auth-api/internal/storage"
)

// memStore is an in-memory UserStore with the same uniqueness semantics as
// the Postgres implementation.
type memStore struct {
	users  map[string]models.User
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]models.User), nextID: 1}
}

func (m *memStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	if _, ok := m.users[user.Email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.Email] = user
	return user, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func newTestService(store storage.UserStore) *AuthService {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager("test-secret", "test-issuer", time.Hour)
	return NewAuthService(store, hasher, tokens, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	svc := newTestService(newMemStore())

	user, err := svc.Register(context.Background(), "Alice", "Alice@X.com ", "pw123456", "555-0100")
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@x.com", user.Email, "email should be lowercased and trimmed")
	assert.Equal(t, models.RoleCustomer, user.Role, "public registration always yields CUSTOMER")
	assert.NotEqual(t, "pw123456", user.PasswordHash)
	assert.NotZero(t, user.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Register(context.Background(), "Alice", "alice@x.com", "pw123456", "555-0100")
	require.NoError(t, err)

	// Same address in a different case with surrounding whitespace.
	_, err = svc.Register(context.Background(), "Alice Again", "  ALICE@X.COM ", "pw654321", "555-0101")
	var dup *DuplicateEmailError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "alice@x.com", dup.Email)
	assert.Equal(t, "Email already registered: alice@x.com", dup.Error())
}

// existsLiar reports the email as free so the insert itself has to resolve
// the conflict, mimicking two registrations racing past the pre-check.
type existsLiar struct{ *memStore }

func (e *existsLiar) EmailExists(context.Context, string) (bool, error) { return false, nil }

func TestAuthService_Register_RaceLoserGetsDuplicate(t *testing.T) {
	store := newMemStore()
	svc := newTestService(&existsLiar{store})

	_, err := svc.Register(context.Background(), "Alice", "alice@x.com", "pw123456", "555-0100")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Alice Twin", "alice@x.com", "pw123456", "555-0101")
	var dup *DuplicateEmailError
	require.ErrorAs(t, err, &dup)
	assert.Len(t, store.users, 1, "exactly one registration wins")
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.Register(context.Background(), "Alice", "alice@x.com", "pw123456", "555-0100")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), " ALICE@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NotEmpty(t, token)

	tokens := auth.NewTokenManager("test-secret", "test-issuer", time.Hour)
	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Subject)
	assert.Equal(t, "CUSTOMER", claims.Role)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.Register(context.Background(), "Alice", "alice@x.com", "pw123456", "555-0100")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "alice@x.com", "nope")
	_, _, unknownEmail := svc.Login(context.Background(), "bob@x.com", "pw123456")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	// Identical message either way, so callers cannot probe which check failed.
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice@X.com", "alice@x.com"},
		{"  bob@y.com  ", "bob@y.com"},
		{"MIXED@Case.COM", "mixed@case.com"},
		{"plain@z.com", "plain@z.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}
