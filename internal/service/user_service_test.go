package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/store"
)

func TestRegister(t *testing.T) {
	users := &MockUserStore{}
	hasher := &MockPasswordHasher{}
	svc := NewUserService(users, hasher, nil)

	hasher.On("Hash", "correct-horse-battery").Return("hashed-value", nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(context.Background(), "test@example.com", "correct-horse-battery")
	require.NoError(t, err)

	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "hashed-value", user.HashedPassword)
	// The plaintext never survives registration.
	assert.Empty(t, user.Password)
}

func TestRegisterEmailTaken(t *testing.T) {
	users := &MockUserStore{}
	hasher := &MockPasswordHasher{}
	svc := NewUserService(users, hasher, nil)

	hasher.On("Hash", mock.Anything).Return("hashed-value", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

	_, err := svc.Register(context.Background(), "taken@example.com", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterInvalidInput(t *testing.T) {
	users := &MockUserStore{}
	hasher := &MockPasswordHasher{}
	svc := NewUserService(users, hasher, nil)

	_, err := svc.Register(context.Background(), "not-an-email", "correct-horse-battery")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "test@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	users := &MockUserStore{}
	hasher := &MockPasswordHasher{}
	svc := NewUserService(users, hasher, nil)

	stored := &domain.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "hashed-value",
	}

	users.On("GetByEmail", mock.Anything, "test@example.com").Return(stored, nil)
	hasher.On("Compare", "hashed-value", "correct-horse-battery").Return(nil)

	user, err := svc.Authenticate(context.Background(), "test@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	users := &MockUserStore{}
	hasher := &MockPasswordHasher{}
	svc := NewUserService(users, hasher, nil)

	// Unknown email and wrong password fail identically, so a caller cannot
	// probe which addresses are registered.
	users.On("GetByEmail", mock.Anything, "missing@example.com").
		Return(nil, store.ErrUserNotFound)
	_, err := svc.Authenticate(context.Background(), "missing@example.com", "whatever-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored := &domain.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "hashed-value",
	}
	users.On("GetByEmail", mock.Anything, "test@example.com").Return(stored, nil)
	hasher.On("Compare", "hashed-value", "wrong-password-here").
		Return(assert.AnError)
	_, err = svc.Authenticate(context.Background(), "test@example.com", "wrong-password-here")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
