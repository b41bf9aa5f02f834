package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credvault-backend/internal/db"
	"credvault-backend/internal/models"
)

func newAuthFixture() AuthService {
	return NewAuthService(db.NewMemoryOwnerRepository())
}

func TestRegister(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	owner, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	require.NotNil(t, owner)

	assert.NotEmpty(t, owner.ID)
	assert.Equal(t, "alice@example.com", owner.Email, "email is normalized to lower case")
	assert.NotEmpty(t, owner.PasswordHash)
	assert.NotContains(t, owner.PasswordHash, "correct horse", "plaintext must never be stored")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password-one"})
	require.NoError(t, err)

	// Same email, different case: still a conflict.
	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Mallory", Email: "ALICE@example.com", Password: "password-two"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestValidateCredentials(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret-passphrase"})
	require.NoError(t, err)

	owner, err := svc.ValidateCredentials(ctx, "alice@example.com", "s3cret-passphrase")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, owner.ID)

	// Case-insensitive email lookup.
	_, err = svc.ValidateCredentials(ctx, "ALICE@EXAMPLE.COM", "s3cret-passphrase")
	assert.NoError(t, err)
}

func TestValidateCredentials_Rejections(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret-passphrase"})
	require.NoError(t, err)

	_, err = svc.ValidateCredentials(ctx, "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, err = svc.ValidateCredentials(ctx, "nobody@example.com", "s3cret-passphrase")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetOwner(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret-passphrase"})
	require.NoError(t, err)

	owner, err := svc.GetOwner(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", owner.Name)

	_, err = svc.GetOwner(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}
