package db

import (
	"context"
	"errors"

	"credvault-backend/internal/models"
)

// ErrNotFound is returned when a document, or a nested user/credential on
// the requested path, does not exist. Nested lookups reject silently with
// this error rather than distinguishing which path segment was missing.
var ErrNotFound = errors.New("document not found")

// ErrUnavailable wraps transient persistence failures (connection loss,
// timeouts). Callers may retry; the store itself never does.
var ErrUnavailable = errors.New("storage unavailable")

// ValueCipher is the part of the secret cipher the store needs: value
// transformation on write paths and decryption for the single reveal path.
type ValueCipher interface {
	Encrypt(plainText string) (string, error)
	Decrypt(cipherText string) (string, error)
}

// OwnerRepository stores owner accounts keyed by id, with unique
// case-insensitive email lookup.
type OwnerRepository interface {
	Create(ctx context.Context, owner *models.Owner) (string, error)
	GetByID(ctx context.Context, id string) (*models.Owner, error)
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
}

// ProjectRepository is the vault store: owner-scoped project documents
// with atomic nested-array mutation. Every returned project is sanitized
// (credential values replaced by the placeholder); the only method that
// produces plaintext is GetDecryptedCredential.
type ProjectRepository interface {
	Create(ctx context.Context, ownerID string, req models.CreateProjectRequest) (*models.Project, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	GetByOwnerAndID(ctx context.Context, ownerID, projectID string) (*models.Project, error)
	UpdateFields(ctx context.Context, projectID string, req models.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, projectID string) error

	AddUser(ctx context.Context, projectID string, req models.CreateProjectUserRequest) (*models.Project, error)
	UpdateUser(ctx context.Context, projectID, userID string, req models.UpdateProjectUserRequest) (*models.Project, error)
	DeleteUser(ctx context.Context, projectID, userID string) (*models.Project, error)

	AddCredential(ctx context.Context, projectID, userID string, req models.CreateCredentialRequest) (*models.Project, error)
	UpdateCredential(ctx context.Context, projectID, userID, credID string, req models.UpdateCredentialRequest) (*models.Project, error)
	DeleteCredential(ctx context.Context, projectID, userID, credID string) (*models.Project, error)
	RotateCredential(ctx context.Context, projectID, userID, credID, newValue string) (*models.Project, error)
	GetDecryptedCredential(ctx context.Context, projectID, userID, credID string) (string, error)
}
