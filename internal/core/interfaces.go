package core

import (
	"context"

	"credvault-backend/internal/models"
)

// AuthService is the account directory: it registers owners and validates
// login credentials, minting the opaque owner identity everything else is
// scoped to.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Owner, error)
	ValidateCredentials(ctx context.Context, email, password string) (*models.Owner, error)
	GetOwner(ctx context.Context, ownerID string) (*models.Owner, error)
}

// ProjectService is the vault service: every operation resolves
// (ownerID, projectID) before touching anything nested, and
// RevealCredential is the only method permitted to return plaintext.
type ProjectService interface {
	ListProjects(ctx context.Context, ownerID string) ([]*models.Project, error)
	GetProject(ctx context.Context, ownerID, projectID string) (*models.Project, error)
	CreateProject(ctx context.Context, ownerID string, req models.CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, ownerID, projectID string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, ownerID, projectID string) error

	AddUser(ctx context.Context, ownerID, projectID string, req models.CreateProjectUserRequest) (*models.Project, error)
	UpdateUser(ctx context.Context, ownerID, projectID, userID string, req models.UpdateProjectUserRequest) (*models.Project, error)
	DeleteUser(ctx context.Context, ownerID, projectID, userID string) (*models.Project, error)

	AddCredential(ctx context.Context, ownerID, projectID, userID string, req models.CreateCredentialRequest) (*models.Project, error)
	UpdateCredential(ctx context.Context, ownerID, projectID, userID, credID string, req models.UpdateCredentialRequest) (*models.Project, error)
	DeleteCredential(ctx context.Context, ownerID, projectID, userID, credID string) (*models.Project, error)
	RotateCredential(ctx context.Context, ownerID, projectID, userID, credID, newValue string) (*models.Project, error)
	RevealCredential(ctx context.Context, ownerID, projectID, userID, credID string) (string, error)
}
