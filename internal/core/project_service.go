package core

import (
	"context"
	"errors"
	"fmt"

	"credvault-backend/internal/db"
	"credvault-backend/internal/models"
)

// ErrNotFound is the single domain error for a project, user, or
// credential that is absent or not owned by the caller. A project owned
// by someone else fails the same way as one that does not exist, so
// nothing about other tenants' data leaks through error shapes.
var ErrNotFound = errors.New("not found")

// projectService implements the ProjectService interface. It is the one
// authorization checkpoint: every operation resolves the project under
// the caller's ownership before any nested operation runs.
type projectService struct {
	projectRepo db.ProjectRepository
}

// NewProjectService creates a new ProjectService instance.
func NewProjectService(projectRepo db.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

// checkOwnership resolves (ownerID, projectID) or fails with ErrNotFound.
// Every read or mutation of nested data calls this first.
func (s *projectService) checkOwnership(ctx context.Context, ownerID, projectID string) error {
	_, err := s.projectRepo.GetByOwnerAndID(ctx, ownerID, projectID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: project %s", ErrNotFound, projectID)
		}
		return err
	}
	return nil
}

// translate maps the repository's not-found onto the domain error and
// passes everything else (storage failures, decryption failures) through
// unchanged.
func translate(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ListProjects returns all projects for an owner, newest-updated first,
// with every credential value masked.
func (s *projectService) ListProjects(ctx context.Context, ownerID string) ([]*models.Project, error) {
	projects, err := s.projectRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for owner %s: %w", ownerID, err)
	}
	return projects, nil
}

// GetProject returns one owned project with masked credential values.
func (s *projectService) GetProject(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByOwnerAndID(ctx, ownerID, projectID)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// CreateProject persists a new project for the owner. Credential values in
// the draft are encrypted by the store before anything hits disk.
func (s *projectService) CreateProject(ctx context.Context, ownerID string, req models.CreateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.Create(ctx, ownerID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProject merges top-level fields after the ownership check.
func (s *projectService) UpdateProject(ctx context.Context, ownerID, projectID string, req models.UpdateProjectRequest) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.UpdateFields(ctx, projectID, req)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// DeleteProject removes an owned project and everything nested in it.
func (s *projectService) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return err
	}
	return translate(s.projectRepo.Delete(ctx, projectID))
}

// AddUser appends a team member to an owned project.
func (s *projectService) AddUser(ctx context.Context, ownerID, projectID string, req models.CreateProjectUserRequest) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.AddUser(ctx, projectID, req)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// UpdateUser patches exactly one team member of an owned project.
func (s *projectService) UpdateUser(ctx context.Context, ownerID, projectID, userID string, req models.UpdateProjectUserRequest) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.UpdateUser(ctx, projectID, userID, req)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// DeleteUser removes one team member, cascading to their credentials.
func (s *projectService) DeleteUser(ctx context.Context, ownerID, projectID, userID string) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.DeleteUser(ctx, projectID, userID)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// AddCredential appends a secret to a team member of an owned project.
func (s *projectService) AddCredential(ctx context.Context, ownerID, projectID, userID string, req models.CreateCredentialRequest) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.AddCredential(ctx, projectID, userID, req)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// UpdateCredential patches exactly one secret. A new value is re-encrypted
// and refreshes the rotation timestamp inside the store.
func (s *projectService) UpdateCredential(ctx context.Context, ownerID, projectID, userID, credID string, req models.UpdateCredentialRequest) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.UpdateCredential(ctx, projectID, userID, credID, req)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// DeleteCredential removes exactly one secret.
func (s *projectService) DeleteCredential(ctx context.Context, ownerID, projectID, userID, credID string) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.DeleteCredential(ctx, projectID, userID, credID)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// RotateCredential replaces a secret's value and clears its
// needs-rotation flag.
func (s *projectService) RotateCredential(ctx context.Context, ownerID, projectID, userID, credID, newValue string) (*models.Project, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.RotateCredential(ctx, projectID, userID, credID, newValue)
	if err != nil {
		return nil, translate(err)
	}
	return project, nil
}

// RevealCredential is the only operation that returns plaintext. It
// returns the bare value, never a project object, and a decryption
// failure propagates as the cipher's error, distinct from ErrNotFound.
func (s *projectService) RevealCredential(ctx context.Context, ownerID, projectID, userID, credID string) (string, error) {
	if err := s.checkOwnership(ctx, ownerID, projectID); err != nil {
		return "", err
	}
	value, err := s.projectRepo.GetDecryptedCredential(ctx, projectID, userID, credID)
	if err != nil {
		return "", translate(err)
	}
	return value, nil
}
