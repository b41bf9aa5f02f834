package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"credvault-backend/internal/models"
)

// memoryOwnerRepository is an in-memory OwnerRepository used by tests and
// local development. It shares the mutation protocol with the Mongo
// implementation, so the same semantics are exercised either way.
type memoryOwnerRepository struct {
	mu     sync.RWMutex
	owners map[string]models.Owner
}

// NewMemoryOwnerRepository creates an empty in-memory owner store.
func NewMemoryOwnerRepository() OwnerRepository {
	return &memoryOwnerRepository{owners: make(map[string]models.Owner)}
}

func (r *memoryOwnerRepository) Create(ctx context.Context, owner *models.Owner) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner.ID = newID()
	owner.Email = strings.ToLower(owner.Email)
	owner.CreatedAt = time.Now().UTC()
	r.owners[owner.ID] = *owner
	return owner.ID, nil
}

func (r *memoryOwnerRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &owner, nil
}

func (r *memoryOwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, owner := range r.owners {
		if owner.Email == email {
			o := owner
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// memoryProjectRepository is an in-memory ProjectRepository. Documents are
// deep-copied on the way in and out so callers can never reach the stored
// arena directly.
type memoryProjectRepository struct {
	mu       sync.Mutex
	projects map[string]*models.Project
	cipher   ValueCipher
}

// NewMemoryProjectRepository creates an empty in-memory vault store using
// the given cipher for value transformation.
func NewMemoryProjectRepository(cipher ValueCipher) ProjectRepository {
	return &memoryProjectRepository{
		projects: make(map[string]*models.Project),
		cipher:   cipher,
	}
}

func (r *memoryProjectRepository) Create(ctx context.Context, ownerID string, req models.CreateProjectRequest) (*models.Project, error) {
	project, err := buildProject(r.cipher, ownerID, req, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.projects[project.ID] = project
	r.mu.Unlock()
	return project.Sanitized(), nil
}

func (r *memoryProjectRepository) GetByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects := []*models.Project{}
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			projects = append(projects, p.Sanitized())
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

func (r *memoryProjectRepository) GetByOwnerAndID(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return p.Sanitized(), nil
}

func (r *memoryProjectRepository) UpdateFields(ctx context.Context, projectID string, req models.UpdateProjectRequest) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		applyProjectPatch(p, req, now)
		return nil
	})
}

func (r *memoryProjectRepository) Delete(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[projectID]; !ok {
		return ErrNotFound
	}
	delete(r.projects, projectID)
	return nil
}

func (r *memoryProjectRepository) AddUser(ctx context.Context, projectID string, req models.CreateProjectUserRequest) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		user, err := buildProjectUser(r.cipher, req, now)
		if err != nil {
			return err
		}
		p.Users = append(p.Users, user)
		return nil
	})
}

func (r *memoryProjectRepository) UpdateUser(ctx context.Context, projectID, userID string, req models.UpdateProjectUserRequest) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		user := p.User(userID)
		if user == nil {
			return ErrNotFound
		}
		applyUserPatch(user, req, now)
		return nil
	})
}

func (r *memoryProjectRepository) DeleteUser(ctx context.Context, projectID, userID string) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		if !p.RemoveUser(userID) {
			return ErrNotFound
		}
		return nil
	})
}

func (r *memoryProjectRepository) AddCredential(ctx context.Context, projectID, userID string, req models.CreateCredentialRequest) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		user := p.User(userID)
		if user == nil {
			return ErrNotFound
		}
		cred, err := buildCredential(r.cipher, req, now)
		if err != nil {
			return err
		}
		user.Credentials = append(user.Credentials, cred)
		user.UpdatedAt = now
		return nil
	})
}

func (r *memoryProjectRepository) UpdateCredential(ctx context.Context, projectID, userID, credID string, req models.UpdateCredentialRequest) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		user := p.User(userID)
		if user == nil {
			return ErrNotFound
		}
		cred := user.Credential(credID)
		if cred == nil {
			return ErrNotFound
		}
		return applyCredentialPatch(r.cipher, cred, req, now)
	})
}

func (r *memoryProjectRepository) DeleteCredential(ctx context.Context, projectID, userID, credID string) (*models.Project, error) {
	return r.mutate(projectID, func(p *models.Project, now time.Time) error {
		user := p.User(userID)
		if user == nil {
			return ErrNotFound
		}
		if !user.RemoveCredential(credID) {
			return ErrNotFound
		}
		user.UpdatedAt = now
		return nil
	})
}

func (r *memoryProjectRepository) RotateCredential(ctx context.Context, projectID, userID, credID, newValue string) (*models.Project, error) {
	return r.UpdateCredential(ctx, projectID, userID, credID, rotatePatch(newValue))
}

func (r *memoryProjectRepository) GetDecryptedCredential(ctx context.Context, projectID, userID, credID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return "", ErrNotFound
	}
	user := p.User(userID)
	if user == nil {
		return "", ErrNotFound
	}
	cred := user.Credential(credID)
	if cred == nil {
		return "", ErrNotFound
	}
	return r.cipher.Decrypt(cred.Value)
}

func (r *memoryProjectRepository) mutate(projectID string, fn func(p *models.Project, now time.Time) error) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	if err := fn(p, now); err != nil {
		return nil, err
	}
	p.UpdatedAt = now
	return p.Sanitized(), nil
}
