package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"credvault-backend/internal/models"
)

// mongoProjectRepository implements ProjectRepository on a Mongo
// collection. A project with its embedded users and credentials is one
// document, so every nested mutation is a single replace and relies on
// Mongo's per-document write atomicity.
type mongoProjectRepository struct {
	collection *mongo.Collection
	cipher     ValueCipher
}

// NewMongoProjectRepository creates a ProjectRepository backed by the
// projects collection of the given database.
func NewMongoProjectRepository(database *mongo.Database, cipher ValueCipher) ProjectRepository {
	return &mongoProjectRepository{
		collection: database.Collection(projectsCollection),
		cipher:     cipher,
	}
}

// Create persists a new project document. Every credential value in the
// draft is encrypted before the insert.
func (r *mongoProjectRepository) Create(ctx context.Context, ownerID string, req models.CreateProjectRequest) (*models.Project, error) {
	project, err := buildProject(r.cipher, ownerID, req, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		return nil, wrapStorageErr("insert project", err)
	}
	return project.Sanitized(), nil
}

// GetByOwner lists all projects for an owner, newest-updated first, with
// credential values masked.
func (r *mongoProjectRepository) GetByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, wrapStorageErr("list projects", err)
	}
	defer cursor.Close(ctx)

	projects := []*models.Project{}
	for cursor.Next(ctx) {
		var project models.Project
		if err := cursor.Decode(&project); err != nil {
			return nil, wrapStorageErr("decode project", err)
		}
		projects = append(projects, project.Sanitized())
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapStorageErr("iterate projects", err)
	}
	return projects, nil
}

// GetByOwnerAndID retrieves one project scoped to its owner. A project
// owned by someone else is indistinguishable from a missing one.
func (r *mongoProjectRepository) GetByOwnerAndID(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
	project, err := r.load(ctx, bson.M{"_id": projectID, "ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	return project.Sanitized(), nil
}

// UpdateFields merges top-level fields onto the project document without
// touching the nested arrays.
func (r *mongoProjectRepository) UpdateFields(ctx context.Context, projectID string, req models.UpdateProjectRequest) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
		applyProjectPatch(p, req, now)
		return nil
	})
}

// Delete removes a project document and, with it, every embedded user and
// credential.
func (r *mongoProjectRepository) Delete(ctx context.Context, projectID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": projectID})
	if err != nil {
		return wrapStorageErr("delete project", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddUser appends one embedded user, encrypting any nested credential
// drafts.
func (r *mongoProjectRepository) AddUser(ctx context.Context, projectID string, req models.CreateProjectUserRequest) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
		user, err := buildProjectUser(r.cipher, req, now)
		if err != nil {
			return err
		}
		p.Users = append(p.Users, user)
		return nil
	})
}

// UpdateUser applies supplied fields to exactly one embedded user.
func (r *mongoProjectRepository) UpdateUser(ctx context.Context, projectID, userID string, req models.UpdateProjectUserRequest) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
		user := p.User(userID)
		if user == nil {
			return ErrNotFound
		}
		applyUserPatch(user, req, now)
		return nil
	})
}

// DeleteUser removes one embedded user, cascading to its credentials.
func (r *mongoProjectRepository) DeleteUser(ctx context.Context, projectID, userID string) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
		if !p.RemoveUser(userID) {
			return ErrNotFound
		}
		return nil
	})
}

// AddCredential encrypts the draft value and appends it to the named
// user's credential list.
func (r *mongoProjectRepository) AddCredential(ctx context.Context, projectID, userID string, req models.CreateCredentialRequest) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
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

// UpdateCredential patches exactly one credential; sibling credentials and
// users are carried through byte for byte.
func (r *mongoProjectRepository) UpdateCredential(ctx context.Context, projectID, userID, credID string, req models.UpdateCredentialRequest) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
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

// DeleteCredential removes exactly one credential by id.
func (r *mongoProjectRepository) DeleteCredential(ctx context.Context, projectID, userID, credID string) (*models.Project, error) {
	return r.mutate(ctx, projectID, func(p *models.Project, now time.Time) error {
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

// RotateCredential replaces the value and clears the needs-rotation flag.
func (r *mongoProjectRepository) RotateCredential(ctx context.Context, projectID, userID, credID, newValue string) (*models.Project, error) {
	return r.UpdateCredential(ctx, projectID, userID, credID, rotatePatch(newValue))
}

// GetDecryptedCredential locates one credential by its full path and
// returns the plaintext. This is the only read that decrypts; any missing
// id on the path yields ErrNotFound.
func (r *mongoProjectRepository) GetDecryptedCredential(ctx context.Context, projectID, userID, credID string) (string, error) {
	project, err := r.load(ctx, bson.M{"_id": projectID})
	if err != nil {
		return "", err
	}
	user := project.User(userID)
	if user == nil {
		return "", ErrNotFound
	}
	cred := user.Credential(credID)
	if cred == nil {
		return "", ErrNotFound
	}
	return r.cipher.Decrypt(cred.Value)
}

// load fetches one raw project document (ciphertext intact) by filter.
func (r *mongoProjectRepository) load(ctx context.Context, filter bson.M) (*models.Project, error) {
	var project models.Project
	if err := r.collection.FindOne(ctx, filter).Decode(&project); err != nil {
		return nil, wrapStorageErr("get project", err)
	}
	return &project, nil
}

// mutate applies fn to the raw document and writes the whole project back
// in one ReplaceOne, then returns the sanitized result. The single
// replace keeps a nested mutation from interleaving with a sibling write
// on the same document.
func (r *mongoProjectRepository) mutate(ctx context.Context, projectID string, fn func(p *models.Project, now time.Time) error) (*models.Project, error) {
	project, err := r.load(ctx, bson.M{"_id": projectID})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := fn(project, now); err != nil {
		return nil, err
	}
	project.UpdatedAt = now

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": projectID}, project)
	if err != nil {
		return nil, wrapStorageErr("replace project", err)
	}
	if res.MatchedCount == 0 {
		// Deleted between load and replace.
		return nil, ErrNotFound
	}
	return project.Sanitized(), nil
}
