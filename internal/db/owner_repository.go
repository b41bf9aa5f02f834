package db

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"credvault-backend/internal/models"
)

// mongoOwnerRepository implements OwnerRepository on a Mongo collection.
type mongoOwnerRepository struct {
	collection *mongo.Collection
}

// NewMongoOwnerRepository creates an OwnerRepository backed by the owners
// collection of the given database.
func NewMongoOwnerRepository(database *mongo.Database) OwnerRepository {
	return &mongoOwnerRepository{collection: database.Collection(ownersCollection)}
}

// Create inserts a new owner with a generated id. Email uniqueness is
// enforced by the unique index; the caller checks for duplicates first to
// produce the domain error.
func (r *mongoOwnerRepository) Create(ctx context.Context, owner *models.Owner) (string, error) {
	owner.ID = newID()
	owner.Email = strings.ToLower(owner.Email)
	owner.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, owner); err != nil {
		return "", wrapStorageErr("insert owner", err)
	}
	return owner.ID, nil
}

// GetByID retrieves an owner by id, or ErrNotFound.
func (r *mongoOwnerRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	var owner models.Owner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&owner)
	if err != nil {
		return nil, wrapStorageErr("get owner", err)
	}
	return &owner, nil
}

// GetByEmail retrieves an owner by email, case-insensitively, or
// ErrNotFound.
func (r *mongoOwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	var owner models.Owner
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&owner)
	if err != nil {
		return nil, wrapStorageErr("get owner by email", err)
	}
	return &owner, nil
}
