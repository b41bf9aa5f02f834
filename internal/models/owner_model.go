package models

import "time"

// Owner is the authenticated principal and top-level tenant boundary.
// Every project is owned by exactly one Owner; no cross-owner access is
// ever permitted.
type Owner struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"` // stored lowercase, unique
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
