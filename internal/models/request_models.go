package models

import "time"

// RegisterRequest is the request body for owner registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request body for owner login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateCredentialRequest carries a plaintext value; the store encrypts it
// before anything is persisted.
type CreateCredentialRequest struct {
	Key         string         `json:"key" binding:"required"`
	Value       string         `json:"value" binding:"required"`
	Type        CredentialType `json:"type,omitempty"`
	Label       string         `json:"label,omitempty"`
	Description string         `json:"description,omitempty"`
	ExpiresAt   *time.Time     `json:"expiresAt,omitempty"`
}

// UpdateCredentialRequest is a partial credential patch. Pointers
// distinguish "not provided" from an explicit empty value. A provided
// Value is plaintext and is re-encrypted on write.
type UpdateCredentialRequest struct {
	Key           *string         `json:"key,omitempty"`
	Value         *string         `json:"value,omitempty"`
	Type          *CredentialType `json:"type,omitempty"`
	Label         *string         `json:"label,omitempty"`
	Description   *string         `json:"description,omitempty"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
	NeedsRotation *bool           `json:"needsRotation,omitempty"`
}

// RotateCredentialRequest carries the replacement plaintext for a rotation.
type RotateCredentialRequest struct {
	Value string `json:"value" binding:"required"`
}

// CreateProjectUserRequest is the request body for adding a team member,
// optionally with initial credentials.
type CreateProjectUserRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Email       string                    `json:"email,omitempty"`
	Role        string                    `json:"role,omitempty"`
	Description string                    `json:"description,omitempty"`
	Credentials []CreateCredentialRequest `json:"credentials,omitempty"`
}

// UpdateProjectUserRequest is a partial team-member patch. Credentials are
// never updated through this path.
type UpdateProjectUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Role        *string `json:"role,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateProjectRequest is the request body for creating a project,
// optionally with nested users and credentials.
type CreateProjectRequest struct {
	Name        string                     `json:"name" binding:"required"`
	ClientName  string                     `json:"clientName" binding:"required"`
	Description string                     `json:"description,omitempty"`
	Status      ProjectStatus              `json:"status,omitempty"`
	Color       string                     `json:"color,omitempty"`
	Tags        []string                   `json:"tags,omitempty"`
	Users       []CreateProjectUserRequest `json:"users,omitempty"`
}

// UpdateProjectRequest is a partial top-level patch. Nested users and
// credentials have their own operations and are never touched here.
type UpdateProjectRequest struct {
	Name        *string        `json:"name,omitempty"`
	ClientName  *string        `json:"clientName,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Color       *string        `json:"color,omitempty"`
	Tags        *[]string      `json:"tags,omitempty"`
}
