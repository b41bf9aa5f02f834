package models

import "time"

// EncryptedPlaceholder replaces every credential value on bulk reads.
// The ciphertext itself never leaves storage through list/detail paths.
const EncryptedPlaceholder = "[encrypted]"

// DefaultProjectColor is applied when a project is created without one.
const DefaultProjectColor = "#6e6456"

// ProjectStatus is the lifecycle state of a client project.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusPaused    ProjectStatus = "paused"
	StatusCompleted ProjectStatus = "completed"
	StatusArchived  ProjectStatus = "archived"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// CredentialType categorizes a stored secret.
type CredentialType string

const (
	CredentialMongoURL  CredentialType = "mongo_url"
	CredentialAPIKey    CredentialType = "api_key"
	CredentialAPISecret CredentialType = "api_secret"
	CredentialPassword  CredentialType = "password"
	CredentialToken     CredentialType = "token"
	CredentialCustom    CredentialType = "custom"
)

// Valid reports whether t is one of the known credential types.
func (t CredentialType) Valid() bool {
	switch t {
	case CredentialMongoURL, CredentialAPIKey, CredentialAPISecret,
		CredentialPassword, CredentialToken, CredentialCustom:
		return true
	}
	return false
}

// Credential is a secret value scoped to one ProjectUser. Value always
// holds ciphertext at rest; plaintext is only ever produced by the reveal
// path.
type Credential struct {
	ID            string         `json:"id" bson:"_id"`
	Key           string         `json:"key" bson:"key"`
	Value         string         `json:"value" bson:"value"`
	Type          CredentialType `json:"type" bson:"type"`
	Label         string         `json:"label,omitempty" bson:"label,omitempty"`
	Description   string         `json:"description,omitempty" bson:"description,omitempty"`
	ExpiresAt     *time.Time     `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	LastRotatedAt time.Time      `json:"lastRotatedAt" bson:"lastRotatedAt"`
	NeedsRotation bool           `json:"needsRotation" bson:"needsRotation"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// ProjectUser is a team member scoped to one Project. It exists only
// embedded inside its project and is deleted with it.
type ProjectUser struct {
	ID          string       `json:"id" bson:"_id"`
	Name        string       `json:"name" bson:"name"`
	Email       string       `json:"email,omitempty" bson:"email,omitempty"`
	Role        string       `json:"role,omitempty" bson:"role,omitempty"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Credentials []Credential `json:"credentials" bson:"credentials"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Project is a client engagement record owned by exactly one Owner,
// holding the embedded user/credential arena. A project and everything
// nested in it is one storage unit.
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	OwnerID     string        `json:"ownerId" bson:"ownerId"`
	Name        string        `json:"name" bson:"name"`
	ClientName  string        `json:"clientName" bson:"clientName"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Status      ProjectStatus `json:"status" bson:"status"`
	Color       string        `json:"color,omitempty" bson:"color,omitempty"`
	Tags        []string      `json:"tags" bson:"tags"`
	Users       []ProjectUser `json:"users" bson:"users"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// User returns the embedded user with the given id, or nil.
func (p *Project) User(userID string) *ProjectUser {
	for i := range p.Users {
		if p.Users[i].ID == userID {
			return &p.Users[i]
		}
	}
	return nil
}

// RemoveUser deletes the embedded user with the given id, cascading to all
// of its credentials. Reports whether a user was removed.
func (p *Project) RemoveUser(userID string) bool {
	for i := range p.Users {
		if p.Users[i].ID == userID {
			p.Users = append(p.Users[:i], p.Users[i+1:]...)
			return true
		}
	}
	return false
}

// Credential returns the credential with the given id, or nil.
func (u *ProjectUser) Credential(credID string) *Credential {
	for i := range u.Credentials {
		if u.Credentials[i].ID == credID {
			return &u.Credentials[i]
		}
	}
	return nil
}

// RemoveCredential deletes exactly one credential by id, leaving siblings
// untouched. Reports whether a credential was removed.
func (u *ProjectUser) RemoveCredential(credID string) bool {
	for i := range u.Credentials {
		if u.Credentials[i].ID == credID {
			u.Credentials = append(u.Credentials[:i], u.Credentials[i+1:]...)
			return true
		}
	}
	return false
}

// Sanitized returns a deep copy of the project with every credential value
// replaced by EncryptedPlaceholder. All read paths that return a project
// must go through this; only the reveal operation sees stored values.
func (p *Project) Sanitized() *Project {
	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	out.Users = make([]ProjectUser, len(p.Users))
	for i, u := range p.Users {
		cu := u
		cu.Credentials = make([]Credential, len(u.Credentials))
		for j, c := range u.Credentials {
			cc := c
			cc.Value = EncryptedPlaceholder
			cu.Credentials[j] = cc
		}
		out.Users[i] = cu
	}
	return &out
}
