package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *Project {
	now := time.Now().UTC()
	return &Project{
		ID:         "p1",
		OwnerID:    "o1",
		Name:       "Acme Site",
		ClientName: "Acme",
		Status:     StatusActive,
		Tags:       []string{"web"},
		Users: []ProjectUser{
			{
				ID:   "u1",
				Name: "Bob",
				Credentials: []Credential{
					{ID: "c1", Key: "MONGO_URI", Value: "blob1", Type: CredentialMongoURL},
					{ID: "c2", Key: "API_KEY", Value: "blob2", Type: CredentialAPIKey},
				},
				CreatedAt: now,
			},
			{
				ID:          "u2",
				Name:        "Carol",
				Credentials: []Credential{{ID: "c3", Key: "TOKEN", Value: "blob3", Type: CredentialToken}},
				CreatedAt:   now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProjectUserLookup(t *testing.T) {
	p := sampleProject()

	u := p.User("u2")
	require.NotNil(t, u)
	assert.Equal(t, "Carol", u.Name)

	assert.Nil(t, p.User("missing"))

	// The pointer targets the embedded element, so edits stick.
	u.Name = "Carole"
	assert.Equal(t, "Carole", p.Users[1].Name)
}

func TestCredentialLookup(t *testing.T) {
	p := sampleProject()
	u := p.User("u1")
	require.NotNil(t, u)

	c := u.Credential("c2")
	require.NotNil(t, c)
	assert.Equal(t, "API_KEY", c.Key)

	assert.Nil(t, u.Credential("c3"), "lookups must not cross user boundaries")
}

func TestRemoveUser_Cascades(t *testing.T) {
	p := sampleProject()

	assert.True(t, p.RemoveUser("u1"))
	assert.Len(t, p.Users, 1)
	assert.Equal(t, "u2", p.Users[0].ID)
	// Sibling's credentials untouched.
	assert.Len(t, p.Users[0].Credentials, 1)

	assert.False(t, p.RemoveUser("u1"), "second removal of the same id must report false")
}

func TestRemoveCredential_LeavesSiblings(t *testing.T) {
	p := sampleProject()
	u := p.User("u1")
	require.NotNil(t, u)

	assert.True(t, u.RemoveCredential("c1"))
	require.Len(t, u.Credentials, 1)
	assert.Equal(t, "c2", u.Credentials[0].ID)

	assert.False(t, u.RemoveCredential("c1"))
	assert.Len(t, p.User("u2").Credentials, 1)
}

func TestStatusAndTypeValidation(t *testing.T) {
	for _, s := range []ProjectStatus{StatusActive, StatusPaused, StatusCompleted, StatusArchived} {
		assert.True(t, s.Valid())
	}
	assert.False(t, ProjectStatus("deleted").Valid())
	assert.False(t, ProjectStatus("").Valid())

	for _, ct := range []CredentialType{CredentialMongoURL, CredentialAPIKey, CredentialAPISecret, CredentialPassword, CredentialToken, CredentialCustom} {
		assert.True(t, ct.Valid())
	}
	assert.False(t, CredentialType("ssh_key").Valid())
}

func TestSanitized_MasksAllValues(t *testing.T) {
	p := sampleProject()

	s := p.Sanitized()
	for _, u := range s.Users {
		for _, c := range u.Credentials {
			assert.Equal(t, EncryptedPlaceholder, c.Value)
		}
	}

	// Original is untouched.
	assert.Equal(t, "blob1", p.Users[0].Credentials[0].Value)
	assert.Equal(t, "blob3", p.Users[1].Credentials[0].Value)
}

func TestSanitized_DeepCopy(t *testing.T) {
	p := sampleProject()
	s := p.Sanitized()

	s.Users[0].Credentials[0].Key = "CHANGED"
	s.Users[0].Name = "Mallory"
	s.Tags[0] = "changed"

	assert.Equal(t, "MONGO_URI", p.Users[0].Credentials[0].Key)
	assert.Equal(t, "Bob", p.Users[0].Name)
	assert.Equal(t, "web", p.Tags[0])
}
