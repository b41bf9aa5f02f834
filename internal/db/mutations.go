package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"credvault-backend/internal/models"
)

// The helpers below hold the point-mutation protocol shared by the Mongo
// and in-memory repositories: a mutation targets exactly one node of the
// project → user → credential arena by id and must not disturb siblings.
// Credential values are encrypted here, before anything reaches a
// persistence call.

func newID() string {
	return primitive.NewObjectID().Hex()
}

// buildCredential turns a create request into a persisted credential:
// value encrypted, id assigned, lastRotatedAt stamped to now.
func buildCredential(cipher ValueCipher, req models.CreateCredentialRequest, now time.Time) (models.Credential, error) {
	encrypted, err := cipher.Encrypt(req.Value)
	if err != nil {
		return models.Credential{}, err
	}

	credType := req.Type
	if credType == "" {
		credType = models.CredentialCustom
	}

	return models.Credential{
		ID:            newID(),
		Key:           req.Key,
		Value:         encrypted,
		Type:          credType,
		Label:         req.Label,
		Description:   req.Description,
		ExpiresAt:     req.ExpiresAt,
		LastRotatedAt: now,
		NeedsRotation: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// buildProjectUser turns a create request into an embedded user, encrypting
// any nested credential drafts.
func buildProjectUser(cipher ValueCipher, req models.CreateProjectUserRequest, now time.Time) (models.ProjectUser, error) {
	user := models.ProjectUser{
		ID:          newID(),
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Description: req.Description,
		Credentials: []models.Credential{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, credReq := range req.Credentials {
		cred, err := buildCredential(cipher, credReq, now)
		if err != nil {
			return models.ProjectUser{}, err
		}
		user.Credentials = append(user.Credentials, cred)
	}
	return user, nil
}

// buildProject turns a create request into a full project document with
// defaults applied and all nested credential values encrypted.
func buildProject(cipher ValueCipher, ownerID string, req models.CreateProjectRequest, now time.Time) (*models.Project, error) {
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	color := req.Color
	if color == "" {
		color = models.DefaultProjectColor
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	project := &models.Project{
		ID:          newID(),
		OwnerID:     ownerID,
		Name:        req.Name,
		ClientName:  req.ClientName,
		Description: req.Description,
		Status:      status,
		Color:       color,
		Tags:        tags,
		Users:       []models.ProjectUser{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, userReq := range req.Users {
		user, err := buildProjectUser(cipher, userReq, now)
		if err != nil {
			return nil, err
		}
		project.Users = append(project.Users, user)
	}
	return project, nil
}

// applyProjectPatch merges supplied top-level fields. Nested arrays are
// never touched from this path.
func applyProjectPatch(p *models.Project, req models.UpdateProjectRequest, now time.Time) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ClientName != nil {
		p.ClientName = *req.ClientName
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	p.UpdatedAt = now
}

// applyUserPatch merges supplied fields onto one embedded user.
func applyUserPatch(u *models.ProjectUser, req models.UpdateProjectUserRequest, now time.Time) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Description != nil {
		u.Description = *req.Description
	}
	u.UpdatedAt = now
}

// applyCredentialPatch merges supplied fields onto one credential. A new
// value is encrypted and refreshes lastRotatedAt; other fields are set
// verbatim.
func applyCredentialPatch(cipher ValueCipher, c *models.Credential, req models.UpdateCredentialRequest, now time.Time) error {
	if req.Value != nil {
		encrypted, err := cipher.Encrypt(*req.Value)
		if err != nil {
			return err
		}
		c.Value = encrypted
		c.LastRotatedAt = now
	}
	if req.Key != nil {
		c.Key = *req.Key
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.Label != nil {
		c.Label = *req.Label
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.ExpiresAt != nil {
		c.ExpiresAt = req.ExpiresAt
	}
	if req.NeedsRotation != nil {
		c.NeedsRotation = *req.NeedsRotation
	}
	c.UpdatedAt = now
	return nil
}

// rotatePatch is the canonical rotation: replace the value and clear the
// needs-rotation flag in one patch.
func rotatePatch(newValue string) models.UpdateCredentialRequest {
	needsRotation := false
	return models.UpdateCredentialRequest{
		Value:         &newValue,
		NeedsRotation: &needsRotation,
	}
}
