package api

import "credvault-backend/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthResponse is returned by register and login: a session token plus
// the owner profile (which never includes the password hash).
type AuthResponse struct {
	Token string        `json:"token"`
	Owner *models.Owner `json:"owner"`
}

// RevealResponse carries the plaintext of exactly one credential. The
// reveal path returns the bare value only, never a project object.
type RevealResponse struct {
	Value string `json:"value"`
}
