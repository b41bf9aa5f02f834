package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"credvault-backend/internal/db"
	"credvault-backend/internal/models"
)

// Custom errors for the AuthService
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrOwnerNotFound      = errors.New("owner not found")
)

const bcryptCost = 12

// dummyHash is compared against when the email does not resolve, so a
// failed login does the same bcrypt work whether the email or the
// password was wrong.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("credvault-dummy-password"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("failed to generate dummy hash: %v", err))
	}
	return h
}()

// authService implements the AuthService interface.
type authService struct {
	ownerRepo db.OwnerRepository
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(ownerRepo db.OwnerRepository) AuthService {
	return &authService{ownerRepo: ownerRepo}
}

// Register creates a new owner account. The email is normalized to lower
// case and must not already exist; the password is stored only as a
// bcrypt hash.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.Owner, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.ownerRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing owner: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	owner := &models.Owner{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if _, err := s.ownerRepo.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}
	return owner, nil
}

// ValidateCredentials checks an email/password pair against the stored
// hash and returns the owner on success. The caller cannot tell whether
// the email or the password was wrong; both yield ErrInvalidCredentials.
func (s *authService) ValidateCredentials(ctx context.Context, email, password string) (*models.Owner, error) {
	owner, err := s.ownerRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// Burn the same hashing cost as a real comparison.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return owner, nil
}

// GetOwner retrieves an owner by the opaque id carried in a session token.
func (s *authService) GetOwner(ctx context.Context, ownerID string) (*models.Owner, error) {
	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return owner, nil
}
