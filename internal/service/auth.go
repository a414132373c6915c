// Package service provides business logic for authentication and voice
// notes, delegating persistence to repository interfaces and external
// work to collaborator interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
	"github.com/Sadok2512/NoteAI-1/internal/auth"
	"github.com/Sadok2512/NoteAI-1/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// GetByEmail fetches a user by email, apperr.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user, apperr.ErrConflict on duplicate email.
	Create(ctx context.Context, user *models.User) error
}

// IdentityVerifier validates a federated identity token and returns the
// email it asserts.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// AuthResult carries the issued token together with the user identity,
// the shape every auth endpoint responds with.
type AuthResult struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

// AuthService implements registration, login and federated login.
type AuthService struct {
	repo      UserRepository
	verifier  IdentityVerifier
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService constructs an AuthService. verifier may be nil when
// federated login is not configured.
func NewAuthService(repo UserRepository, verifier IdentityVerifier, jwtSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, verifier: verifier, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a user with a bcrypt-hashed password and issues a
// token. Returns apperr.ErrConflict if the email is taken; the existing
// record is not altered.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperr.ErrMalformedInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies the password against the stored bcrypt hash and issues
// a token. An unknown email, a federation-only account, or a hash
// mismatch all yield apperr.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperr.ErrMalformedInput
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if len(user.PasswordHash) == 0 {
		// Federation-only account, no password to compare.
		return nil, apperr.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	return s.issue(user)
}

// FederatedLogin verifies the identity token with the provider,
// creates a passwordless local user on first login, and issues a token.
func (s *AuthService) FederatedLogin(ctx context.Context, credential string) (*AuthResult, error) {
	if s.verifier == nil {
		return nil, apperr.ErrUnauthorized
	}

	email, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		user = &models.User{
			ID:        uuid.NewString(),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, Email: user.Email, UserID: user.ID}, nil
}
