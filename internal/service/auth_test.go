package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
	"github.com/Sadok2512/NoteAI-1/internal/auth"
	"github.com/Sadok2512/NoteAI-1/internal/models"
)

type mockUserRepo struct {
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CreateFunc     func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFunc(ctx, user)
}

type mockVerifier struct {
	email string
	err   error
}

func (m *mockVerifier) Verify(ctx context.Context, credential string) (string, error) {
	return m.email, m.err
}

const testSecret = "test-secret"

func TestRegister_Success(t *testing.T) {
	var created *models.User
	repo := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo, nil, []byte(testSecret), time.Hour)

	result, err := svc.Register(context.Background(), "Alice@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to be called on repo")
	}
	if created.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if bcrypt.CompareHashAndPassword(created.PasswordHash, []byte("s3cret")) != nil {
		t.Error("stored hash does not match the password")
	}
	if string(created.PasswordHash) == "s3cret" {
		t.Error("password stored in plaintext")
	}

	claims, err := auth.ParseToken(result.Token, []byte(testSecret))
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != created.ID {
		t.Errorf("token UserID = %q; want %q", claims.UserID, created.ID)
	}
	if result.UserID != created.ID || result.Email != created.Email {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			return apperr.ErrConflict
		},
	}
	svc := NewAuthService(repo, nil, []byte(testSecret), time.Hour)

	_, err := svc.Register(context.Background(), "alice@example.com", "pw")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, nil, []byte(testSecret), time.Hour)

	if _, err := svc.Register(context.Background(), "", "pw"); !errors.Is(err, apperr.ErrMalformedInput) {
		t.Errorf("empty email: expected ErrMalformedInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.c", ""); !errors.Is(err, apperr.ErrMalformedInput) {
		t.Errorf("empty password: expected ErrMalformedInput, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(repo, nil, []byte(testSecret), time.Hour)

	result, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.UserID != "u1" {
		t.Errorf("UserID = %q; want u1", result.UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(repo, nil, []byte(testSecret), time.Hour)

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, apperr.ErrNotFound
		},
	}
	svc := NewAuthService(repo, nil, []byte(testSecret), time.Hour)

	_, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_FederationOnlyAccount(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email}, nil
		},
	}
	svc := NewAuthService(repo, nil, []byte(testSecret), time.Hour)

	_, err := svc.Login(context.Background(), "alice@example.com", "anything")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for passwordless account, got %v", err)
	}
}

func TestFederatedLogin_FirstLoginCreatesUser(t *testing.T) {
	var created *models.User
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, apperr.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo, &mockVerifier{email: "alice@example.com"}, []byte(testSecret), time.Hour)

	result, err := svc.FederatedLogin(context.Background(), "google-credential")
	if err != nil {
		t.Fatalf("FederatedLogin returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected a local user to be created")
	}
	if len(created.PasswordHash) != 0 {
		t.Error("expected federation-only account to have no password hash")
	}
	if result.Email != "alice@example.com" {
		t.Errorf("Email = %q; want alice@example.com", result.Email)
	}
}

func TestFederatedLogin_ExistingUser(t *testing.T) {
	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email}, nil
		},
		CreateFunc: func(ctx context.Context, user *models.User) error {
			t.Error("did not expect Create for an existing user")
			return nil
		},
	}
	svc := NewAuthService(repo, &mockVerifier{email: "alice@example.com"}, []byte(testSecret), time.Hour)

	result, err := svc.FederatedLogin(context.Background(), "google-credential")
	if err != nil {
		t.Fatalf("FederatedLogin returned error: %v", err)
	}
	if result.UserID != "u1" {
		t.Errorf("UserID = %q; want u1", result.UserID)
	}
}

func TestFederatedLogin_VerificationFailure(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockVerifier{err: apperr.ErrUnauthorized}, []byte(testSecret), time.Hour)

	_, err := svc.FederatedLogin(context.Background(), "bad-credential")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
