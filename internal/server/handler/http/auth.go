// Package http provides the HTTP handlers and routing for the voice
// note API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sadok2512/NoteAI-1/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a user from email and password and issues a token.
	Register(ctx context.Context, email, password string) (*service.AuthResult, error)
	// Login verifies credentials and issues a token.
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	// FederatedLogin verifies a provider identity token and issues a token.
	FederatedLogin(ctx context.Context, credential string) (*service.AuthResult, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// credentialsRequest represents the JSON payload for registration and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// federatedRequest represents the JSON payload for federated login.
type federatedRequest struct {
	Credential string `json:"credential"`
}

// Register handles POST /auth/register.
// It expects a JSON body with non-empty "email" and "password" fields
// and responds with {token, email, userId}. A duplicate email yields
// 409 Conflict.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Login handles POST /auth/login.
// Unknown emails and password mismatches both yield 401 Unauthorized.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Google handles POST /auth/google.
// It expects a JSON body with the provider "credential"; a first login
// creates a passwordless local account for the asserted email.
func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req federatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.AuthService.FederatedLogin(r.Context(), req.Credential)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
