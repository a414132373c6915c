package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sadok2512/NoteAI-1/internal/auth"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

var testSecret = []byte("middleware-secret")

func TestJWTAuth_NoHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := JWTAuth(testSecret)(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history/alice", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := JWTAuth(testSecret)(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history/alice", nil)
	req.Header.Set("Authorization", "Basic xyz")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called for a non-bearer header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	dummy := &dummyHandler{}
	h := JWTAuth(testSecret)(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history/alice", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called for an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := auth.GenerateToken("alice", "alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	dummy := &dummyHandler{}
	h := JWTAuth(testSecret)(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/history/alice", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called for a valid token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", rec.Code)
	}
	if user := GetUserIDFromContext(dummy.ctx); user != "alice" {
		t.Errorf("expected context user 'alice', got '%s'", user)
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	// no value
	empty := GetUserIDFromContext(context.Background())
	if empty != "" {
		t.Errorf("expected empty string for missing user, got '%s'", empty)
	}
	// with value
	val := GetUserIDFromContext(WithUserID(context.Background(), "bob"))
	if val != "bob" {
		t.Errorf("expected 'bob', got '%s'", val)
	}
}
