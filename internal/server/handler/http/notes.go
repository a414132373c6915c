package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Sadok2512/NoteAI-1/internal/middleware"
	"github.com/Sadok2512/NoteAI-1/internal/models"
	"github.com/Sadok2512/NoteAI-1/internal/service"
)

// maxUploadBytes bounds the in-memory part of a multipart upload.
const maxUploadBytes = 32 << 20

// NoteService defines the interface for note operations required by the
// HTTP handlers.
type NoteService interface {
	Upload(ctx context.Context, ownerID, filename, contentType string, data []byte, name, comment string) (*models.Note, error)
	Transcribe(ctx context.Context, ownerID, storedAs string) (string, error)
	Summarize(ctx context.Context, ownerID, storedAs string) (string, []string, error)
	List(ctx context.Context, ownerID string) ([]models.Note, error)
	Get(ctx context.Context, ownerID, storedAs string) (*models.Note, error)
	OpenAudio(ctx context.Context, ownerID, storedAs string) (*models.Note, io.ReadCloser, error)
	Export(ctx context.Context, ownerID, storedAs string) (string, error)
	Ask(ctx context.Context, ownerID, storedAs, question string) (string, error)
}

// NoteHandler handles HTTP requests for the note lifecycle.
type NoteHandler struct {
	NoteService NoteService
}

// owner resolves the authenticated user and, when the route carries an
// {ownerID} segment, requires it to match. The segment exists for
// contract compatibility only; identity always comes from the token.
func (h *NoteHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	if param := chi.URLParam(r, "ownerID"); param != "" && param != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

// Upload handles POST /upload-audio.
// It expects a multipart form with a "file" part and optional "name"
// and "comment" fields, and responds with the created note record,
// including its id and storage key.
func (h *NoteHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	if owner := r.FormValue("ownerId"); owner != "" && owner != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	note, err := h.NoteService.Upload(r.Context(), userID, header.Filename,
		header.Header.Get("Content-Type"), data, r.FormValue("name"), r.FormValue("comment"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// Transcribe handles POST /transcribe/{ownerID}/{storedAs} and responds
// with {"transcription": ...}.
func (h *NoteHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	text, err := h.NoteService.Transcribe(r.Context(), userID, chi.URLParam(r, "storedAs"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transcription": text})
}

// Summarize handles POST /summary/{ownerID}/{storedAs} and responds
// with {"summary": ..., "tasks": [...]}.
func (h *NoteHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	summary, tasks, err := h.NoteService.Summarize(r.Context(), userID, chi.URLParam(r, "storedAs"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary, "tasks": tasks})
}

// History handles GET /history/{ownerID} and responds with the owner's
// notes, newest first.
func (h *NoteHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	notes, err := h.NoteService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// Details handles GET /note-details/{ownerID}/{storedAs}.
func (h *NoteHandler) Details(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	note, err := h.NoteService.Get(r.Context(), userID, chi.URLParam(r, "storedAs"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Audio handles GET /audio/{ownerID}/{storedAs}, streaming the raw
// bytes with the stored content type.
func (h *NoteHandler) Audio(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	note, rc, err := h.NoteService.OpenAudio(r.Context(), userID, chi.URLParam(r, "storedAs"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", note.ContentType)
	_, _ = io.Copy(w, rc)
}

// Download handles GET /download/{ownerID}/{storedAs}, responding with
// a flat text report of the note.
func (h *NoteHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	storedAs := chi.URLParam(r, "storedAs")
	report, err := h.NoteService.Export(r.Context(), userID, storedAs)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(storedAs)))
	_, _ = io.WriteString(w, report)
}

// exportFilename derives the report filename from the storage key.
func exportFilename(storedAs string) string {
	if i := strings.LastIndex(storedAs, "."); i > 0 {
		storedAs = storedAs[:i]
	}
	return storedAs + ".txt"
}

// askRequest represents the JSON payload for /ask-note.
type askRequest struct {
	OwnerID    string `json:"ownerId"`
	StorageKey string `json:"storageKey"`
	Question   string `json:"question"`
}

// Ask handles POST /ask-note and responds with {"answer": ...}.
func (h *NoteHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StorageKey == "" || req.Question == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.OwnerID != "" && req.OwnerID != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	answer, err := h.NoteService.Ask(r.Context(), userID, req.StorageKey, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

var _ NoteService = (*service.NoteService)(nil)
