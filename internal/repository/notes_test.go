package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
	"github.com/Sadok2512/NoteAI-1/internal/models"
)

var noteTestColumns = []string{
	"id", "owner_id", "filename", "stored_as", "content_type", "size", "uploaded_at",
	"duration", "transcription", "summary", "tasks", "source", "display_name", "comment", "status",
}

func setupNoteMock(t *testing.T) (*PostgresNoteRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresNoteRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateNote(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	uploaded := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	note := &models.Note{
		ID: "n1", OwnerID: "alice", Filename: "clip.webm", StoredAs: "n1.webm",
		ContentType: "audio/webm", Size: 500000, UploadedAt: uploaded,
		Tasks: []string{}, Source: "upload", Status: models.StatusPending,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notes`)).
		WithArgs("n1", "alice", "clip.webm", "n1.webm", "audio/webm", int64(500000), uploaded,
			float64(0), "", "", pq.Array([]string{}), "upload", "", "", models.StatusPending).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), note); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByStoredAs_Found(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	uploaded := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM notes WHERE owner_id = $1 AND stored_as = $2`)).
		WithArgs("alice", "n1.webm").
		WillReturnRows(sqlmock.NewRows(noteTestColumns).
			AddRow("n1", "alice", "clip.webm", "n1.webm", "audio/webm", int64(500000), uploaded,
				2.5, "hello world", "", `{}`, "upload", "", "", models.StatusTranscribed))

	note, err := repo.GetByStoredAs(context.Background(), "alice", "n1.webm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.ID != "n1" || note.Transcription != "hello world" || note.Duration != 2.5 {
		t.Errorf("unexpected note: %+v", note)
	}
	if note.Tasks == nil {
		t.Error("expected non-nil task slice")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByStoredAs_NotFound(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notes WHERE owner_id = $1 AND stored_as = $2`)).
		WithArgs("alice", "missing.webm").
		WillReturnRows(sqlmock.NewRows(noteTestColumns))

	_, err := repo.GetByStoredAs(context.Background(), "alice", "missing.webm")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	newer := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM notes WHERE owner_id = $1 ORDER BY uploaded_at DESC`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(noteTestColumns).
			AddRow("n2", "alice", "b.webm", "n2.webm", "audio/webm", int64(10), newer,
				0.0, "", "", `{}`, "upload", "", "", models.StatusPending).
			AddRow("n1", "alice", "a.webm", "n1.webm", "audio/webm", int64(10), older,
				0.0, "", "", `{"task one","task two"}`, "upload", "", "", models.StatusSummarized))

	notes, err := repo.ListByOwner(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != "n2" {
		t.Errorf("expected newest note first, got %s", notes[0].ID)
	}
	if len(notes[1].Tasks) != 2 || notes[1].Tasks[0] != "task one" {
		t.Errorf("unexpected tasks: %v", notes[1].Tasks)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notes WHERE owner_id = $1 ORDER BY uploaded_at DESC`)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(noteTestColumns))

	notes, err := repo.ListByOwner(context.Background(), "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", notes)
	}
}

func TestUpdateTranscription(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET transcription = $3`)).
		WithArgs("alice", "n1", "hello world").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateTranscription(context.Background(), "alice", "n1", "hello world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateTranscription_MissingNote(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET transcription = $3`)).
		WithArgs("alice", "ghost", "hello").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTranscription(context.Background(), "alice", "ghost", "hello")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSummary(t *testing.T) {
	repo, mock, cleanup := setupNoteMock(t)
	defer cleanup()

	tasks := []string{"task one", "task two"}
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notes SET summary = $3, tasks = $4, status = 'summarized'`)).
		WithArgs("alice", "n1", "Summary: ok", pq.Array(tasks)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateSummary(context.Background(), "alice", "n1", "Summary: ok", tasks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
