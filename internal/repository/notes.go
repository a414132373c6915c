package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
	"github.com/Sadok2512/NoteAI-1/internal/models"
)

// noteColumns is the column list shared by every note SELECT.
const noteColumns = `id, owner_id, filename, stored_as, content_type, size, uploaded_at,
		duration, transcription, summary, tasks, source, display_name, comment, status`

// PostgresNoteRepository implements note metadata persistence against a
// PostgreSQL database.
type PostgresNoteRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

// Create inserts the metadata record for a freshly uploaded note.
func (r *PostgresNoteRepository) Create(ctx context.Context, n *models.Note) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notes (id, owner_id, filename, stored_as, content_type, size, uploaded_at,
			duration, transcription, summary, tasks, source, display_name, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, n.ID, n.OwnerID, n.Filename, n.StoredAs, n.ContentType, n.Size, n.UploadedAt,
		n.Duration, n.Transcription, n.Summary, pq.Array(n.Tasks), n.Source, n.Name, n.Comment, n.Status)
	if err != nil {
		return fmt.Errorf("Create note: %w", err)
	}
	return nil
}

// GetByStoredAs fetches a single note by its storage key for the given owner.
// Returns apperr.ErrNotFound if no matching record exists.
func (r *PostgresNoteRepository) GetByStoredAs(ctx context.Context, ownerID, storedAs string) (*models.Note, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+noteColumns+` FROM notes WHERE owner_id = $1 AND stored_as = $2
	`, ownerID, storedAs)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByStoredAs: %w", err)
	}
	return n, nil
}

// ListByOwner fetches all notes belonging to the specified owner, newest first.
func (r *PostgresNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes WHERE owner_id = $1 ORDER BY uploaded_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return notes, nil
}

// UpdateTranscription overwrites the transcription of the given note and
// advances its status to "transcribed" unless it is already summarized.
// Returns apperr.ErrNotFound if the note does not exist.
func (r *PostgresNoteRepository) UpdateTranscription(ctx context.Context, ownerID, id, text string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE notes SET transcription = $3,
			status = CASE WHEN status = 'summarized' THEN status ELSE 'transcribed' END
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id, text)
	if err != nil {
		return fmt.Errorf("UpdateTranscription: %w", err)
	}
	return checkAffected(res)
}

// UpdateSummary overwrites the summary and task list of the given note and
// marks it summarized. Returns apperr.ErrNotFound if the note does not exist.
func (r *PostgresNoteRepository) UpdateSummary(ctx context.Context, ownerID, id, summary string, tasks []string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE notes SET summary = $3, tasks = $4, status = 'summarized'
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id, summary, pq.Array(tasks))
	if err != nil {
		return fmt.Errorf("UpdateSummary: %w", err)
	}
	return checkAffected(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*models.Note, error) {
	var n models.Note
	err := s.Scan(&n.ID, &n.OwnerID, &n.Filename, &n.StoredAs, &n.ContentType, &n.Size,
		&n.UploadedAt, &n.Duration, &n.Transcription, &n.Summary, pq.Array(&n.Tasks),
		&n.Source, &n.Name, &n.Comment, &n.Status)
	if err != nil {
		return nil, err
	}
	if n.Tasks == nil {
		n.Tasks = []string{}
	}
	return &n, nil
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
