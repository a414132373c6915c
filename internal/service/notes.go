package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
	"github.com/Sadok2512/NoteAI-1/internal/audio"
	"github.com/Sadok2512/NoteAI-1/internal/models"
)

// Collaborator instructions for the two summarize prompts and note Q&A.
const (
	summaryInstructions = "You are given the transcription of a voice note. " +
		"Reply with a single concise summary of its content, nothing else."
	taskInstructions = "You are given the transcription of a voice note. " +
		"Reply with the action items it mentions, one per line as a bulleted list. " +
		"Reply with nothing if there are none."
	answerInstructions = "You are given the transcription of a voice note followed by a question. " +
		"Answer the question using only the transcription."
)

// NoteRepository defines the metadata persistence operations required
// by the note service.
type NoteRepository interface {
	Create(ctx context.Context, n *models.Note) error
	GetByStoredAs(ctx context.Context, ownerID, storedAs string) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error)
	UpdateTranscription(ctx context.Context, ownerID, id, text string) error
	UpdateSummary(ctx context.Context, ownerID, id, summary string, tasks []string) error
}

// BlobStore stores the raw audio bytes, keyed by owner and storage key.
type BlobStore interface {
	Put(ctx context.Context, ownerID, key, contentType string, data []byte) error
	Open(ctx context.Context, ownerID, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, ownerID, key string) error
}

// Transcriber converts stored audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Completer answers one instruction/input pair with raw response text.
type Completer interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}

// NoteService implements the note lifecycle: upload, transcription,
// summarization, and retrieval.
type NoteService struct {
	repo  NoteRepository
	blobs BlobStore
	stt   Transcriber
	llm   Completer
}

// NewNoteService constructs a NoteService over the given repository,
// blob store and collaborators.
func NewNoteService(repo NoteRepository, blobs BlobStore, stt Transcriber, llm Completer) *NoteService {
	return &NoteService{repo: repo, blobs: blobs, stt: stt, llm: llm}
}

// Upload stores the audio blob and creates its pending metadata record.
// The storage key is a fresh UUID plus the original extension (".bin"
// when the filename has none). Duration is probed best effort. If the
// metadata insert fails the blob is deleted again so the two stores
// stay correlated.
func (s *NoteService) Upload(ctx context.Context, ownerID, filename, contentType string, data []byte, name, comment string) (*models.Note, error) {
	if ownerID == "" || len(data) == 0 {
		return nil, apperr.ErrMalformedInput
	}
	if filename == "" {
		filename = "audio"
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	id := uuid.NewString()
	storedAs := id + ext

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.blobs.Put(ctx, ownerID, storedAs, contentType, data); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	note := &models.Note{
		ID:          id,
		OwnerID:     ownerID,
		Filename:    filename,
		StoredAs:    storedAs,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
		Duration:    audio.Duration(data),
		Tasks:       []string{},
		Source:      "upload",
		Name:        name,
		Comment:     comment,
		Status:      models.StatusPending,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		// Compensate so no blob is left without a metadata record.
		_ = s.blobs.Delete(ctx, ownerID, storedAs)
		return nil, fmt.Errorf("store metadata: %w", err)
	}

	return note, nil
}

// Transcribe fetches the blob, runs speech-to-text, and overwrites the
// note's transcription. Re-running overwrites the prior output. On a
// collaborator failure the prior transcription is left untouched and
// apperr.ErrService is returned.
func (s *NoteService) Transcribe(ctx context.Context, ownerID, storedAs string) (string, error) {
	note, err := s.repo.GetByStoredAs(ctx, ownerID, storedAs)
	if err != nil {
		return "", err
	}

	rc, err := s.blobs.Open(ctx, ownerID, storedAs)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	text, err := s.stt.Transcribe(ctx, note.StoredAs, rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrService, err)
	}

	if err := s.repo.UpdateTranscription(ctx, ownerID, note.ID, text); err != nil {
		return "", err
	}
	return text, nil
}

// Summarize sends the transcription through two completions — one for a
// concise summary, one for an itemized action list — and overwrites the
// note's summary and tasks. A note without a transcription yields
// apperr.ErrNotFound; collaborator failures yield apperr.ErrService and
// leave the prior values untouched.
func (s *NoteService) Summarize(ctx context.Context, ownerID, storedAs string) (string, []string, error) {
	note, err := s.repo.GetByStoredAs(ctx, ownerID, storedAs)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(note.Transcription) == "" {
		return "", nil, apperr.ErrNotFound
	}

	summaryRaw, err := s.llm.Complete(ctx, summaryInstructions, note.Transcription)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperr.ErrService, err)
	}
	tasksRaw, err := s.llm.Complete(ctx, taskInstructions, note.Transcription)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", apperr.ErrService, err)
	}

	summary := summaryText(summaryRaw)
	tasks := taskLines(tasksRaw)

	if err := s.repo.UpdateSummary(ctx, ownerID, note.ID, summary, tasks); err != nil {
		return "", nil, err
	}
	return summary, tasks, nil
}

// List returns all notes of the owner, newest first.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]models.Note, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns one note by its storage key.
func (s *NoteService) Get(ctx context.Context, ownerID, storedAs string) (*models.Note, error) {
	return s.repo.GetByStoredAs(ctx, ownerID, storedAs)
}

// OpenAudio returns the note record together with a reader over its
// audio bytes. The caller must close the reader.
func (s *NoteService) OpenAudio(ctx context.Context, ownerID, storedAs string) (*models.Note, io.ReadCloser, error) {
	note, err := s.repo.GetByStoredAs(ctx, ownerID, storedAs)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, ownerID, storedAs)
	if err != nil {
		return nil, nil, err
	}
	return note, rc, nil
}

// Export renders the note into a flat text report.
func (s *NoteService) Export(ctx context.Context, ownerID, storedAs string) (string, error) {
	note, err := s.repo.GetByStoredAs(ctx, ownerID, storedAs)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	title := note.Name
	if title == "" {
		title = note.Filename
	}
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "File: %s\n", note.Filename)
	fmt.Fprintf(&b, "Date: %s\n", note.UploadedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Duration: %.0f s\n\n", note.Duration)
	fmt.Fprintf(&b, "Transcription:\n%s\n\n", note.Transcription)
	fmt.Fprintf(&b, "Summary:\n%s\n", note.Summary)
	if len(note.Tasks) > 0 {
		b.WriteString("\nTasks:\n")
		for _, task := range note.Tasks {
			fmt.Fprintf(&b, "- %s\n", task)
		}
	}
	return b.String(), nil
}

// Ask answers a free-form question about the note from its
// transcription.
func (s *NoteService) Ask(ctx context.Context, ownerID, storedAs, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperr.ErrMalformedInput
	}

	note, err := s.repo.GetByStoredAs(ctx, ownerID, storedAs)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(note.Transcription) == "" {
		return "", apperr.ErrNotFound
	}

	input := fmt.Sprintf("Transcription:\n%s\n\nQuestion:\n%s", note.Transcription, question)
	answer, err := s.llm.Complete(ctx, answerInstructions, input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrService, err)
	}
	return strings.TrimSpace(answer), nil
}

// summaryText trims the completion output to the summary itself: models
// sometimes append a bullet list after the prose despite the
// instructions, so everything from the first bulleted line on is cut.
func summaryText(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if _, bullet := stripBullet(line); bullet {
			break
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// taskLines parses a completion into the ordered task list. When the
// output contains bulleted lines only those count, with their markup
// removed; otherwise every non-empty line is a task.
func taskLines(raw string) []string {
	var bulleted, plain []string
	for _, line := range strings.Split(raw, "\n") {
		text, bullet := stripBullet(line)
		if text == "" {
			continue
		}
		if bullet {
			bulleted = append(bulleted, text)
		} else {
			plain = append(plain, text)
		}
	}
	if len(bulleted) > 0 {
		return bulleted
	}
	if plain == nil {
		return []string{}
	}
	return plain
}

// stripBullet removes list markup ("-", "*", "•", "1.", "2)") from a
// line, reporting whether any was present.
func stripBullet(line string) (string, bool) {
	text := strings.TrimSpace(line)
	for _, prefix := range []string{"-", "*", "•"} {
		if rest, ok := strings.CutPrefix(text, prefix); ok {
			return strings.TrimSpace(rest), true
		}
	}
	// Numbered markup: digits followed by "." or ")".
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i > 0 && i < len(text) && (text[i] == '.' || text[i] == ')') {
		return strings.TrimSpace(text[i+1:]), true
	}
	return text, false
}
