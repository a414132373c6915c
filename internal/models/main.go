// Package models defines the core data structures for users and voice notes.
package models

import (
	"encoding/json"
	"time"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"userId"`
	// Email is the unique login address.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Empty for accounts created through federated login.
	PasswordHash []byte `json:"-"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// Note processing lifecycle states.
const (
	// StatusPending means the note has been uploaded but not transcribed.
	StatusPending = "pending"
	// StatusTranscribed means a transcription is present.
	StatusTranscribed = "transcribed"
	// StatusSummarized means summary and tasks are populated.
	StatusSummarized = "summarized"
)

// Note holds the metadata of one uploaded audio item. Exactly one Note
// exists per stored blob; the blob key is ID plus the original file
// extension.
type Note struct {
	// ID is the opaque identifier generated at upload time.
	ID string `json:"id"`
	// OwnerID is the identifier of the owning user.
	OwnerID string `json:"ownerId"`
	// Filename is the original name of the uploaded file.
	Filename string `json:"filename"`
	// StoredAs is the blob storage key ("{id}.{ext}").
	StoredAs string `json:"storedAs"`
	// ContentType is the MIME type of the stored audio.
	ContentType string `json:"contentType"`
	// Size is the blob size in bytes.
	Size int64 `json:"size"`
	// UploadedAt is the upload timestamp.
	UploadedAt time.Time `json:"uploadedAt"`
	// Duration is the audio length in seconds, best effort (0 if unknown).
	Duration float64 `json:"duration"`
	// Transcription is the speech-to-text output. Starts empty.
	Transcription string `json:"transcription"`
	// Summary is the language-model summary. Starts empty.
	Summary string `json:"summary"`
	// Tasks is the extracted action list, in order.
	Tasks []string `json:"tasks"`
	// Source is a free-text tag describing where the note came from.
	Source string `json:"source"`
	// Name is an optional user-supplied display name.
	Name string `json:"name,omitempty"`
	// Comment is an optional user-supplied comment.
	Comment string `json:"comment,omitempty"`
	// Status is the processing lifecycle state.
	Status string `json:"status"`
}

// UnmarshalJSON normalizes metadata written by older revisions, which
// used a "transcript" key instead of "transcription". Normalization
// happens once here at the decode boundary; every encode emits
// "transcription" only.
func (n *Note) UnmarshalJSON(data []byte) error {
	type alias Note
	aux := struct {
		*alias
		LegacyTranscript string `json:"transcript"`
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if n.Transcription == "" && aux.LegacyTranscript != "" {
		n.Transcription = aux.LegacyTranscript
	}
	if n.Tasks == nil {
		n.Tasks = []string{}
	}
	return nil
}
