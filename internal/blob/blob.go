// Package blob provides binary object storage for uploaded audio,
// keyed by owner and an opaque storage key.
package blob

import (
	"context"
	"io"
	"strings"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
)

// Store is a blob store keyed by owner and storage key. Implementations
// must be safe for concurrent use.
type Store interface {
	// Put writes the blob bytes under the given owner and key.
	Put(ctx context.Context, ownerID, key, contentType string, data []byte) error
	// Open returns a reader over the blob bytes.
	// Returns apperr.ErrNotFound if the blob is absent.
	Open(ctx context.Context, ownerID, key string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, ownerID, key string) error
}

// validName reports whether s is usable as a single path element.
// Owner IDs and storage keys are opaque identifiers; anything that
// could traverse directories is rejected.
func validName(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return apperr.ErrMalformedInput
	}
	return nil
}
