package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
)

// FSStore stores blobs on the local filesystem, one directory per owner,
// one file per blob named by its storage key.
type FSStore struct {
	// Root is the base directory of the store.
	Root string
}

// NewFSStore creates an FSStore rooted at dir, creating it if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FSStore{Root: dir}, nil
}

func (s *FSStore) path(ownerID, key string) (string, error) {
	if err := validName(ownerID); err != nil {
		return "", err
	}
	if err := validName(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Root, ownerID, key), nil
}

// Put writes the blob to {root}/{owner}/{key}. The content type is not
// persisted; it lives on the note metadata record.
func (s *FSStore) Put(_ context.Context, ownerID, key, _ string, data []byte) error {
	p, err := s.path(ownerID, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create owner dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Open opens the stored blob for reading.
func (s *FSStore) Open(_ context.Context, ownerID, key string) (io.ReadCloser, error) {
	p, err := s.path(ownerID, key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// Delete removes the stored blob, ignoring absent files.
func (s *FSStore) Delete(_ context.Context, ownerID, key string) error {
	p, err := s.path(ownerID, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
