// Package file implements ports.ConversationStore on the local filesystem.
// Each conversation is one JSON document, so state survives restarts and can
// be inspected or edited with ordinary tools.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/helioscommand/helios/pkg/domain"
)

const fileExt = ".json"

// Store persists conversations as JSON files in a single directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a store rooted there.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the conversation document. The write is atomic: a temp file is
// renamed over the target so readers never see a partial document.
func (s *Store) Save(ctx context.Context, conv *domain.Conversation) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode %s: %w", conv.ID, err)
	}

	path := s.path(conv.ID)
	tmp, err := os.CreateTemp(s.dir, "conv-*.tmp")
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: write %s: %w", conv.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: write %s: %w", conv.ID, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: write %s: %w", conv.ID, err)
	}
	return nil
}

// Load reads a conversation document by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Conversation, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %s: %w", id, err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", id, err)
	}
	conv.Status = domain.StatusIdle
	return &conv, nil
}

// Delete removes the conversation document. Deleting a conversation that
// does not exist is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file store: delete %s: %w", id, err)
	}
	return nil
}

// List returns the IDs of all stored conversations.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		id, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// path maps an ID to its document path. IDs are escaped so separators and
// dot segments cannot leave the storage directory.
func (s *Store) path(id string) string {
	return filepath.Join(s.dir, url.PathEscape(id)+fileExt)
}
