package gueststore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
)

// FileStore keeps the guest wishlist in a JSON file, the headless stand-in
// for the browser's local storage. Reads hit the file every time.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed guest store at the given path. The file
// is created lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]domain.GuestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

// Contains implements Store.
func (s *FileStore) Contains(ctx context.Context, productID, variantID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return containsPair(s.read(), productID, variantID), nil
}

// Add implements Store.
func (s *FileStore) Add(ctx context.Context, productID, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	if containsPair(entries, productID, variantID) {
		return nil
	}
	entries = append(entries, domain.GuestEntry{ProductID: productID, VariantID: variantID})
	return s.write(entries)
}

// Remove implements Store.
func (s *FileStore) Remove(ctx context.Context, productID, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(removePair(s.read(), productID, variantID))
}

// Clear implements Store.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]domain.GuestEntry{})
}

// read parses the persisted array, treating an absent or corrupt file as empty.
func (s *FileStore) read() []domain.GuestEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.GuestEntry{}
	}
	var entries []domain.GuestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []domain.GuestEntry{}
	}
	if entries == nil {
		entries = []domain.GuestEntry{}
	}
	return entries
}

func (s *FileStore) write(entries []domain.GuestEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal guest wishlist: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create guest store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write guest wishlist: %w", err)
	}
	return nil
}
