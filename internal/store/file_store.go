package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ponto_backend/internal/models"
	"ponto_backend/pkg/utils"
)

// FileStore keeps the document as one JSON file on disk. Writes go
// through a temp file plus rename so a crash never leaves a torn file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at path. The file itself is
// created lazily on the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, reseeded := s.read()
	if reseeded {
		// Persist the seed so the generated employee ID stays stable
		// across loads.
		if err := s.write(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (s *FileStore) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, _ := s.read()
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

// read loads and normalizes the document. Absent or malformed state
// falls back to the seeded default instead of surfacing an error; the
// reseeded flag tells Load to persist that default so the generated
// IDs stay stable. A corrupt file is moved aside first, never
// overwritten in place.
func (s *FileStore) read() (*models.Document, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultDocument(time.Now()), true
		}
		utils.LogError(err, "filestore: unreadable document, starting from defaults")
		return models.DefaultDocument(time.Now()), false
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		utils.LogError(err, "filestore: corrupt document, starting from defaults")
		if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
			utils.LogError(err, "filestore: could not move corrupt document aside")
			return models.DefaultDocument(time.Now()), false
		}
		return models.DefaultDocument(time.Now()), true
	}
	doc.Normalize()
	return &doc, false
}

func (s *FileStore) write(doc *models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", ErrStoreUnavailable, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating store directory: %v", ErrStoreUnavailable, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: writing document: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replacing document: %v", ErrStoreUnavailable, err)
	}
	return nil
}
