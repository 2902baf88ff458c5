package store

import (
	"errors"

	"ponto_backend/internal/models"
)

// ErrStoreUnavailable is returned for unexpected persistence failures.
var ErrStoreUnavailable = errors.New("document store unavailable")

// Store is the single-document persistence layer. The whole application
// state lives in one models.Document; every mutation is a locked
// read-modify-write of that document.
type Store interface {
	// Load returns a normalized snapshot of the document. A missing or
	// unreadable document yields the seeded first-run default, never an
	// error visible to callers.
	Load() (*models.Document, error)

	// Update applies fn to the current document under the store lock and
	// persists the result. When fn returns an error nothing is written.
	Update(fn func(doc *models.Document) error) error
}
