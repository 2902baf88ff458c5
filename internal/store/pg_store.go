package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"ponto_backend/internal/models"
	"ponto_backend/pkg/utils"
)

// PostgresStore keeps the document as a single JSONB row, locked with
// SELECT ... FOR UPDATE on every mutation. This is the multi-device
// variant of the store: the row lock serializes concurrent writers.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the database described by the parameters.
func OpenPostgres(host, port, user, password, dbname, sslmode string) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// NewPostgresStore prepares the document table and returns the store.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ponto_document (
		id         INT PRIMARY KEY,
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("%w: creating document table: %v", ErrStoreUnavailable, err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load() (*models.Document, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT doc FROM ponto_document WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return s.seed()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading document: %v", ErrStoreUnavailable, err)
	}
	return decodeDocument(raw), nil
}

// seed inserts the default document if the row is still absent, then
// reads back whichever document won. Persisting the seed keeps the
// generated employee ID stable across loads.
func (s *PostgresStore) seed() (*models.Document, error) {
	out, err := json.Marshal(models.DefaultDocument(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("%w: encoding seed document: %v", ErrStoreUnavailable, err)
	}
	_, err = s.db.Exec(`INSERT INTO ponto_document (id, doc, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING`, out, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: seeding document: %v", ErrStoreUnavailable, err)
	}
	var raw []byte
	if err := s.db.QueryRow(`SELECT doc FROM ponto_document WHERE id = 1`).Scan(&raw); err != nil {
		return nil, fmt.Errorf("%w: loading seeded document: %v", ErrStoreUnavailable, err)
	}
	return decodeDocument(raw), nil
}

func (s *PostgresStore) Update(fn func(doc *models.Document) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	var raw []byte
	doc := models.DefaultDocument(time.Now())
	err = tx.QueryRow(`SELECT doc FROM ponto_document WHERE id = 1 FOR UPDATE`).Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: locking document: %v", ErrStoreUnavailable, err)
	}
	if err == nil {
		doc = decodeDocument(raw)
	}

	if err := fn(doc); err != nil {
		return err
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", ErrStoreUnavailable, err)
	}
	_, err = tx.Exec(`INSERT INTO ponto_document (id, doc, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		out, time.Now())
	if err != nil {
		return fmt.Errorf("%w: writing document: %v", ErrStoreUnavailable, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing document: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func decodeDocument(raw []byte) *models.Document {
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		utils.LogError(err, "pgstore: corrupt document row, starting from defaults")
		return models.DefaultDocument(time.Now())
	}
	doc.Normalize()
	return &doc
}
