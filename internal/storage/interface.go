package storage

import (
	"errors"

	"github.com/julianstephens/habitkit/internal/migration"
)

// Provider persists opaque documents by key. The store encodes each
// collection with the codec in this package and hands the bytes over.
type Provider interface {
	// Init prepares the backend (directory, database, schema). It is safe
	// to call on an already initialized backend.
	Init() error
	// Load returns the stored document. A missing document is (nil, false, nil).
	Load(key string) ([]byte, bool, error)
	// Save replaces the document atomically.
	Save(key string, data []byte) error
	Close() error
	GetConfigPath() string
}

// ErrNotInitialized is returned by SQL backends used before Init.
var ErrNotInitialized = errors.New("storage not initialized, run 'habitkit init' first")

// SchemaProvider is implemented by backends with a versioned SQL schema.
type SchemaProvider interface {
	Provider
	// MigrationRunner inspects the schema of an initialized backend.
	MigrationRunner() (*migration.Runner, error)
	Ping() error
}

var (
	_ SchemaProvider = (*SQLiteStore)(nil)
	_ SchemaProvider = (*PostgresStore)(nil)
)
