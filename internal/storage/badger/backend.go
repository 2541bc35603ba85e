// Package badger stores jobs, candidates and their embeddings in BadgerDB.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	"github.com/davidbz/matchwise/internal/observability"
)

// Config selects the database location.
type Config struct {
	Path     string `env:"STORAGE_PATH"      envDefault:"./data/matchwise"`
	InMemory bool   `env:"STORAGE_IN_MEMORY" envDefault:"false"`
}

// badgerLogger adapts zap to the badger.Logger interface.
type badgerLogger struct {
	logger *zap.SugaredLogger
}

var _ badger.Logger = (*badgerLogger)(nil)

func (l *badgerLogger) Errorf(msg string, items ...any)   { l.logger.Errorf(msg, items...) }
func (l *badgerLogger) Warningf(msg string, items ...any) { l.logger.Warnf(msg, items...) }
func (l *badgerLogger) Infof(msg string, items ...any)    { l.logger.Infof(msg, items...) }
func (l *badgerLogger) Debugf(msg string, items ...any)   { l.logger.Debugf(msg, items...) }

// Backend wraps a BadgerDB instance.
type Backend struct {
	db *badger.DB
}

// OpenBackend opens the database described by config, creating the directory if needed.
func OpenBackend(config Config) (*Backend, error) {
	var opts badger.Options

	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if config.Path == "" {
			return nil, errors.New("storage path is required")
		}
		if err := ensureDir(config.Path); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(config.Path)
	}

	opts.Logger = &badgerLogger{logger: observability.FromContext(context.Background()).Sugar().Named("badger")}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &Backend{db: db}, nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(path, 0o755); mkErr != nil {
			return fmt.Errorf("failed to create %s: %w", path, mkErr)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// view runs fn in a read-only transaction.
func (b *Backend) view(fn func(txn *badger.Txn) error) error {
	return b.db.View(fn)
}

// update runs fn in a read-write transaction and commits on success.
func (b *Backend) update(fn func(txn *badger.Txn) error) error {
	return b.db.Update(fn)
}
