package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig configures the embedded on-device store
type BadgerConfig struct {
	// Path is the directory for the database files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM (tests)
	InMemory bool

	// SyncWrites fsyncs every write; the checklist is tiny so this stays on outside tests
	SyncWrites bool

	// Verbose routes badger's own info/debug logging to the standard logger
	Verbose bool
}

// DefaultBadgerConfig returns the production settings for path
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{Path: path, SyncWrites: true}
}

// InMemoryBadgerConfig returns settings for tests
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// badgerLogger adapts the standard logger to badger's Logger interface.
// Warnings and errors are always shown, info/debug only when verbose.
type badgerLogger struct {
	verbose bool
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	log.Printf("❌ badger: "+format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	log.Printf("⚠️  badger: "+format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	if l.verbose {
		log.Printf("badger: "+format, args...)
	}
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		log.Printf("badger: "+format, args...)
	}
}

// BadgerStore is a Store on an embedded BadgerDB
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (and creates) the store described by cfg
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{verbose: cfg.Verbose})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

func (s *BadgerStore) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
