// Package store persists room documents and related blobs as JSON
// keyed by opaque string keys. Backends share a minimal key/value
// contract so a filesystem store for dev, a SQLite store for real
// use, and a memory store for tests are interchangeable.
package store

import (
	"errors"
	"fmt"
)

// Driver identifies a concrete storage backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default, dev)
	DriverSQLite     Driver = "sqlite" // single-file SQLite database
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key/value contract over JSON payloads.
type Store interface {
	// Put stores payload under key, replacing any existing value.
	Put(key string, payload []byte) error
	// Get retrieves the payload stored under key.
	// Returns ErrNotFound when the key is absent.
	Get(key string) ([]byte, error)
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all stored keys with the given prefix, sorted.
	Keys(prefix string) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// Open selects a backend by driver. path is the filesystem root for
// the fs driver and the database file for the sqlite driver; the
// memory driver ignores it.
func Open(driver Driver, path string) (Store, error) {
	switch driver {
	case DriverFilesystem, "":
		return NewFilesystem(path)
	case DriverSQLite:
		return NewSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %s", driver)
	}
}
