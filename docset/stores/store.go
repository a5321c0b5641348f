// Package stores provides keyed blob-store backends for persisting encoded
// document sets: process memory, a locked JSON file directory, and S3.
// All backends satisfy the docset.Store save/load contract.
package stores

import (
	"context"
	"errors"
)

// Driver identifies a concrete store backend.
type Driver string

const (
	DriverMemory Driver = "memory" // in-memory (tests)
	DriverFile   Driver = "file"   // local filesystem
	DriverS3     Driver = "s3"     // S3 / MinIO compatible
)

// ErrNotFound is returned by Load when no blob exists under the key.
var ErrNotFound = errors.New("stores: key not found")

// Store is the full backend interface. The docset package only needs Save
// and Load; Delete and Exists round out the surface for tooling.
type Store interface {
	// Save writes data under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the data stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error; the bool
	// reports whether anything was removed.
	Delete(ctx context.Context, key string) (bool, error)

	// Exists reports whether key holds data.
	Exists(ctx context.Context, key string) (bool, error)

	// Driver returns the backend identifier.
	Driver() Driver
}
