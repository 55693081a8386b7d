// Package seller maintains the roster of sellers allowed to receive orders.
// The roster is loaded once at startup from gzipped id files, either from the
// local file system or from S3, and is read-only afterwards.
package seller

import (
	"context"
)

// Roster answers whether a seller is registered in the marketplace.
type Roster interface {
	// Contains checks if a seller id is on the roster.
	Contains(sellerID string) bool

	// Size returns the number of registered sellers.
	Size() int

	// Close releases resources held by the roster.
	Close() error
}

// IDSet represents a set of seller ids for fast lookup.
type IDSet interface {
	// Contains checks if a seller id exists in the set.
	Contains(id string) bool

	// Size returns the number of ids in the set.
	Size() int
}

// Loader defines the interface for loading roster files.
type Loader interface {
	// Load reads a gzipped roster file and returns an IDSet.
	Load(ctx context.Context, path string) (IDSet, error)
}
