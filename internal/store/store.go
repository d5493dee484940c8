// Package store provides the key-value persistence boundary the wizard
// saves form progress through. The interface is small on purpose so the
// file-backed store can be swapped for an in-memory one under test.
package store

// Store is a minimal key-value byte store.
type Store interface {
	// Get returns the stored value and whether the key exists. A missing
	// key is not an error.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Remove deletes the key. Removing a missing key is a no-op.
	Remove(key string) error
}
