package identity

import "context"

// Store is the key-value persistence boundary for identity state. It mirrors
// the flat string-keyed storage the dashboard originally used, so backends
// are swappable: MemoryStore for tests, SQLiteStore for production.
//
// Get returns (nil, nil) for a missing key. Errors are reserved for backend
// I/O failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
