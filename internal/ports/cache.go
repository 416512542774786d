package ports

// MediaCache is a durable key-value store for encoded media
// representations. Keys are namespaced source URLs; values are
// self-contained data URIs. Entries persist across runs and are never
// evicted by the engine; Clear is the external clearing path.
type MediaCache interface {
	// Get returns the cached value for key, reporting whether it exists.
	Get(key string) (string, bool, error)

	// Put persists value under key. Writing an existing key is
	// idempotent (same key, equivalent value).
	Put(key, value string) error

	// Count returns the number of persisted entries.
	Count() (int64, error)

	// Clear removes every entry.
	Clear() error

	Close() error
}
