package store

// Logger receives error reports from store operations.
type Logger interface {
	Error(msg string, err error)
}

// EvictCallback is called when an entry is evicted from a bounded store.
// Not all providers evict (Redis persists until TTL or server-side policy).
type EvictCallback func(key string, value []byte)

// Store is the key-value boundary behind playback-progress and preference
// persistence. Implementations may keep data in process memory or in an
// external backend like Redis/Valkey; callers never reference a concrete
// storage mechanism.
//
// Reads conflate miss and backend failure: both return ok=false, and callers
// degrade to their default value (position zero, default preference). Writes
// return an error so callers can report the failure without interrupting
// playback.
type Store interface {
	// Get retrieves a value by key. Returns the value and true if found, or
	// nil and false on a miss or a backend read failure.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key, overwriting any previous value.
	// Last write wins; there is no merge.
	Set(key string, value []byte) error

	// Contains checks whether a key exists without touching access ordering.
	Contains(key string) bool

	// Len returns the number of entries currently stored.
	Len() int

	// Close releases any resources held by the store (e.g., network
	// connections). For in-memory stores, this is a no-op.
	Close() error
}
