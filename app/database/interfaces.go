package database

// KVStore is the key-value capability the aggregator's cache fallback
// gate and the marking store persist through. Values are JSON documents;
// the store guarantees nothing beyond last-write-wins per key.
type KVStore interface {
	// Get returns the value for key and whether the key was present.
	Get(key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error
}
