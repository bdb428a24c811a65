package domain

// KeyValueStore is the local persistence capability. Values are opaque
// bytes; callers own the encoding.
type KeyValueStore interface {
	// Get returns the stored value. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	Close() error
}

// FavoritesKey is the key holding the JSON array of favorite movies
const FavoritesKey = "cineRadarFavorites"
