package cache

import "time"

// CacheService defines the behavior for caching mechanisms.
// Implementations must be safe for concurrent use.
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found and not expired
	// Returns nil, false otherwise
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete expires a value immediately
	Delete(key string)

	// Flush removes all items
	Flush()
}

// Keys shared across packages
const (
	KeyStoreCredentialsPrefix = "messaging:credentials:"
	KeyShippingConfigPrefix   = "shipping:config:"
	KeyShiprocketToken        = "courier:shiprocket:token"
)
