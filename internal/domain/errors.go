package domain

import "errors"

var (
	// ErrProductNotFound is returned when a provider has no candidates for a query
	ErrProductNotFound = errors.New("product not found")

	// ErrProviderFailure is returned when a provider request fails (network or non-2xx status)
	ErrProviderFailure = errors.New("nutrition provider request failed")

	// ErrProviderDisabled is returned by a provider that is switched off in configuration
	ErrProviderDisabled = errors.New("nutrition provider disabled")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache or has expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the cache backend cannot be reached
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrItemNotFound is returned when the item store has no row for an item id
	ErrItemNotFound = errors.New("item not found")

	// ErrNoInventoryMatch is returned when no inventory entry matches a name
	ErrNoInventoryMatch = errors.New("no matching inventory entry")
)
