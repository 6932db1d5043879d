// File: utils/constants.go
package utils

// Key prefixes shared by the redis-backed stores.
const (
	// SessionCachePrefix keys session records in the auth cache.
	SessionCachePrefix = "session:"
	// CatalogCacheKey holds the cached court list.
	CatalogCacheKey = "catalog:courts"
	// AttemptLockPrefix keys the per-attempt workflow lock.
	AttemptLockPrefix = "lock:attempt:"
	// CourtDeletionPrefix keys pending court deletion tokens.
	CourtDeletionPrefix = "court-delete:"
)
