package cache

import "github.com/cperrin88/vpmsync/pkg/errors"

// Common cache errors.
var (
	// ErrCacheClean is returned when there's an error cleaning the cache.
	ErrCacheClean = errors.ErrCacheClean

	// ErrCacheInfo is returned when there's an error getting cache information.
	ErrCacheInfo = errors.ErrCacheInfo

	// ErrCacheDirectory is returned when there's an error with the cache directory.
	ErrCacheDirectory = errors.ErrCacheDirectory
)
