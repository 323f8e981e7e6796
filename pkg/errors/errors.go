// Package errors holds the sentinel errors shared across vpmsync and small
// helpers for adding context to them.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to replace config file")
	ErrConfigLock        = fmt.Errorf("failed to lock config file")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config")
	ErrConfigFileExists  = fmt.Errorf("config file already exists")

	// Settings validation errors.
	ErrHTTPTimeoutNegative  = fmt.Errorf("http_timeout cannot be negative")
	ErrCacheTTLNegative     = fmt.Errorf("cache_ttl cannot be negative")
	ErrMaxConcurrentInvalid = fmt.Errorf("max_concurrent_fetches must be at least 1")
	ErrInvalidOutputFormat  = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel      = fmt.Errorf("invalid log level")
	ErrRepositoryIdentity   = fmt.Errorf("repository needs a url or an id")
	ErrRepositoryExists     = fmt.Errorf("repository already exists")

	// Cache errors.
	ErrCacheClean     = fmt.Errorf("failed to clean cache")
	ErrCacheInfo      = fmt.Errorf("failed to get cache info")
	ErrCacheDirectory = fmt.Errorf("cache directory cannot be empty")

	// Generic I/O errors.
	ErrInvalidPath      = fmt.Errorf("invalid path")
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrDocumentTooLarge = fmt.Errorf("document too large")
	ErrFileWriteFailed  = fmt.Errorf("failed to write file")
)

// ErrInvalidOutputFormatWithDetails reports an unsupported output format.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: %q (valid: text, json)", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails reports an unsupported log level.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, level)
}

// ErrRepositoryIdentityWithIndex reports a repository entry without url and id.
func ErrRepositoryIdentityWithIndex(index int) error {
	return fmt.Errorf("repository at index %d: %w", index, ErrRepositoryIdentity)
}

// ErrRepositoryExistsWithID reports a second repository with the same id.
func ErrRepositoryExistsWithID(id string) error {
	return fmt.Errorf("%w: %s", ErrRepositoryExists, id)
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
