package cache

import (
	"fmt"

	"github.com/cperrin88/vpmsync/internal/logger"
)

// Operation formats cache management results for display.
type Operation struct {
	manager Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager Manager) *Operation {
	return &Operation{
		manager: manager,
	}
}

// Clean cleans the cache based on the provided options.
func (op *Operation) Clean(all, builtIn, user bool) (string, error) {
	options := CleanOptions{
		All:     all,
		BuiltIn: builtIn,
		User:    user,
	}

	logger.Debug("Cleaning cache", logger.Fields{
		"all":      options.All,
		"built_in": options.BuiltIn,
		"user":     options.User,
	})

	result, err := op.manager.Clean(options)
	if err != nil {
		return "", fmt.Errorf("failed to clean cache: %w", err)
	}

	var msg string
	if result.FilesRemoved > 0 {
		msg = fmt.Sprintf("Successfully cleaned cache. Freed %s of disk space.", formatBytes(result.TotalFreed))
		if result.BuiltInFreed > 0 {
			msg += fmt.Sprintf("\n- Built-in repositories: %s", formatBytes(result.BuiltInFreed))
		}
		if result.UserFreed > 0 {
			msg += fmt.Sprintf("\n- User repositories: %s", formatBytes(result.UserFreed))
		}
	} else {
		msg = "No files were removed from the cache."
	}

	return msg, nil
}

// GetInfo returns information about the cache.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get cache info: %w", err)
	}

	return fmt.Sprintf(`Cache Information:
  Directory:    %s
  Total Size:   %s
  Built-in:     %s (%d files)
  User:         %s (%d files)`,
		info.Directory,
		formatBytes(info.TotalSize),
		formatBytes(info.BuiltInSize),
		info.BuiltInFiles,
		formatBytes(info.UserSize),
		info.UserFiles,
	), nil
}

// GetDirectory returns the cache directory path.
func (op *Operation) GetDirectory() string {
	return op.manager.GetDirectory()
}

// SetDirectory sets a new cache directory.
func (op *Operation) SetDirectory(dir string) error {
	if dir == "" {
		return ErrCacheDirectory
	}

	logger.Debug("Setting cache directory", logger.Fields{"directory": dir})
	return op.manager.SetDirectory(dir)
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
