package cache

// Manager defines the interface for cache management operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
	SetDirectory(dir string) error
}

// CleanOptions specifies which cached repository documents to remove.
type CleanOptions struct {
	All     bool
	BuiltIn bool
	User    bool
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	BuiltInFreed int64
	UserFreed    int64
	FilesRemoved int
}

// Info represents cache information.
type Info struct {
	Directory    string `json:"directory"`
	TotalSize    int64  `json:"total_size"`
	BuiltInSize  int64  `json:"built_in_size"`
	BuiltInFiles int    `json:"built_in_files"`
	UserSize     int64  `json:"user_size"`
	UserFiles    int    `json:"user_files"`
}
