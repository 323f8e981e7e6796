package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	tests := []struct {
		name     string
		existing []byte
		data     []byte
	}{
		{name: "new file in missing directory", data: []byte(`{"packages":{}}`)},
		{name: "replace existing file", existing: []byte("old"), data: []byte("new")},
		{name: "empty content", data: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "repos", "doc.json")
			if tt.existing != nil {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), DirModeDefault))
				require.NoError(t, os.WriteFile(path, tt.existing, FileModeDefault))
			}

			require.NoError(t, WriteFileAtomic(path, tt.data, FileModeSecure))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file must not be left behind")
		})
	}
}

func TestWriteFileAtomic_EmptyPath(t *testing.T) {
	require.Error(t, WriteFileAtomic("", []byte("x"), FileModeDefault))
}
