package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteReadRemove(t *testing.T) {
	store := NewStore(t.TempDir())
	name := NewLocalPath()
	assert.True(t, strings.HasSuffix(name, ".json"))

	_, err := store.Read(name)
	require.ErrorIs(t, err, ErrRepositoryNotFound)
	assert.True(t, store.IsStale(name, time.Hour))

	require.NoError(t, store.Write(name, testDocument(t, "a.repo", "", "A", "com.a@1.0.0")))

	doc, err := store.Read(name)
	require.NoError(t, err)
	assert.Equal(t, "a.repo", doc.ID)
	assert.Contains(t, doc.Packages, "com.a")
	assert.False(t, store.IsStale(name, time.Hour))
	assert.True(t, store.IsStale(name, 0))

	require.NoError(t, store.Remove(name))
	require.NoError(t, store.Remove(name), "removing a missing document succeeds")
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_IsStaleByAge(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write(OfficialLocalPath, testDocument(t, OfficialID, "", "", "com.vrchat.base@3.5.0")))

	old := time.Now().Add(-2 * time.Hour)
	path, err := store.Path(OfficialLocalPath)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(path, old, old))

	assert.True(t, store.IsStale(OfficialLocalPath, time.Hour))
	assert.False(t, store.IsStale(OfficialLocalPath, 3*time.Hour))
}

func TestStore_PathRejectsTraversal(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, name := range []string{"", ".", "..", "../escape.json", "sub/dir.json", "/abs/path.json"} {
		_, err := store.Path(name)
		assert.ErrorIs(t, err, ErrLocalPathInvalid, "name %q", name)
	}
}

func TestStore_ReadInvalidDocument(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("broken.json", []byte("{")))

	_, err := store.Read("broken.json")
	assert.ErrorIs(t, err, ErrRepositoryDocumentInvalid)
}

func TestDerivedLocalPath(t *testing.T) {
	a := DerivedLocalPath("https://a/repo")
	assert.Equal(t, a, DerivedLocalPath("https://a/repo"))
	assert.NotEqual(t, a, DerivedLocalPath("https://b/repo"))

	_, err := NewStore(t.TempDir()).Path(a)
	assert.NoError(t, err)
}
