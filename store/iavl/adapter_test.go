package iavl

import (
	"testing"

	"github.com/iov-one/swapvault/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStore(t *testing.T) {
	dir := t.TempDir()

	db, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, db.LoadLatestVersion())

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("swap:1"), []byte("one")))
	require.NoError(t, cache.Set([]byte("swap:2"), []byte("two")))

	// Nothing is visible before the cache is written.
	has, err := db.Has([]byte("swap:1"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, cache.Write())
	first, err := db.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Version)
	assert.NotEmpty(t, first.Hash)

	require.NoError(t, db.Delete([]byte("swap:1")))
	second, err := db.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)

	iter, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	models, err := store.ReadAll(iter)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "swap:2", string(models[0].Key))

	db.Close()
	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())
	assert.Equal(t, second, reopened.LatestVersion())
	val, err := reopened.Get([]byte("swap:2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), val)
}

func TestCommitStoreInMemory(t *testing.T) {
	db, err := NewCommitStore("", "")
	require.NoError(t, err)

	require.NoError(t, db.Set([]byte("k"), []byte("v")))
	val, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	id, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, id, db.LatestVersion())
}
