package iavl

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state.
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ swapvault.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing in given directory.
// An empty directory keeps everything in memory.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	var db dbm.DB
	if dir == "" {
		db = dbm.NewMemDB()
	} else {
		ldb, err := dbm.NewGoLevelDB(name, dir)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "open leveldb: %s", err)
		}
		db = ldb
	}
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return &CommitStore{db: db, tree: tree}, nil
}

// Close releases the underlying database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// Get returns nil iff key doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set adds a new value to the working tree.
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (swapvault.Iterator, error) {
	var res []store.Model
	s.tree.IterateRange(start, end, true, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res), nil
}

// CacheWrap gives us a savepoint to perform actions. Writing the cache
// updates the working tree; Commit persists it.
func (s *CommitStore) CacheWrap() swapvault.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, nil)
}

// Commit the next version to disk, and returns info.
func (s *CommitStore) Commit() (swapvault.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return swapvault.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return swapvault.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() swapvault.CommitID {
	return swapvault.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load: %s", err)
	}
	return nil
}
