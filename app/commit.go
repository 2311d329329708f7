package app

import (
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining the deliver
// cache all transactions are applied to, and returning useful state info.
type CommitStore struct {
	committed swapvault.CommitKVStore
	deliver   swapvault.KVCacheWrap
}

// NewCommitStore loads the latest version of the store and sets up the
// deliver cache.
func NewCommitStore(kv swapvault.CommitKVStore) (*CommitStore, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: kv,
		deliver:   kv.CacheWrap(),
	}, nil
}

// CommitInfo returns the current version and hash.
func (cs *CommitStore) CommitInfo() swapvault.CommitID {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it to disk.
// It then regenerates a new deliver cache.
func (cs *CommitStore) Commit() (swapvault.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return swapvault.CommitID{}, err
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}
