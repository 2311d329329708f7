package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// MemStore returns a simple implementation useful for tests and for hosts
// that do not persist their state. There is no persistence here.
func MemStore() swapvault.CacheableKVStore {
	return NewBTreeCacheWrap(emptyKVStore{}, nil)
}

// BTreeCacheWrap places a btree cache over a KVStore. All writes stay in the
// btree until Write is called. Discard drops them.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	free *btree.FreeList
	back swapvault.KVStore
}

var _ swapvault.KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv swapvault.KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:   btree.NewWithFreeList(2, free),
		free: free,
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b BTreeCacheWrap) CacheWrap() swapvault.KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write syncs with the underlying store in key order and then cleans up.
func (b BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		it := i.(item)
		if it.deleted {
			err = b.back.Delete(it.key)
		} else {
			err = b.back.Set(it.key, it.value)
		}
		return err == nil
	})
	b.Discard()
	if err != nil {
		return errors.Wrap(err, "write cache")
	}
	return nil
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for b.bt.DeleteMin() != nil {
	}
}

// Set writes to the BTree only.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrHuman, "nil key")
	}
	b.bt.ReplaceOrInsert(item{key: key, value: value})
	return nil
}

// Delete marks the key deleted in the BTree.
func (b BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrHuman, "nil key")
	}
	b.bt.ReplaceOrInsert(item{key: key, deleted: true})
	return nil
}

// Get reads from btree if there, else backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if res := b.bt.Get(item{key: key}); res != nil {
		it := res.(item)
		if it.deleted {
			return nil, nil
		}
		return it.value, nil
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if res := b.bt.Get(item{key: key}); res != nil {
		return !res.(item).deleted, nil
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order. Combines results from
// btree and backing store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (swapvault.Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	models, err := ReadAll(parent)
	if err != nil {
		return nil, err
	}

	var local []item
	collect := func(i btree.Item) bool {
		local = append(local, i.(item))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(collect)
	case start == nil:
		b.bt.AscendLessThan(item{key: end}, collect)
	case end == nil:
		b.bt.AscendGreaterOrEqual(item{key: start}, collect)
	default:
		b.bt.AscendRange(item{key: start}, item{key: end}, collect)
	}
	return NewSliceIterator(merge(models, local)), nil
}

// merge overlays cached items on top of the sorted parent models.
func merge(parent []Model, local []item) []Model {
	res := make([]Model, 0, len(parent)+len(local))
	i, j := 0, 0
	for i < len(parent) || j < len(local) {
		switch {
		case j == len(local):
			res = append(res, parent[i])
			i++
		case i == len(parent):
			if !local[j].deleted {
				res = append(res, Model{Key: local[j].key, Value: local[j].value})
			}
			j++
		default:
			cmp := bytes.Compare(parent[i].Key, local[j].key)
			if cmp < 0 {
				res = append(res, parent[i])
				i++
				continue
			}
			if cmp == 0 {
				// Cached value shadows the parent one.
				i++
			}
			if !local[j].deleted {
				res = append(res, Model{Key: local[j].key, Value: local[j].value})
			}
			j++
		}
	}
	return res
}

// item is a single cached write. A deleted item shadows the backing store.
type item struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = item{}

// Less returns true iff second argument is greater than first.
func (i item) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(item).key) < 0
}

// emptyKVStore is the bottom of a memory only store.
type emptyKVStore struct{}

func (emptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (emptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (emptyKVStore) Set(key, value []byte) error    { return nil }
func (emptyKVStore) Delete(key []byte) error        { return nil }
func (emptyKVStore) Iterator(start, end []byte) (swapvault.Iterator, error) {
	return NewSliceIterator(nil), nil
}
