package store

import (
	"github.com/iov-one/swapvault"
)

// PrefixStore namespaces all keys of a store. The host gives every contract
// its own prefix so that contracts cannot touch each other state.
type PrefixStore struct {
	prefix []byte
	db     swapvault.KVStore
}

var _ swapvault.KVStore = PrefixStore{}

// NewPrefixStore returns a view of db where every key is prefixed.
func NewPrefixStore(prefix []byte, db swapvault.KVStore) PrefixStore {
	return PrefixStore{prefix: prefix, db: db}
}

func (p PrefixStore) key(k []byte) []byte {
	res := make([]byte, 0, len(p.prefix)+len(k))
	res = append(res, p.prefix...)
	return append(res, k...)
}

func (p PrefixStore) Get(key []byte) ([]byte, error) {
	return p.db.Get(p.key(key))
}

func (p PrefixStore) Has(key []byte) (bool, error) {
	return p.db.Has(p.key(key))
}

func (p PrefixStore) Set(key, value []byte) error {
	return p.db.Set(p.key(key), value)
}

func (p PrefixStore) Delete(key []byte) error {
	return p.db.Delete(p.key(key))
}

// Iterator returns all keys in range with the prefix cut off.
func (p PrefixStore) Iterator(start, end []byte) (swapvault.Iterator, error) {
	from := p.key(start)
	to := PrefixEnd(p.prefix)
	if end != nil {
		to = p.key(end)
	}
	iter, err := p.db.Iterator(from, to)
	if err != nil {
		return nil, err
	}
	models, err := ReadAll(iter)
	if err != nil {
		return nil, err
	}
	for i := range models {
		models[i].Key = models[i].Key[len(p.prefix):]
	}
	return NewSliceIterator(models), nil
}

// PrefixEnd returns the smallest key that is greater than all keys starting
// with given prefix, or nil if there is no such key.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
