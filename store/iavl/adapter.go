/*
Package iavl provides a persistent, versioned CommitKVStore backed by an iavl
merkle tree stored in goleveldb.

Every commit creates a new tree version. Uncommitted changes are kept in the
working tree and are lost when the process exits.
*/
package iavl

import (
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes kept in memory.
const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with a goleveldb backend, using files
// in given directory. Call LoadLatestVersion before using it.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return &CommitStore{
		db:   db,
		tree: iavl.NewMutableTree(db, cacheSize),
	}, nil
}

// MockCommitStore creates a new in memory store, for testing.
func MockCommitStore() *CommitStore {
	db := dbm.NewMemDB()
	return &CommitStore{
		db:   db,
		tree: iavl.NewMutableTree(db, cacheSize),
	}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	if version == 0 {
		return nil, nil
	}
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load: %s", err)
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap returns a cache over the working tree. Writing the cache updates
// the working tree, which is persisted by the next Commit call.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a direct view of the working tree.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// Close releases the database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// adapter exposes the working tree as a KVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a adapter) Set(key, value []byte) error {
	if value == nil {
		return errors.Wrap(errors.ErrInput, "nil value")
	}
	a.tree.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.iterate(start, end, false), nil
}

// iterate reads the whole range upfront, so the tree can be modified while the
// iterator is in use.
func (a adapter) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}
