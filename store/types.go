package store

import "github.com/iov-one/accrual"

// Move references for all storage types into this package
// for shorter names everywhere.

type (
	ReadOnlyKVStore  = accrual.ReadOnlyKVStore
	KVStore          = accrual.KVStore
	SetDeleter       = accrual.SetDeleter
	Batch            = accrual.Batch
	Iterator         = accrual.Iterator
	CacheableKVStore = accrual.CacheableKVStore
	KVCacheWrap      = accrual.KVCacheWrap
	CommitKVStore    = accrual.CommitKVStore
	CommitID         = accrual.CommitID
)

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
