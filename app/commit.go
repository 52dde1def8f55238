package app

import (
	"encoding/binary"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining the deliver
// cache and returning useful state info.
type CommitStore struct {
	committed accrual.CommitKVStore
	deliver   accrual.KVCacheWrap
}

// NewCommitStore loads the latest version of the store. It sets up the
// deliver cache.
func NewCommitStore(store accrual.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current version and hash
func (cs *CommitStore) CommitInfo() (accrual.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver cache.
func (cs *CommitStore) Commit() (accrual.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return accrual.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() accrual.CacheableKVStore {
	return cs.deliver
}

// _app: is a prefix for application internal data
var (
	chainIDKey   = []byte("_app:chain_id")
	blockTimeKey = []byte("_app:block_time")
)

// loadChainID returns the chain id stored if any.
func loadChainID(kv accrual.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv accrual.KVStore, chainID string) error {
	if !accrual.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	exists, err := kv.Has(chainIDKey)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}

// loadBlockTime returns the time of the last delivered transaction or zero.
func loadBlockTime(kv accrual.ReadOnlyKVStore) (accrual.UnixTime, error) {
	raw, err := kv.Get(blockTimeKey)
	if err != nil {
		return 0, errors.Wrap(err, "load block time")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrDatabase, "block time of %d bytes", len(raw))
	}
	return accrual.UnixTime(binary.BigEndian.Uint64(raw)), nil
}

func saveBlockTime(kv accrual.KVStore, t accrual.UnixTime) error {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(t))
	return kv.Set(blockTimeKey, raw[:])
}
