package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/accrual/store"
	"github.com/iov-one/accrual/weavetest/assert"
)

func makeBase() (store.CacheableKVStore, func()) {
	commit := MockCommitStore()
	return commit.Adapter(), commit.Close
}

func TestAdapterSuite(t *testing.T) {
	suite := store.NewTestSuite(makeBase)
	t.Run("get set", suite.GetSet)
	t.Run("cache conflicts", suite.CacheConflicts)
	t.Run("iterate", suite.Iterate)
}

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "accrual-iavl-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())

	// Uncommitted data is not readable from the committed state.
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("acct:a"), []byte("first")))
	assert.Nil(t, cache.Write())
	got, err := commit.Get([]byte("acct:a"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	got, err = commit.Get([]byte("acct:a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("first"), got)

	// Discarded changes never reach the tree.
	cache = commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("acct:b"), []byte("second")))
	cache.Discard()
	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.Equal(t, id.Hash, id2.Hash)

	commit.Close()

	reopened, err := NewCommitStore(dir, "state")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id2, latest)

	got, err = reopened.Get([]byte("acct:a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("first"), got)
	has, err := reopened.Adapter().Has([]byte("acct:b"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

func TestAdapterRejectsNilValue(t *testing.T) {
	commit := MockCommitStore()
	defer commit.Close()
	err := commit.Adapter().Set([]byte("k"), nil)
	if err == nil {
		t.Fatal("nil value must be rejected")
	}
}
