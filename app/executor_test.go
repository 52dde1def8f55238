package app

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store/iavl"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
	"github.com/iov-one/accrual/x/auth"
	"github.com/iov-one/accrual/x/utils"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

const chainID = "test-chain"

type writeMsg struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (writeMsg) Path() string { return "test/write" }

func (m *writeMsg) Validate() error {
	if m.Key == "" {
		return errors.Field("Key", errors.ErrEmpty, "key is required")
	}
	return nil
}

type written struct{ Key string }

func (written) EventName() string { return "test/written" }

// writeHandler stores the message value. The "fail" value is written and
// then rejected.
type writeHandler struct{}

func (writeHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg writeMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if err := db.Set([]byte(msg.Key), []byte(msg.Value)); err != nil {
		return nil, err
	}
	accrual.Emit(ctx, written{Key: msg.Key})
	if msg.Value == "fail" {
		return nil, errors.Wrap(errors.ErrState, "rejected")
	}
	return &accrual.DeliverResult{Log: "written"}, nil
}

type initializer struct{ key string }

func (i initializer) FromGenesis(opts accrual.Options, db accrual.KVStore) error {
	var value string
	if err := opts.ReadOptions(i.key, &value); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrapf(errors.ErrNotFound, "%q not in genesis", i.key)
	}
	return db.Set([]byte(i.key), []byte(value))
}

func newTestExecutor(t testing.TB, kv *iavl.CommitStore) (*Executor, *Router) {
	t.Helper()
	r := NewRouter()
	r.Handle(&writeMsg{}, writeHandler{})
	stack := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		auth.NewDecorator(),
		utils.NewSavepoint(),
	).WithHandler(r)

	cs, err := NewCommitStore(kv)
	assert.Nil(t, err)
	e, err := NewExecutor(cs, stack, NewTxDecoder(r), log.NewNopLogger())
	assert.Nil(t, err)
	return e, r
}

func at(seconds int64) accrual.Context {
	return accrual.WithBlockTime(context.Background(), time.Unix(1600000000+seconds, 0))
}

func signedTx(t testing.TB, e *Executor, key ed25519.PrivateKey, msg accrual.Msg) *Tx {
	t.Helper()
	var seq int64
	err := e.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		seq, err = auth.NextSequence(db, key.Public().(ed25519.PublicKey))
		return err
	})
	assert.Nil(t, err)
	tx := &Tx{Msg: msg}
	assert.Nil(t, tx.Sign(key, chainID, seq))
	return tx
}

func stored(t testing.TB, e *Executor, key string) string {
	t.Helper()
	var value []byte
	err := e.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		value, err = db.Get([]byte(key))
		return err
	})
	assert.Nil(t, err)
	return string(value)
}

func TestInitChain(t *testing.T) {
	kv := iavl.MockCommitStore()
	e, _ := newTestExecutor(t, kv)

	_, err := e.Deliver(at(0), &Tx{Msg: &writeMsg{Key: "a"}})
	assert.IsErr(t, errors.ErrState, err)

	gen := &Genesis{ChainID: chainID, AppState: accrual.Options{"one": []byte(`"1"`)}}

	// Failed initialization leaves no state behind.
	err = e.InitChain(gen, ChainInitializers(initializer{"one"}, initializer{"two"}))
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, "", e.ChainID())
	assert.Equal(t, "", stored(t, e, "one"))

	assert.Nil(t, e.InitChain(gen, initializer{"one"}))
	assert.Equal(t, chainID, e.ChainID())
	assert.Equal(t, "1", stored(t, e, "one"))

	err = e.InitChain(gen, initializer{"one"})
	assert.IsErr(t, errors.ErrState, err)

	_, err = e.Commit()
	assert.Nil(t, err)

	// Chain id is loaded from the store.
	again, _ := newTestExecutor(t, kv)
	assert.Equal(t, chainID, again.ChainID())
}

func TestDeliver(t *testing.T) {
	e, _ := newTestExecutor(t, iavl.MockCommitStore())
	assert.Nil(t, e.InitChain(&Genesis{ChainID: chainID}, ChainInitializers()))
	key := weavetest.NewKey()

	res, err := e.Deliver(at(0), signedTx(t, e, key, &writeMsg{Key: "a", Value: "1"}))
	assert.Nil(t, err)
	assert.Equal(t, "written", res.Log)
	assert.Equal(t, []accrual.Event{written{Key: "a"}}, res.Events)
	assert.Equal(t, "1", stored(t, e, "a"))

	// Failed message is discarded, but the signature is used up.
	tx := signedTx(t, e, key, &writeMsg{Key: "b", Value: "fail"})
	_, err = e.Deliver(at(10), tx)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, "", stored(t, e, "b"))
	_, err = e.Deliver(at(10), tx)
	assert.IsErr(t, auth.ErrInvalidSequence, err)

	// Unsigned transaction is rejected.
	_, err = e.Deliver(at(10), &Tx{Msg: &writeMsg{Key: "c", Value: "1"}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Block time cannot go backwards.
	_, err = e.Deliver(at(-5), signedTx(t, e, key, &writeMsg{Key: "c", Value: "1"}))
	assert.IsErr(t, errors.ErrState, err)

	_, err = e.Deliver(context.Background(), signedTx(t, e, key, &writeMsg{Key: "c", Value: "1"}))
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestDeliverTx(t *testing.T) {
	e, _ := newTestExecutor(t, iavl.MockCommitStore())
	assert.Nil(t, e.InitChain(&Genesis{ChainID: chainID}, ChainInitializers()))
	key := weavetest.NewKey()

	raw, err := EncodeTx(signedTx(t, e, key, &writeMsg{Key: "a", Value: "1"}))
	assert.Nil(t, err)
	_, err = e.DeliverTx(at(0), raw)
	assert.Nil(t, err)
	assert.Equal(t, "1", stored(t, e, "a"))

	_, err = e.DeliverTx(at(0), []byte(`{"path": "test/unknown", "msg": {}}`))
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = e.DeliverTx(at(0), []byte(`not json`))
	assert.IsErr(t, errors.ErrInput, err)

	// Signature does not cover a modified message.
	tx := signedTx(t, e, key, &writeMsg{Key: "b", Value: "1"})
	tx.Msg = &writeMsg{Key: "b", Value: "2"}
	raw, err = EncodeTx(tx)
	assert.Nil(t, err)
	_, err = e.DeliverTx(at(0), raw)
	assert.IsErr(t, auth.ErrInvalidSignature, err)
}

func TestCommitPersists(t *testing.T) {
	dir, err := ioutil.TempDir("", "executor")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	kv, err := iavl.NewCommitStore(filepath.Join(dir, "data"), "state")
	assert.Nil(t, err)
	e, _ := newTestExecutor(t, kv)
	assert.Nil(t, e.InitChain(&Genesis{ChainID: chainID}, ChainInitializers()))
	_, err = e.Deliver(at(0), signedTx(t, e, weavetest.NewKey(), &writeMsg{Key: "a", Value: "1"}))
	assert.Nil(t, err)
	id, err := e.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	kv.Close()

	kv, err = iavl.NewCommitStore(filepath.Join(dir, "data"), "state")
	assert.Nil(t, err)
	defer kv.Close()
	e, _ = newTestExecutor(t, kv)
	assert.Equal(t, chainID, e.ChainID())
	assert.Equal(t, "1", stored(t, e, "a"))
}

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	assert.Nil(t, ioutil.WriteFile(path, []byte(`{"chain_id": "test-chain", "app_state": {"one": "1"}}`), 0600))
	gen, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, chainID, gen.ChainID)
	assert.Equal(t, `"1"`, string(gen.AppState["one"]))

	assert.Nil(t, ioutil.WriteFile(path, []byte(`{"chain_id": "x"}`), 0600))
	_, err = LoadGenesis(path)
	assert.IsErr(t, errors.ErrInput, err)

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.IsErr(t, errors.ErrInput, err)
}
