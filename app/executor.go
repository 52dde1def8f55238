package app

import (
	"context"
	"sync"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Executor applies transactions to the state, one at a time. Every
// transaction runs on the deliver store of the commit store, and is passed
// through the handler stack. Changes are persisted on Commit.
type Executor struct {
	mu      sync.Mutex
	store   *CommitStore
	handler accrual.Handler
	decoder TxDecoder
	logger  log.Logger
	chainID string
}

// NewExecutor returns an executor operating on given store. The handler is
// usually a decorator chain ending with a router.
func NewExecutor(store *CommitStore, handler accrual.Handler, decoder TxDecoder, logger log.Logger) (*Executor, error) {
	chainID, err := loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	return &Executor{
		store:   store,
		handler: handler,
		decoder: decoder,
		logger:  logger,
		chainID: chainID,
	}, nil
}

// ChainID returns the chain id set by InitChain, or an empty string if the
// chain was not initialized yet.
func (e *Executor) ChainID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chainID
}

// InitChain stores the chain id and passes the application state to the
// initializer. The state is written only if all initializers succeed.
func (e *Executor) InitChain(gen *Genesis, init accrual.Initializer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", e.chainID)
	}

	cache := e.store.DeliverStore().CacheWrap()
	defer cache.Discard()

	if err := saveChainID(cache, gen.ChainID); err != nil {
		return err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		return errors.Wrap(err, "initialize from genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis state")
	}
	e.chainID = gen.ChainID
	e.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Deliver executes a single transaction. The context must carry the block
// time, which must not be before the time of any previous transaction.
//
// Events emitted by a successful transaction are returned as part of the
// result.
func (e *Executor) Deliver(ctx accrual.Context, tx accrual.Tx) (*accrual.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	now, err := accrual.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	db := e.store.DeliverStore()
	last, err := loadBlockTime(db)
	if err != nil {
		return nil, err
	}
	if _, err := now.Since(last); err != nil {
		return nil, err
	}

	var events accrual.EventBuffer
	ctx = accrual.WithChainID(ctx, e.chainID)
	ctx = accrual.WithLogger(ctx, e.logger.With("path", accrual.GetPath(tx)))
	ctx = accrual.WithEventSink(ctx, &events)

	res, err := e.handler.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := saveBlockTime(db, now); err != nil {
		return nil, errors.Wrap(err, "save block time")
	}
	if res == nil {
		res = &accrual.DeliverResult{}
	}
	res.Events = events.Events()
	return res, nil
}

// DeliverTx decodes and executes a single transaction.
func (e *Executor) DeliverTx(ctx accrual.Context, raw []byte) (*accrual.DeliverResult, error) {
	tx, err := e.decodeTx(raw)
	if err != nil {
		return nil, err
	}
	return e.Deliver(ctx, tx)
}

// decodeTx calls the decoder, and capture any panics
func (e *Executor) decodeTx(raw []byte) (tx accrual.Tx, err error) {
	defer errors.Recover(&err)
	return e.decoder(raw)
}

// Commit persists all delivered transactions.
func (e *Executor) Commit() (accrual.CommitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.store.Commit()
	if err != nil {
		return id, err
	}
	e.logger.Info("commit", "version", id.Version)
	return id, nil
}

// View calls fn with a read only view of the current state.
func (e *Executor) View(fn func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := accrual.WithLogger(context.Background(), e.logger)
	if e.chainID != "" {
		ctx = accrual.WithChainID(ctx, e.chainID)
	}
	return fn(ctx, e.store.DeliverStore())
}
