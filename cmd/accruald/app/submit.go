package app

import (
	"context"
	"time"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/app"
	"github.com/iov-one/accrual/errors"
	"golang.org/x/crypto/ed25519"
)

// Submit signs the message with given key, executes it in a block of given
// time and commits the result.
//
// A message that fails still consumes the signer nonce, which is committed
// as well.
func (a *Application) Submit(at time.Time, key ed25519.PrivateKey, msg accrual.Msg) (*accrual.DeliverResult, error) {
	chainID := a.ChainID()
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	seq, err := a.NextSequence(key.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	tx := &app.Tx{Msg: msg}
	if err := tx.Sign(key, chainID, seq); err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	raw, err := app.EncodeTx(tx)
	if err != nil {
		return nil, err
	}

	ctx := accrual.WithBlockTime(context.Background(), at)
	res, deliverErr := a.DeliverTx(ctx, raw)
	if _, err := a.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	if deliverErr != nil {
		return nil, deliverErr
	}
	return res, nil
}

// InitChain loads the genesis file and initializes all extensions, then
// commits the initial state.
func (a *Application) InitChain(genesisPath string) error {
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	if err := a.Executor.InitChain(gen, Initializer()); err != nil {
		return err
	}
	_, err = a.Commit()
	return err
}
