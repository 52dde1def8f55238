package utils

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

// Savepoint will isolate all data inside of the call, and commit or rollback
// to savepoint based on if error. Events emitted inside of the call are
// passed up only on success.
type Savepoint struct{}

var _ accrual.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver sets a checkpoint
func (s Savepoint) Deliver(ctx accrual.Context, store accrual.KVStore, tx accrual.Tx, next accrual.Handler) (*accrual.DeliverResult, error) {
	cstore, ok := store.(accrual.CacheableKVStore)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "%T store is not cacheable", store)
	}

	var events accrual.EventBuffer
	cache := cstore.CacheWrap()
	res, err := next.Deliver(accrual.WithEventSink(ctx, &events), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	for _, e := range events.Events() {
		accrual.Emit(ctx, e)
	}
	return res, nil
}
