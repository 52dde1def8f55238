package utils

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

// Recovery turns a panic raised while delivering a transaction into an
// ErrPanic error. Only the faulty transaction fails and the executor keeps
// running.
type Recovery struct{}

var _ accrual.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx, next accrual.Handler) (res *accrual.DeliverResult, err error) {
	defer func() {
		if errors.ErrPanic.Is(err) {
			accrual.GetLogger(ctx).Error("transaction panicked", "err", err)
		}
	}()
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
