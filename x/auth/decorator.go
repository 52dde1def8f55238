package auth

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

// Decorator verifies signatures before calling down the stack. This is just a
// binding from the functionality into the application stack, not much
// business logic here.
type Decorator struct{}

var _ accrual.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx, next accrual.Handler) (*accrual.DeliverResult, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a signed transaction", tx)
	}
	ctx, err := VerifySignatures(ctx, db, stx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}
