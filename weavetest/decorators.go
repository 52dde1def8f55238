package weavetest

import "github.com/iov-one/accrual"

// Decorator counts its calls and either fails with DeliverErr or passes
// the transaction to the next handler.
type Decorator struct {
	calls      int
	DeliverErr error
}

var _ accrual.Decorator = (*Decorator)(nil)

func (d *Decorator) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx, next accrual.Handler) (*accrual.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount returns how many times Deliver was called.
func (d *Decorator) CallCount() int {
	return d.calls
}

// Decorate wraps h with d.
func Decorate(h accrual.Handler, d accrual.Decorator) accrual.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   accrual.Handler
	decorator accrual.Decorator
}

func (d decorated) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
