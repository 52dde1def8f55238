package app

import (
	"reflect"

	"github.com/iov-one/accrual"
)

// Decorators is an ordered list of decorators that still lacks the final
// handler. The first decorator is the outermost one.
type Decorators struct {
	chain []accrual.Decorator
}

// ChainDecorators builds a decorator list. Nil entries are skipped, so an
// optional decorator can be passed as nil.
//
// The accruald pipeline is built as
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		utils.NewActionTagger(),
//		auth.NewDecorator(),
//		utils.NewSavepoint(),
//	).WithHandler(router)
func ChainDecorators(chain ...accrual.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new list with given decorators appended. The receiver
// is not modified.
func (d Decorators) Chain(chain ...accrual.Decorator) Decorators {
	next := make([]accrual.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dc := range chain {
		if !isNilDecorator(dc) {
			next = append(next, dc)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d accrual.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns a handler running every decorator in order before
// reaching h.
func (d Decorators) WithHandler(h accrual.Handler) accrual.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{decorator: d.chain[i], next: h}
	}
	return h
}

// link binds a decorator to the handler it wraps.
type link struct {
	decorator accrual.Decorator
	next      accrual.Handler
}

var _ accrual.Handler = link{}

func (l link) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	return l.decorator.Deliver(ctx, db, tx, l.next)
}
