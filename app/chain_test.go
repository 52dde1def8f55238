package app

import (
	"context"
	"testing"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
	"github.com/iov-one/accrual/x/utils"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewRecovery(),
		nil,
		c2,
	).WithHandler(h)

	_, err := stack.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 1, c1.CallCount())
	assert.Equal(t, 1, c2.CallCount())
	assert.Equal(t, 1, h.CallCount())

	// A failing decorator stops the call before the handler.
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 1, h.CallCount())

	// Panics are converted into errors by the recovery decorator.
	stack = ChainDecorators(c1, utils.NewRecovery()).WithHandler(weavetest.PanicHandler{Msg: "boom"})
	_, err = stack.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Equal(t, 3, c1.CallCount())
}

func TestChainIsNotShared(t *testing.T) {
	base := ChainDecorators(&weavetest.Decorator{})
	a := &weavetest.Decorator{}
	b := &weavetest.Decorator{}

	withA := base.Chain(a)
	withB := base.Chain(b)

	_, err := withA.WithHandler(&weavetest.Handler{}).Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.Nil(t, err)
	_, err = withB.WithHandler(&weavetest.Handler{}).Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 1, a.CallCount())
	assert.Equal(t, 1, b.CallCount())
}

var _ accrual.Handler = link{}
