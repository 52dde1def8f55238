package bridge

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x"
)

// RegisterRoutes registers handlers for all bridge messages.
func RegisterRoutes(r accrual.Registry, auth x.Authenticator) {
	r.Handle(&ApplyChainsMsg{}, &applyChainsHandler{auth: auth})
}

type applyChainsHandler struct {
	auth x.Authenticator
}

func (h *applyChainsHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg ApplyChainsMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := Apply(ctx, db, h.auth, msg.Add, msg.Remove); err != nil {
		return nil, err
	}
	return &accrual.DeliverResult{}, nil
}
