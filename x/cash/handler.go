package cash

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r accrual.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrual.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Deliver moves the coins from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx accrual.Context, db accrual.KVStore, tx accrual.Tx) (*accrual.DeliverResult, error) {
	var msg SendMsg
	if err := accrual.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	accrual.Emit(ctx, Sent{From: msg.Source, To: msg.Destination, Amount: msg.Amount})
	return &accrual.DeliverResult{}, nil
}

// Sent is emitted when the base asset changes hands.
type Sent struct {
	From, To accrual.Address
	Amount   coin.Amount
}

func (Sent) EventName() string { return "cash/sent" }
