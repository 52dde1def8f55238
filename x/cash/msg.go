package cash

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

const maxMemoSize int = 128

var _ accrual.Msg = (*SendMsg)(nil)

// SendMsg moves the base asset between two wallets.
type SendMsg struct {
	Source      accrual.Address `json:"source"`
	Destination accrual.Address `json:"destination"`
	Amount      coin.Amount     `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}
