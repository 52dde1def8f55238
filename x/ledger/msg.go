package ledger

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

var _ accrual.Msg = (*IssueMsg)(nil)

// IssueMsg mints claims to an account at the proposed rate. It must be
// signed by the holder of the mint and burn role.
type IssueMsg struct {
	Account accrual.Address `json:"account"`
	Amount  coin.Amount     `json:"amount"`
	Rate    coin.Rate       `json:"rate"`
}

func (IssueMsg) Path() string {
	return "ledger/issue"
}

func (m *IssueMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

var _ accrual.Msg = (*RedeemMsg)(nil)

// RedeemMsg burns claims of an account. It must be signed by the holder of
// the mint and burn role.
type RedeemMsg struct {
	Account accrual.Address `json:"account"`
	Amount  coin.Quantity   `json:"amount"`
}

func (RedeemMsg) Path() string {
	return "ledger/redeem"
}

func (m *RedeemMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	return errs
}

var _ accrual.Msg = (*TransferMsg)(nil)

// TransferMsg moves claims between two accounts. It must be signed by the
// sender.
type TransferMsg struct {
	From   accrual.Address `json:"from"`
	To     accrual.Address `json:"to"`
	Amount coin.Quantity   `json:"amount"`
}

func (TransferMsg) Path() string {
	return "ledger/transfer"
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	return errs
}

var _ accrual.Msg = (*TransferFromMsg)(nil)

// TransferFromMsg moves claims on behalf of the sender. It must be signed
// by the spender.
type TransferFromMsg struct {
	Spender accrual.Address `json:"spender"`
	From    accrual.Address `json:"from"`
	To      accrual.Address `json:"to"`
	Amount  coin.Quantity   `json:"amount"`
}

func (TransferFromMsg) Path() string {
	return "ledger/transfer_from"
}

func (m *TransferFromMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	return errs
}

var _ accrual.Msg = (*ApproveMsg)(nil)

// ApproveMsg sets the allowance of a spender. It must be signed by the
// owner.
type ApproveMsg struct {
	Owner   accrual.Address `json:"owner"`
	Spender accrual.Address `json:"spender"`
	Amount  coin.Amount     `json:"amount"`
}

func (ApproveMsg) Path() string {
	return "ledger/approve"
}

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	return errs
}

var _ accrual.Msg = (*SetRateMsg)(nil)

// SetRateMsg lowers the global rate. It must be signed by the owner.
type SetRateMsg struct {
	Rate coin.Rate `json:"rate"`
}

func (SetRateMsg) Path() string {
	return "ledger/set_rate"
}

func (m *SetRateMsg) Validate() error {
	return nil
}
