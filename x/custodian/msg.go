package custodian

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

var _ accrual.Msg = (*DepositMsg)(nil)

// DepositMsg exchanges the base asset of the payer for claims.
type DepositMsg struct {
	Payer  accrual.Address `json:"payer"`
	Amount coin.Amount     `json:"amount"`
}

func (DepositMsg) Path() string {
	return "custodian/deposit"
}

func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

var _ accrual.Msg = (*RedeemMsg)(nil)

// RedeemMsg exchanges claims of the account for the base asset.
type RedeemMsg struct {
	Account accrual.Address `json:"account"`
	Amount  coin.Quantity   `json:"amount"`
}

func (RedeemMsg) Path() string {
	return "custodian/redeem"
}

func (m *RedeemMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	return errs
}

var _ accrual.Msg = (*FundMsg)(nil)

// FundMsg tops up the custodian wallet.
type FundMsg struct {
	From   accrual.Address `json:"from"`
	Amount coin.Amount     `json:"amount"`
}

func (FundMsg) Path() string {
	return "custodian/fund"
}

func (m *FundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "From", m.From.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}
