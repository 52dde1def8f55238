package ledger

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
)

// Issued is emitted when claims are minted.
type Issued struct {
	Account accrual.Address
	Amount  coin.Amount
	// Rate is the locked rate of the account after the issue.
	Rate coin.Rate
}

func (Issued) EventName() string { return "ledger/issued" }

// Redeemed is emitted when claims are burned.
type Redeemed struct {
	Account accrual.Address
	Amount  coin.Amount
}

func (Redeemed) EventName() string { return "ledger/redeemed" }

// Transferred is emitted when claims change hands.
type Transferred struct {
	From   accrual.Address
	To     accrual.Address
	Amount coin.Amount
}

func (Transferred) EventName() string { return "ledger/transferred" }

// InterestSettled is emitted when accrued interest is folded into the
// principal of an account.
type InterestSettled struct {
	Account  accrual.Address
	Interest coin.Amount
}

func (InterestSettled) EventName() string { return "ledger/interest_settled" }

// RateChanged is emitted when the global rate is lowered.
type RateChanged struct {
	Previous coin.Rate
	Rate     coin.Rate
}

func (RateChanged) EventName() string { return "ledger/rate_changed" }

// Approved is emitted when an allowance is set.
type Approved struct {
	Owner   accrual.Address
	Spender accrual.Address
	Amount  coin.Amount
}

func (Approved) EventName() string { return "ledger/approved" }
