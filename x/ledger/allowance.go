package ledger

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

// Allowance returns the amount the spender may transfer from the owner
// account.
func (l *Ledger) Allowance(db accrual.ReadOnlyKVStore, owner, spender accrual.Address) (coin.Amount, error) {
	var a Allowance
	switch err := allowanceBucket.One(db, allowanceKey(owner, spender), &a); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return coin.Amount{}, nil
	default:
		return coin.Amount{}, errors.Wrap(err, "load allowance")
	}
	if err := a.Validate(); err != nil {
		return coin.Amount{}, errors.Wrapf(errors.ErrModel, "allowance: %s", err)
	}
	return a.Value(), nil
}

// Approve sets the amount the spender may transfer from the owner account.
// The owner must be authenticated. Approving zero removes the allowance.
func (l *Ledger) Approve(ctx accrual.Context, db accrual.KVStore, owner, spender accrual.Address, amount coin.Amount) error {
	if !l.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}

	key := allowanceKey(owner, spender)
	if amount.IsZero() {
		if err := allowanceBucket.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "delete allowance")
		}
	} else if err := allowanceBucket.Put(db, key, &Allowance{Amount: amount.Bytes()}); err != nil {
		return errors.Wrap(err, "save allowance")
	}
	accrual.Emit(ctx, Approved{Owner: owner, Spender: spender, Amount: amount})
	return nil
}

// TransferFrom moves funds from an account on behalf of its owner. The
// spender must be authenticated and the transferred amount is deducted
// from its allowance. Apart from the authorization this works exactly like
// Transfer.
func (l *Ledger) TransferFrom(ctx accrual.Context, db accrual.KVStore, spender, from, to accrual.Address, q coin.Quantity) (coin.Amount, error) {
	if !l.auth.HasAddress(ctx, spender) {
		return coin.Amount{}, errors.Wrap(errors.ErrUnauthorized, "spender signature missing")
	}
	allowed, err := l.Allowance(db, from, spender)
	if err != nil {
		return coin.Amount{}, err
	}
	key := allowanceKey(from, spender)
	spend := func(amount coin.Amount) error {
		left, err := allowed.Sub(amount)
		if err != nil {
			return errors.Wrapf(errors.ErrInsufficientBalance, "allowance %s, requested %s", allowed, amount)
		}
		if left.IsZero() {
			return allowanceBucket.Delete(db, key)
		}
		return allowanceBucket.Put(db, key, &Allowance{Amount: left.Bytes()})
	}
	return l.transfer(ctx, db, from, to, q, spend)
}
