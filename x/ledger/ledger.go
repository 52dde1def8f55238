package ledger

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x"
	"github.com/iov-one/accrual/x/acl"
)

// Ledger exposes all ledger operations. Caller identity is read from the
// context using the authenticator, current time is the block time.
//
// Every operation computes the complete new state before writing to the
// store, so a failed call leaves the store untouched.
type Ledger struct {
	auth x.Authenticator
}

// New returns a ledger that authenticates callers using given
// authenticator.
func New(auth x.Authenticator) *Ledger {
	return &Ledger{auth: auth}
}

// settle folds the interest accrued since the last settlement into the
// principal. It returns the updated account and the realized interest.
// Settling twice at the same time realizes nothing the second time.
func settle(acc Account, now accrual.UnixTime) (Account, coin.Amount, error) {
	elapsed, err := now.Since(acc.LastSettled)
	if err != nil {
		return acc, coin.Amount{}, err
	}
	principal := acc.Balance()
	accrued, err := coin.Accrue(principal, acc.Rate(), elapsed)
	if err != nil {
		return acc, coin.Amount{}, err
	}
	interest, err := accrued.Sub(principal)
	if err != nil {
		return acc, coin.Amount{}, errors.Wrap(errors.ErrHuman, "accrued value below principal")
	}
	acc.SetBalance(accrued)
	acc.LastSettled = now
	return acc, interest, nil
}

// settleAccount loads and settles the account of given address. It does
// not persist the result.
func (l *Ledger) settleAccount(ctx accrual.Context, db accrual.ReadOnlyKVStore, addr accrual.Address) (*Account, coin.Amount, error) {
	now, err := accrual.BlockUnixTime(ctx)
	if err != nil {
		return nil, coin.Amount{}, errors.Wrap(err, "block time")
	}
	acc, err := loadAccount(db, addr)
	if err != nil {
		return nil, coin.Amount{}, err
	}
	settled, interest, err := settle(*acc, now)
	if err != nil {
		return nil, coin.Amount{}, errors.Wrapf(err, "settle %s", addr)
	}
	return &settled, interest, nil
}

// save persists the account. The realized interest must already be
// accounted for in the supply.
func (l *Ledger) save(ctx accrual.Context, db accrual.KVStore, addr accrual.Address, acc *Account, interest coin.Amount) error {
	if err := accountBucket.Put(db, addr, acc); err != nil {
		return errors.Wrap(err, "save account")
	}
	if interest.IsZero() {
		return nil
	}
	accrual.Emit(ctx, InterestSettled{Account: addr, Interest: interest})
	accrual.GetLogger(ctx).Debug("interest settled", "account", addr, "interest", interest)
	return nil
}

// Issue mints amount to the account. Only the holder of the mint and burn
// role can issue.
//
// The proposed rate must not exceed the global rate. It becomes the locked
// rate of the account only if the settled balance is zero.
func (l *Ledger) Issue(ctx accrual.Context, db accrual.KVStore, account accrual.Address, amount coin.Amount, rate coin.Rate) error {
	if err := acl.RequireRole(ctx, db, l.auth, acl.RoleMintBurn); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "cannot issue zero")
	}
	ceiling, err := GlobalRate(db)
	if err != nil {
		return err
	}
	if rate.Compare(ceiling) > 0 {
		return errors.Wrapf(errors.ErrRateIncrease, "rate %s above ceiling %s", rate, ceiling)
	}

	acc, interest, err := l.settleAccount(ctx, db, account)
	if err != nil {
		return err
	}
	if acc.Balance().IsZero() {
		acc.SetRate(rate)
	}
	total, err := acc.Balance().Add(amount)
	if err != nil {
		return errors.Wrap(err, "principal")
	}
	acc.SetBalance(total)
	supply, err := nextSupply(db, coin.Amount{}, interest, amount)
	if err != nil {
		return err
	}
	if err := l.save(ctx, db, account, acc, interest); err != nil {
		return err
	}
	if err := setSupply(db, supply); err != nil {
		return err
	}
	accrual.Emit(ctx, Issued{Account: account, Amount: amount, Rate: acc.Rate()})
	return nil
}

// Redeem burns the requested quantity from the account and returns the
// burned amount. Only the holder of the mint and burn role can redeem.
// coin.All resolves to the whole settled balance.
func (l *Ledger) Redeem(ctx accrual.Context, db accrual.KVStore, account accrual.Address, q coin.Quantity) (coin.Amount, error) {
	if err := acl.RequireRole(ctx, db, l.auth, acl.RoleMintBurn); err != nil {
		return coin.Amount{}, err
	}
	if err := q.Validate(); err != nil {
		return coin.Amount{}, err
	}

	acc, interest, err := l.settleAccount(ctx, db, account)
	if err != nil {
		return coin.Amount{}, err
	}
	balance := acc.Balance()
	amount := q.Resolve(balance)
	if amount.IsZero() {
		return coin.Amount{}, errors.Wrap(errors.ErrInsufficientBalance, "nothing to redeem")
	}
	left, err := balance.Sub(amount)
	if err != nil {
		return coin.Amount{}, errors.Wrapf(errors.ErrInsufficientBalance, "balance %s, requested %s", balance, amount)
	}
	acc.SetBalance(left)
	supply, err := nextSupply(db, amount, interest)
	if err != nil {
		return coin.Amount{}, err
	}
	if err := l.save(ctx, db, account, acc, interest); err != nil {
		return coin.Amount{}, err
	}
	if err := setSupply(db, supply); err != nil {
		return coin.Amount{}, err
	}
	accrual.Emit(ctx, Redeemed{Account: account, Amount: amount})
	return amount, nil
}

// Transfer moves the requested quantity from one account to another and
// returns the moved amount. The sender must be authenticated. coin.All
// resolves to the whole settled balance of the sender.
//
// A recipient with a zero settled balance inherits the locked rate of the
// sender.
func (l *Ledger) Transfer(ctx accrual.Context, db accrual.KVStore, from, to accrual.Address, q coin.Quantity) (coin.Amount, error) {
	if !l.auth.HasAddress(ctx, from) {
		return coin.Amount{}, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	return l.transfer(ctx, db, from, to, q, nil)
}

// transfer implements the transfer semantics. If not nil, authorize is
// called with the resolved amount once every check passed, right before the
// accounts are written.
func (l *Ledger) transfer(
	ctx accrual.Context,
	db accrual.KVStore,
	from, to accrual.Address,
	q coin.Quantity,
	authorize func(coin.Amount) error,
) (coin.Amount, error) {
	if err := q.Validate(); err != nil {
		return coin.Amount{}, err
	}
	if err := to.Validate(); err != nil {
		return coin.Amount{}, errors.Wrap(err, "recipient")
	}

	sender, senderInterest, err := l.settleAccount(ctx, db, from)
	if err != nil {
		return coin.Amount{}, err
	}
	balance := sender.Balance()
	amount := q.Resolve(balance)
	if amount.IsZero() {
		return coin.Amount{}, errors.Wrap(errors.ErrInsufficientBalance, "nothing to transfer")
	}
	left, err := balance.Sub(amount)
	if err != nil {
		return coin.Amount{}, errors.Wrapf(errors.ErrInsufficientBalance, "balance %s, requested %s", balance, amount)
	}

	if from.Equals(to) {
		supply, err := nextSupply(db, coin.Amount{}, senderInterest)
		if err != nil {
			return coin.Amount{}, err
		}
		if authorize != nil {
			if err := authorize(amount); err != nil {
				return coin.Amount{}, err
			}
		}
		if err := l.save(ctx, db, from, sender, senderInterest); err != nil {
			return coin.Amount{}, err
		}
		if err := setSupply(db, supply); err != nil {
			return coin.Amount{}, err
		}
		accrual.Emit(ctx, Transferred{From: from, To: to, Amount: amount})
		return amount, nil
	}

	recipient, recipientInterest, err := l.settleAccount(ctx, db, to)
	if err != nil {
		return coin.Amount{}, err
	}
	if recipient.Balance().IsZero() {
		recipient.SetRate(sender.Rate())
	}
	total, err := recipient.Balance().Add(amount)
	if err != nil {
		return coin.Amount{}, errors.Wrap(err, "recipient principal")
	}
	sender.SetBalance(left)
	recipient.SetBalance(total)
	supply, err := nextSupply(db, coin.Amount{}, senderInterest, recipientInterest)
	if err != nil {
		return coin.Amount{}, err
	}
	if authorize != nil {
		if err := authorize(amount); err != nil {
			return coin.Amount{}, err
		}
	}

	if err := l.save(ctx, db, from, sender, senderInterest); err != nil {
		return coin.Amount{}, err
	}
	if err := l.save(ctx, db, to, recipient, recipientInterest); err != nil {
		return coin.Amount{}, err
	}
	if err := setSupply(db, supply); err != nil {
		return coin.Amount{}, err
	}
	accrual.Emit(ctx, Transferred{From: from, To: to, Amount: amount})
	return amount, nil
}

// CurrentBalance returns the principal with all interest accrued until the
// current block time. It does not modify the state.
func (l *Ledger) CurrentBalance(ctx accrual.Context, db accrual.ReadOnlyKVStore, account accrual.Address) (coin.Amount, error) {
	acc, _, err := l.settleAccount(ctx, db, account)
	if err != nil {
		return coin.Amount{}, err
	}
	return acc.Balance(), nil
}

// PrincipalBalance returns the stored principal, without any interest that
// was not settled yet.
func PrincipalBalance(db accrual.ReadOnlyKVStore, account accrual.Address) (coin.Amount, error) {
	acc, err := loadAccount(db, account)
	if err != nil {
		return coin.Amount{}, err
	}
	return acc.Balance(), nil
}

// LockedRate returns the rate the account accrues interest at.
func LockedRate(db accrual.ReadOnlyKVStore, account accrual.Address) (coin.Rate, error) {
	acc, err := loadAccount(db, account)
	if err != nil {
		return coin.Rate{}, err
	}
	return acc.Rate(), nil
}

// GlobalRate returns the current rate ceiling.
func GlobalRate(db accrual.ReadOnlyKVStore) (coin.Rate, error) {
	var c Ceiling
	if err := loadSingleton(db, ceilingKey, &c); err != nil {
		return coin.Rate{}, errors.Wrap(err, "global rate")
	}
	r, _ := coin.RateFromBytes(c.Rate)
	return r, nil
}

// SetGlobalRate lowers the rate ceiling. Only the owner can change the rate
// and the new rate must not be greater than the current one.
func (l *Ledger) SetGlobalRate(ctx accrual.Context, db accrual.KVStore, rate coin.Rate) error {
	if err := acl.RequireOwner(ctx, db, l.auth); err != nil {
		return err
	}
	current, err := GlobalRate(db)
	if err != nil {
		return err
	}
	if rate.Compare(current) > 0 {
		return errors.Wrapf(errors.ErrRateIncrease, "rate %s above current %s", rate, current)
	}
	if err := saveSingleton(db, ceilingKey, &Ceiling{Rate: rate.Bytes()}); err != nil {
		return errors.Wrap(err, "save global rate")
	}
	accrual.Emit(ctx, RateChanged{Previous: current, Rate: rate})
	accrual.GetLogger(ctx).Info("global rate changed", "previous", current, "rate", rate)
	return nil
}

// Supply returns the sum of all principals.
func Supply(db accrual.ReadOnlyKVStore) (coin.Amount, error) {
	var t Totals
	switch err := loadSingleton(db, totalsKey, &t); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return coin.Amount{}, nil
	default:
		return coin.Amount{}, errors.Wrap(err, "supply")
	}
	a, _ := coin.AmountFromBytes(t.Principal)
	return a, nil
}

// nextSupply returns the supply after adding all minted amounts and
// removing the burned one. Nothing is written.
func nextSupply(db accrual.ReadOnlyKVStore, burned coin.Amount, minted ...coin.Amount) (coin.Amount, error) {
	total, err := Supply(db)
	if err != nil {
		return coin.Amount{}, err
	}
	for _, a := range minted {
		if total, err = total.Add(a); err != nil {
			return coin.Amount{}, errors.Wrap(err, "supply")
		}
	}
	if total, err = total.Sub(burned); err != nil {
		return coin.Amount{}, errors.Wrap(errors.ErrHuman, "supply below zero")
	}
	return total, nil
}

func setSupply(db accrual.KVStore, total coin.Amount) error {
	return saveSingleton(db, totalsKey, &Totals{Principal: total.Bytes()})
}
