package custodian

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x"
	"github.com/iov-one/accrual/x/cash"
	"github.com/iov-one/accrual/x/ledger"
)

// Custodian holds the base asset of the vault.
type Custodian struct {
	auth   x.Authenticator
	ledger *ledger.Ledger
	cash   cash.Controller
}

// New returns a custodian that collects and pays out the base asset using
// given cash controller. The ledger must authenticate the custodian using
// Authenticate.
func New(auth x.Authenticator, l *ledger.Ledger, cashctrl cash.Controller) *Custodian {
	return &Custodian{
		auth:   auth,
		ledger: l,
		cash:   cashctrl,
	}
}

// Address returns the address of the wallet holding the base asset. It is
// also the address that must be granted the mint and burn role.
func (c *Custodian) Address() accrual.Address {
	return vaultCondition.Address()
}

// Deposit collects amount of the base asset from the payer and issues the
// same amount of claims at the current global rate. The payer must be
// authenticated. Collection and issue are applied together or not at all.
func (c *Custodian) Deposit(ctx accrual.Context, db accrual.CacheableKVStore, payer accrual.Address, amount coin.Amount) (*Deposit, error) {
	if !c.auth.HasAddress(ctx, payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if amount.IsZero() {
		return nil, errors.Wrap(errors.ErrAmount, "cannot deposit zero")
	}
	now, err := accrual.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	var deposit Deposit
	err = atomic(ctx, db, func(ctx accrual.Context, db accrual.KVStore) error {
		if err := c.cash.MoveCoins(db, payer, c.Address(), amount); err != nil {
			return errors.Wrap(err, "collect deposit")
		}
		rate, err := ledger.GlobalRate(db)
		if err != nil {
			return err
		}
		if err := c.ledger.Issue(withCustodian(ctx), db, payer, amount, rate); err != nil {
			return errors.Wrap(err, "issue")
		}
		id, err := nextID(db)
		if err != nil {
			return err
		}
		deposit = Deposit{
			ID:     id[:],
			Payer:  payer,
			Amount: amount.Bytes(),
			Rate:   rate.Bytes(),
			Time:   now,
		}
		if err := depositBucket.Put(db, deposit.ID, &deposit); err != nil {
			return errors.Wrap(err, "save deposit")
		}
		accrual.Emit(ctx, Deposited{ID: id.String(), Payer: payer, Amount: amount, Rate: rate})
		return nil
	})
	if err != nil {
		return nil, err
	}
	accrual.GetLogger(ctx).Info("deposit", "id", deposit.UUID(), "payer", payer, "amount", amount)
	return &deposit, nil
}

// Redeem burns the requested quantity of the caller claims and pays out the
// same amount of the base asset. coin.All resolves to the current balance of
// the caller. The caller must be authenticated.
//
// If the payout fails, the burn is discarded and ErrPayout is returned.
func (c *Custodian) Redeem(ctx accrual.Context, db accrual.CacheableKVStore, caller accrual.Address, q coin.Quantity) (*Payout, error) {
	if !c.auth.HasAddress(ctx, caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller signature missing")
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	now, err := accrual.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	if q.IsAll() {
		balance, err := c.ledger.CurrentBalance(ctx, db, caller)
		if err != nil {
			return nil, errors.Wrap(err, "current balance")
		}
		if balance.IsZero() {
			return nil, errors.Wrap(errors.ErrInsufficientBalance, "nothing to redeem")
		}
		q = coin.Exactly(balance)
	}

	var payout Payout
	err = atomic(ctx, db, func(ctx accrual.Context, db accrual.KVStore) error {
		amount, err := c.ledger.Redeem(withCustodian(ctx), db, caller, q)
		if err != nil {
			return errors.Wrap(err, "redeem")
		}
		if err := c.cash.MoveCoins(db, c.Address(), caller, amount); err != nil {
			accrual.GetLogger(ctx).Error("payout failed", "account", caller, "amount", amount, "err", err)
			return errors.Wrapf(errors.ErrPayout, "release %s: %s", amount, err)
		}
		id, err := nextID(db)
		if err != nil {
			return err
		}
		payout = Payout{
			ID:      id[:],
			Account: caller,
			Amount:  amount.Bytes(),
			Time:    now,
		}
		if err := payoutBucket.Put(db, payout.ID, &payout); err != nil {
			return errors.Wrap(err, "save payout")
		}
		accrual.Emit(ctx, PaidOut{ID: id.String(), Account: caller, Amount: amount})
		return nil
	})
	if err != nil {
		return nil, err
	}
	accrual.GetLogger(ctx).Info("payout", "id", payout.UUID(), "account", caller)
	return &payout, nil
}

// atomic runs fn on a cache wrap of the store. The cache is written and the
// collected events are published only if fn succeeds.
func atomic(ctx accrual.Context, db accrual.CacheableKVStore, fn func(accrual.Context, accrual.KVStore) error) error {
	var events accrual.EventBuffer
	cache := db.CacheWrap()
	defer cache.Discard()

	if err := fn(accrual.WithEventSink(ctx, &events), cache); err != nil {
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write")
	}
	for _, e := range events.Events() {
		accrual.Emit(ctx, e)
	}
	return nil
}

// Fund moves the base asset into the custodian wallet without issuing any
// claims. It covers the interest paid out on redemption. The sender must be
// authenticated.
func (c *Custodian) Fund(ctx accrual.Context, db accrual.KVStore, from accrual.Address, amount coin.Amount) error {
	if !c.auth.HasAddress(ctx, from) {
		return errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	if err := c.cash.MoveCoins(db, from, c.Address(), amount); err != nil {
		return errors.Wrap(err, "fund")
	}
	accrual.Emit(ctx, Funded{From: from, Amount: amount})
	return nil
}

// Reserve returns the base asset held by the custodian.
func (c *Custodian) Reserve(db accrual.ReadOnlyKVStore) (coin.Amount, error) {
	return c.cash.Balance(db, c.Address())
}

// Deposited is emitted when the base asset is exchanged for claims.
type Deposited struct {
	ID     string
	Payer  accrual.Address
	Amount coin.Amount
	Rate   coin.Rate
}

func (Deposited) EventName() string { return "custodian/deposited" }

// PaidOut is emitted when claims are exchanged for the base asset.
type PaidOut struct {
	ID      string
	Account accrual.Address
	Amount  coin.Amount
}

func (PaidOut) EventName() string { return "custodian/paid_out" }

// Funded is emitted when the vault is topped up.
type Funded struct {
	From   accrual.Address
	Amount coin.Amount
}

func (Funded) EventName() string { return "custodian/funded" }
