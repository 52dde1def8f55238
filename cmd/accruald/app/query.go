package app

import (
	"time"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/x/auth"
	"github.com/iov-one/accrual/x/bridge"
	"github.com/iov-one/accrual/x/ledger"
	"golang.org/x/crypto/ed25519"
)

// Balance returns the claim balance of an account, including the interest
// accrued until given time.
func (a *Application) Balance(at time.Time, addr accrual.Address) (coin.Amount, error) {
	var balance coin.Amount
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		balance, err = a.Extensions.Ledger.CurrentBalance(accrual.WithBlockTime(ctx, at), db, addr)
		return err
	})
	return balance, err
}

// Cash returns the base asset balance of a wallet.
func (a *Application) Cash(addr accrual.Address) (coin.Amount, error) {
	var balance coin.Amount
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		balance, err = a.Extensions.Cash.Balance(db, addr)
		return err
	})
	return balance, err
}

// Rate returns the current global rate.
func (a *Application) Rate() (coin.Rate, error) {
	var rate coin.Rate
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		rate, err = ledger.GlobalRate(db)
		return err
	})
	return rate, err
}

// Supply returns the total principal of all accounts.
func (a *Application) Supply() (coin.Amount, error) {
	var supply coin.Amount
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		supply, err = ledger.Supply(db)
		return err
	})
	return supply, err
}

// Reserve returns the amount of the base asset held by the custodian.
func (a *Application) Reserve() (coin.Amount, error) {
	var reserve coin.Amount
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		reserve, err = a.Extensions.Custodian.Reserve(db)
		return err
	})
	return reserve, err
}

// Chains returns the bridge chain permission list.
func (a *Application) Chains() ([]*bridge.ChainPermission, error) {
	var chains []*bridge.ChainPermission
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		chains, err = bridge.Chains(db)
		return err
	})
	return chains, err
}

// NextSequence returns the nonce the next signature of given key must use.
func (a *Application) NextSequence(pub ed25519.PublicKey) (int64, error) {
	var seq int64
	err := a.View(func(ctx accrual.Context, db accrual.ReadOnlyKVStore) error {
		var err error
		seq, err = auth.NextSequence(db, pub)
		return err
	})
	return seq, err
}
