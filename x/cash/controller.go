package cash

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

// Controller is the functionality needed by other extensions to move the
// base asset.
type Controller interface {
	Balance(db accrual.ReadOnlyKVStore, addr accrual.Address) (coin.Amount, error)
	MoveCoins(db accrual.KVStore, src, dest accrual.Address, amount coin.Amount) error
	IssueCoins(db accrual.KVStore, dest accrual.Address, amount coin.Amount) error
}

// BaseController is the default implementation of the Controller.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns a controller that stores the wallets in the "cash"
// bucket.
func NewController() BaseController {
	return BaseController{}
}

// Balance returns the base asset held by given address.
func (BaseController) Balance(db accrual.ReadOnlyKVStore, addr accrual.Address) (coin.Amount, error) {
	w, err := loadWallet(db, addr)
	if err != nil {
		return coin.Amount{}, err
	}
	return w.Amount(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (BaseController) MoveCoins(db accrual.KVStore, src, dest accrual.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := loadWallet(db, src)
	if err != nil {
		return err
	}
	left, err := sender.Amount().Sub(amount)
	if err != nil {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%s has %s, needs %s", src, sender.Amount(), amount)
	}
	sender.SetAmount(left)
	if err := walletBucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	recipient, err := loadWallet(db, dest)
	if err != nil {
		return err
	}
	total, err := recipient.Amount().Add(amount)
	if err != nil {
		return errors.Wrap(err, "recipient balance")
	}
	recipient.SetAmount(total)
	if err := walletBucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// IssueCoins adds the given amount to the destination address. It fails if
// the balance would overflow.
func (BaseController) IssueCoins(db accrual.KVStore, dest accrual.Address, amount coin.Amount) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := loadWallet(db, dest)
	if err != nil {
		return err
	}
	total, err := w.Amount().Add(amount)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	w.SetAmount(total)
	return walletBucket.Put(db, dest, w)
}

// loadWallet returns the wallet of given address or an empty wallet if it
// does not exist yet.
func loadWallet(db accrual.ReadOnlyKVStore, addr accrual.Address) (*Wallet, error) {
	var w Wallet
	switch err := walletBucket.One(db, addr, &w); {
	case err == nil:
		if err := w.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}
