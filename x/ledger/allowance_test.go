package ledger

import (
	"testing"

	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
)

func TestAllowance(t *testing.T) {
	f := newFixture(t, rate5)
	alice := weavetest.NewCondition()
	spender := weavetest.NewCondition()
	bob := weavetest.NewAddress()

	f.issue(t, 0, alice.Address(), 1000, coin.Rate{})

	allowance := func() coin.Amount {
		a, err := f.ledger.Allowance(f.db, alice.Address(), spender.Address())
		assert.Nil(t, err)
		return a
	}
	assert.Equal(t, true, allowance().IsZero())

	// Only the owner can approve.
	err := f.ledger.Approve(f.at(0, spender), f.db, alice.Address(), spender.Address(), coin.NewAmount(300))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.ledger.Approve(f.at(0, alice), f.db, alice.Address(), spender.Address(), coin.NewAmount(300)))
	assert.Equal(t, coin.NewAmount(300), allowance())

	// Spender must sign.
	_, err = f.ledger.TransferFrom(f.at(0, alice), f.db, spender.Address(), alice.Address(), bob, coin.Exactly(coin.NewAmount(100)))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	got, err := f.ledger.TransferFrom(f.at(0, spender), f.db, spender.Address(), alice.Address(), bob, coin.Exactly(coin.NewAmount(100)))
	assert.Nil(t, err)
	assert.Equal(t, coin.NewAmount(100), got)
	assert.Equal(t, coin.NewAmount(200), allowance())
	assert.Equal(t, coin.NewAmount(900), f.principal(t, alice.Address()))
	assert.Equal(t, coin.NewAmount(100), f.principal(t, bob))

	// All resolves to the balance of the sender, which exceeds the
	// allowance. Nothing changes.
	_, err = f.ledger.TransferFrom(f.at(0, spender), f.db, spender.Address(), alice.Address(), bob, coin.All)
	assert.IsErr(t, errors.ErrInsufficientBalance, err)
	assert.Equal(t, coin.NewAmount(200), allowance())
	assert.Equal(t, coin.NewAmount(900), f.principal(t, alice.Address()))

	got, err = f.ledger.TransferFrom(f.at(0, spender), f.db, spender.Address(), alice.Address(), bob, coin.Exactly(coin.NewAmount(200)))
	assert.Nil(t, err)
	assert.Equal(t, coin.NewAmount(200), got)
	assert.Equal(t, true, allowance().IsZero())

	// Approving zero of a missing allowance is fine.
	assert.Nil(t, f.ledger.Approve(f.at(0, alice), f.db, alice.Address(), spender.Address(), coin.NewAmount(0)))
	assert.Equal(t, true, allowance().IsZero())
}
