package custodian

import (
	"testing"

	"github.com/google/uuid"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
)

type testRouter map[string]accrual.Handler

func (r testRouter) Handle(m accrual.Msg, h accrual.Handler) {
	r[m.Path()] = h
}

func TestHandlers(t *testing.T) {
	f := newFixture(t, true)
	alice := weavetest.NewCondition()
	assert.Nil(t, f.cash.IssueCoins(f.db, alice.Address(), coin.NewAmount(1000)))

	r := make(testRouter)
	RegisterRoutes(r, f.custodian)

	deliver := func(msg accrual.Msg) (*accrual.DeliverResult, error) {
		h, ok := r[msg.Path()]
		if !ok {
			t.Fatalf("no handler for %q", msg.Path())
		}
		return h.Deliver(f.at(0, alice), f.db, &weavetest.Tx{Msg: msg})
	}

	res, err := deliver(&DepositMsg{Payer: alice.Address(), Amount: coin.NewAmount(600)})
	assert.Nil(t, err)
	id, err := uuid.ParseBytes(res.Data)
	assert.Nil(t, err)
	_, err = LoadDeposit(f.db, id)
	assert.Nil(t, err)

	res, err = deliver(&FundMsg{From: alice.Address(), Amount: coin.NewAmount(100)})
	assert.Nil(t, err)

	res, err = deliver(&RedeemMsg{Account: alice.Address(), Amount: coin.Exactly(coin.NewAmount(250))})
	assert.Nil(t, err)
	assert.Equal(t, "paid out 250", res.Log)

	assert.Equal(t, coin.NewAmount(550), f.cashOf(t, alice.Address()))
	assert.Equal(t, coin.NewAmount(450), f.cashOf(t, f.custodian.Address()))
	assert.Equal(t, coin.NewAmount(350), f.balance(t, 0, alice.Address()))

	_, err = deliver(&RedeemMsg{Account: alice.Address()})
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg      accrual.Msg
		wantErrs map[string]*errors.Error
	}{
		"empty deposit": {
			msg: &DepositMsg{},
			wantErrs: map[string]*errors.Error{
				"Payer":  errors.ErrEmpty,
				"Amount": errors.ErrAmount,
			},
		},
		"redeem all": {
			msg: &RedeemMsg{Account: weavetest.NewAddress(), Amount: coin.All},
			wantErrs: map[string]*errors.Error{
				"Account": nil,
				"Amount":  nil,
			},
		},
		"fund": {
			msg: &FundMsg{From: weavetest.NewAddress(), Amount: coin.NewAmount(1)},
			wantErrs: map[string]*errors.Error{
				"From":   nil,
				"Amount": nil,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}
