package cash

import (
	"testing"

	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store"
	"github.com/iov-one/accrual/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCoins(t *testing.T) {
	kv := store.MemStore()
	addr := weavetest.NewAddress()
	addr2 := weavetest.NewAddress()

	controller := NewController()

	balance, err := controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, controller.IssueCoins(kv, addr, coin.NewAmount(500)))
	require.NoError(t, controller.IssueCoins(kv, addr, coin.NewAmount(250)))
	balance, err = controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.NewAmount(750), balance)

	balance, err = controller.Balance(kv, addr2)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	// overflow is rejected
	huge := coin.MustParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	err = controller.IssueCoins(kv, addr, huge)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
	balance, err = controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.NewAmount(750), balance)

	err = controller.IssueCoins(kv, nil, coin.NewAmount(1))
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)
}

func TestMoveCoins(t *testing.T) {
	src := weavetest.NewAddress()
	dest := weavetest.NewAddress()

	cases := map[string]struct {
		initial  uint64
		amount   uint64
		wantErr  *errors.Error
		wantSrc  uint64
		wantDest uint64
	}{
		"move part": {
			initial:  1000,
			amount:   300,
			wantSrc:  700,
			wantDest: 300,
		},
		"move everything": {
			initial:  1000,
			amount:   1000,
			wantSrc:  0,
			wantDest: 1000,
		},
		"too poor": {
			initial:  100,
			amount:   101,
			wantErr:  errors.ErrInsufficientBalance,
			wantSrc:  100,
			wantDest: 0,
		},
		"no wallet": {
			amount:  1,
			wantErr: errors.ErrInsufficientBalance,
		},
		"zero amount": {
			initial: 100,
			amount:  0,
			wantErr: errors.ErrAmount,
			wantSrc: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			controller := NewController()
			if tc.initial > 0 {
				require.NoError(t, controller.IssueCoins(kv, src, coin.NewAmount(tc.initial)))
			}

			err := controller.MoveCoins(kv, src, dest, coin.NewAmount(tc.amount))
			assert.True(t, tc.wantErr.Is(err), "%+v", err)

			got, err := controller.Balance(kv, src)
			require.NoError(t, err)
			assert.Equal(t, coin.NewAmount(tc.wantSrc), got)
			got, err = controller.Balance(kv, dest)
			require.NoError(t, err)
			assert.Equal(t, coin.NewAmount(tc.wantDest), got)
		})
	}
}
