package auth

import (
	"context"
	"testing"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/store"
	"github.com/iov-one/accrual/weavetest"
	"github.com/iov-one/accrual/weavetest/assert"
	"golang.org/x/crypto/ed25519"
)

// signedTx is a minimal SignedTx implementation.
type signedTx struct {
	weavetest.Tx
	payload []byte
	sigs    []*StdSignature
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func sign(t testing.TB, tx *signedTx, key ed25519.PrivateKey, chainID string, seq int64) {
	t.Helper()
	sig, err := SignTx(tx, key, chainID, seq)
	assert.Nil(t, err)
	tx.sigs = append(tx.sigs, sig)
}

func TestVerifySignatures(t *testing.T) {
	const chainID = "test-chain"

	alice := weavetest.NewKey()
	bob := weavetest.NewKey()

	cases := map[string]struct {
		build     func(t testing.TB) *signedTx
		wantErr   *errors.Error
		wantAddrs []accrual.Address
	}{
		"single valid signature": {
			build: func(t testing.TB) *signedTx {
				tx := &signedTx{payload: []byte("deposit")}
				sign(t, tx, alice, chainID, 0)
				return tx
			},
			wantAddrs: []accrual.Address{weavetest.KeyCondition(alice).Address()},
		},
		"two signers": {
			build: func(t testing.TB) *signedTx {
				tx := &signedTx{payload: []byte("deposit")}
				sign(t, tx, alice, chainID, 0)
				sign(t, tx, bob, chainID, 0)
				return tx
			},
			wantAddrs: []accrual.Address{
				weavetest.KeyCondition(alice).Address(),
				weavetest.KeyCondition(bob).Address(),
			},
		},
		"no signature": {
			build: func(t testing.TB) *signedTx {
				return &signedTx{payload: []byte("deposit")}
			},
			wantErr: errors.ErrUnauthorized,
		},
		"signed for another chain": {
			build: func(t testing.TB) *signedTx {
				tx := &signedTx{payload: []byte("deposit")}
				sign(t, tx, alice, "other-chain", 0)
				return tx
			},
			wantErr: ErrInvalidSignature,
		},
		"payload modified after signing": {
			build: func(t testing.TB) *signedTx {
				tx := &signedTx{payload: []byte("deposit")}
				sign(t, tx, alice, chainID, 0)
				tx.payload = []byte("redeem")
				return tx
			},
			wantErr: ErrInvalidSignature,
		},
		"wrong sequence": {
			build: func(t testing.TB) *signedTx {
				tx := &signedTx{payload: []byte("deposit")}
				sign(t, tx, alice, chainID, 3)
				return tx
			},
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := accrual.WithChainID(context.Background(), chainID)

			ctx, err := VerifySignatures(ctx, db, tc.build(t))
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			auth := Authenticate{}
			for _, addr := range tc.wantAddrs {
				if !auth.HasAddress(ctx, addr) {
					t.Fatalf("address %s not authenticated", addr)
				}
			}
			assert.Equal(t, len(tc.wantAddrs), len(auth.GetConditions(ctx)))
		})
	}
}

func TestSignatureReplay(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	ctx := accrual.WithChainID(context.Background(), chainID)
	key := weavetest.NewKey()

	tx := &signedTx{payload: []byte("transfer")}
	sign(t, tx, key, chainID, 0)
	_, err := VerifySignatures(ctx, db, tx)
	assert.Nil(t, err)

	// The same signature cannot be used twice.
	_, err = VerifySignatures(ctx, db, tx)
	assert.IsErr(t, ErrInvalidSequence, err)

	seq, err := NextSequence(db, key.Public().(ed25519.PublicKey))
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	next := &signedTx{payload: []byte("transfer")}
	sign(t, next, key, chainID, seq)
	_, err = VerifySignatures(ctx, db, next)
	assert.Nil(t, err)
}

func TestDecorator(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	ctx := accrual.WithChainID(context.Background(), chainID)
	key := weavetest.NewKey()

	h := &weavetest.Handler{}
	handler := weavetest.Decorate(h, NewDecorator())

	_, err := handler.Deliver(ctx, db, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrType, err)
	assert.Equal(t, 0, h.CallCount())

	tx := &signedTx{payload: []byte("x")}
	sign(t, tx, key, chainID, 0)
	_, err = handler.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CallCount())
}

func TestSignatureValidate(t *testing.T) {
	sig := &StdSignature{Sequence: -1, PubKey: []byte("short"), Signature: nil}
	err := sig.Validate()
	assert.FieldError(t, err, "Sequence", ErrInvalidSequence)
	assert.FieldError(t, err, "PubKey", errors.ErrInput)
	assert.FieldError(t, err, "Signature", ErrInvalidSignature)
}

func TestFailedSignatureKeepsNonces(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	ctx := accrual.WithChainID(context.Background(), chainID)

	alice := weavetest.NewKey()
	bob := weavetest.NewKey()
	tx := &signedTx{payload: []byte("transfer")}
	sign(t, tx, alice, chainID, 0)
	sign(t, tx, bob, chainID, 1)

	_, err := VerifySignatures(ctx, db, tx)
	assert.IsErr(t, ErrInvalidSequence, err)

	seq, err := NextSequence(db, alice.Public().(ed25519.PublicKey))
	assert.Nil(t, err)
	assert.Equal(t, int64(0), seq)

	dup := &signedTx{payload: []byte("transfer")}
	sign(t, dup, alice, chainID, 0)
	sign(t, dup, alice, chainID, 0)
	_, err = VerifySignatures(ctx, db, dup)
	assert.IsErr(t, ErrInvalidSignature, err)
}
