package auth

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"golang.org/x/crypto/ed25519"
)

// VerifySignatures checks all the signatures on the tx, which must have
// at least one.
//
// returns error on bad signature and
// returns a modified context with auth info on success
func VerifySignatures(ctx accrual.Context, db accrual.KVStore, tx SignedTx) (accrual.Context, error) {
	sigs := tx.GetSignatures()
	if len(sigs) == 0 {
		return ctx, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}

	bz, err := tx.GetSignBytes()
	if err != nil {
		return ctx, errors.Wrap(err, "sign bytes")
	}
	chainID := accrual.GetChainID(ctx)

	// All signatures are verified before any nonce is stored.
	signers := make([]accrual.Condition, 0, len(sigs))
	users := make([]*UserData, 0, len(sigs))
	for _, sig := range sigs {
		cond, user, err := verifySignature(db, bz, chainID, sig)
		if err != nil {
			return ctx, err
		}
		if hasSigner(signers, cond) {
			return ctx, errors.Wrapf(ErrInvalidSignature, "duplicated signer %s", cond.Address())
		}
		signers = append(signers, cond)
		users = append(users, user)
	}
	for i, cond := range signers {
		if err := SaveUser(db, cond.Address(), users[i]); err != nil {
			return ctx, errors.Wrap(err, "save user")
		}
	}
	return withSigners(ctx, signers), nil
}

func hasSigner(signers []accrual.Condition, c accrual.Condition) bool {
	for _, s := range signers {
		if s.Equals(c) {
			return true
		}
	}
	return false
}

func verifySignature(db accrual.KVStore, signBytes []byte, chainID string, sig *StdSignature) (accrual.Condition, *UserData, error) {
	if err := sig.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "signature")
	}

	cond := sig.Condition()
	addr := cond.Address()
	user, err := GetUser(db, addr)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load user")
	}
	if user.PubKey == nil {
		user.PubKey = sig.PubKey
	}

	toSign := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if !ed25519.Verify(ed25519.PublicKey(user.PubKey), toSign, sig.Signature) {
		return nil, nil, errors.Wrapf(ErrInvalidSignature, "signer %s", addr)
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, nil, err
	}
	return cond, user, nil
}

// NextSequence returns the nonce that the next signature of given signer
// must use.
func NextSequence(db accrual.ReadOnlyKVStore, pub ed25519.PublicKey) (int64, error) {
	user, err := GetUser(db, PubKeyCondition(pub).Address())
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
