package weavetest

import (
	"github.com/iov-one/accrual"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a random ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyCondition returns the condition fulfilled by a signature of given key.
func KeyCondition(key ed25519.PrivateKey) accrual.Condition {
	return accrual.NewCondition("sigs", "ed25519", key.Public().(ed25519.PublicKey))
}

// NewCondition returns a condition of a new, random signer.
func NewCondition() accrual.Condition {
	return KeyCondition(NewKey())
}
