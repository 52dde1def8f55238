package auth

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"golang.org/x/crypto/ed25519"
)

var (
	// ErrInvalidSequence is returned when a signature nonce does not match
	// the expected value.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")

	// ErrInvalidSignature is returned when a signature cannot be verified.
	ErrInvalidSignature = errors.Register(121, "invalid signature")
)

// StdSignature is a single ed25519 signature of a transaction.
type StdSignature struct {
	PubKey    []byte `json:"pub_key"`
	Signature []byte `json:"signature"`
	Sequence  int64  `json:"sequence"`
}

// SignedTx represents a transaction that contains signatures,
// which can be verified by the auth.Decorator
type SignedTx interface {
	accrual.Tx

	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	var errs error
	if s.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", errors.Wrap(ErrInvalidSequence, "negative"))
	}
	if len(s.PubKey) != ed25519.PublicKeySize {
		errs = errors.AppendField(errs, "PubKey", errors.ErrInput)
	}
	if len(s.Signature) != ed25519.SignatureSize {
		errs = errors.AppendField(errs, "Signature", ErrInvalidSignature)
	}
	return errs
}

// Condition returns the condition fulfilled by this signature.
func (s *StdSignature) Condition() accrual.Condition {
	return PubKeyCondition(s.PubKey)
}

// BuildSignBytes combines all info on the actual tx before signing. Chain id
// and the nonce are part of the signed content, so that a signature cannot be
// replayed on another chain or twice on the same chain.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) []byte {
	var buf bytes.Buffer
	buf.Write(signBytes)
	buf.WriteString(chainID)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	buf.Write(nonce[:])
	return buf.Bytes()
}

// SignTx creates a signature of given transaction.
func SignTx(tx SignedTx, key ed25519.PrivateKey, chainID string, seq int64) (*StdSignature, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	return &StdSignature{
		PubKey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, BuildSignBytes(bz, chainID, seq)),
		Sequence:  seq,
	}, nil
}
