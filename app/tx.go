package app

import (
	"encoding/json"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/x/auth"
	"golang.org/x/crypto/ed25519"
)

// Tx is a single message signed by one or more ed25519 keys.
type Tx struct {
	Msg        accrual.Msg
	Signatures []*auth.StdSignature
}

var _ auth.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (accrual.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignBytes returns the content that is signed: the message path and its
// JSON representation, separated by a zero byte.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot serialize %T: %s", msg, err)
	}
	bz := make([]byte, 0, len(msg.Path())+1+len(raw))
	bz = append(bz, msg.Path()...)
	bz = append(bz, 0)
	return append(bz, raw...), nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*auth.StdSignature {
	return tx.Signatures
}

// Sign appends a signature of given key. Chain id and the sequence must match
// the state of the chain the transaction is submitted to.
func (tx *Tx) Sign(key ed25519.PrivateKey, chainID string, seq int64) error {
	sig, err := auth.SignTx(tx, key, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

type txJSON struct {
	Path       string               `json:"path"`
	Msg        json.RawMessage      `json:"msg"`
	Signatures []*auth.StdSignature `json:"signatures"`
}

// EncodeTx serializes a transaction into its JSON representation.
func EncodeTx(tx *Tx) ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot serialize %T: %s", msg, err)
	}
	return json.Marshal(txJSON{
		Path:       msg.Path(),
		Msg:        raw,
		Signatures: tx.Signatures,
	})
}

// TxDecoder can parse bytes into a transaction.
type TxDecoder func(raw []byte) (accrual.Tx, error)

// NewTxDecoder returns a decoder of transactions carrying any of the messages
// registered with the router.
func NewTxDecoder(r *Router) TxDecoder {
	return func(raw []byte) (accrual.Tx, error) {
		var enc txJSON
		if err := json.Unmarshal(raw, &enc); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode tx: %s", err)
		}
		msg, err := r.NewMsg(enc.Path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(enc.Msg, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %s message: %s", enc.Path, err)
		}
		return &Tx{Msg: msg, Signatures: enc.Signatures}, nil
	}
}
