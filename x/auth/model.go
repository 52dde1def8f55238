package auth

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/orm"
	"golang.org/x/crypto/ed25519"
)

// UserData keeps the public key and the next expected nonce of a signer.
//
// Models of this package follow the schema declared in codec.proto.
type UserData struct {
	PubKey   []byte `protobuf:"bytes,1,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

// Validate ensures the stored data is consistent.
func (m *UserData) Validate() error {
	if len(m.PubKey) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrModel, "invalid public key")
	}
	if m.Sequence < 0 {
		return errors.Wrap(errors.ErrModel, "negative sequence")
	}
	return nil
}

// CheckAndIncrementSequence ensures given sequence is the next expected one
// and moves the counter forward.
func (m *UserData) CheckAndIncrementSequence(seq int64) error {
	if m.Sequence != seq {
		return errors.Wrapf(ErrInvalidSequence, "expected %d, got %d", m.Sequence, seq)
	}
	m.Sequence++
	return nil
}

// PubKeyCondition returns the condition fulfilled by a valid signature of
// given ed25519 public key.
func PubKeyCondition(pub ed25519.PublicKey) accrual.Condition {
	return accrual.NewCondition("sigs", "ed25519", pub)
}

var userBucket = orm.NewModelBucket("sigs")

// GetUser loads the data of a signer with given address. A new, empty
// instance is returned if the signer is not known yet.
func GetUser(db accrual.ReadOnlyKVStore, addr accrual.Address) (*UserData, error) {
	var user UserData
	switch err := userBucket.One(db, addr, &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{}, nil
	default:
		return nil, err
	}
}

// SaveUser stores the data of a signer.
func SaveUser(db accrual.KVStore, addr accrual.Address, user *UserData) error {
	return userBucket.Put(db, addr, user)
}
