package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the base asset balance of a single address. An address
// without a wallet has a zero balance.
//
// Models of this package follow the schema declared in codec.proto.
type Wallet struct {
	// Balance is the big endian representation of a coin.Amount. Zero is
	// represented by an empty value.
	Balance []byte `protobuf:"bytes,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

var _ orm.Model = (*Wallet)(nil)

// Validate makes sure the stored balance can be decoded.
func (m *Wallet) Validate() error {
	if _, err := coin.AmountFromBytes(m.Balance); err != nil {
		return errors.Field("Balance", err, "invalid balance")
	}
	return nil
}

// Amount returns the balance of the wallet.
func (m *Wallet) Amount() coin.Amount {
	a, err := coin.AmountFromBytes(m.Balance)
	if err != nil {
		// Wallets are validated when loaded.
		panic(err)
	}
	return a
}

// SetAmount replaces the balance of the wallet.
func (m *Wallet) SetAmount(a coin.Amount) {
	m.Balance = a.Bytes()
}

var walletBucket = orm.NewModelBucket(BucketName)
