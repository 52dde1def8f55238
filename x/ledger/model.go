package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/orm"
)

// Account is the ledger state of a single holder. Accounts are created on the
// first issue or incoming transfer and never deleted.
//
// Models of this package follow the schema declared in codec.proto.
type Account struct {
	// Principal is the big endian encoded coin.Amount that includes all
	// minted, burned and settled interest values.
	Principal []byte `protobuf:"bytes,1,opt,name=principal,proto3" json:"principal,omitempty"`
	// LockedRate is the big endian encoded coin.Rate this account accrues
	// interest at.
	LockedRate []byte `protobuf:"bytes,2,opt,name=locked_rate,json=lockedRate,proto3" json:"locked_rate,omitempty"`
	// LastSettled is the block time of the last settlement.
	LastSettled accrual.UnixTime `protobuf:"varint,3,opt,name=last_settled,json=lastSettled,proto3,casttype=github.com/iov-one/accrual.UnixTime" json:"last_settled,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (m *Account) Validate() error {
	var errs error
	if _, err := coin.AmountFromBytes(m.Principal); err != nil {
		errs = errors.AppendField(errs, "Principal", err)
	}
	if _, err := coin.RateFromBytes(m.LockedRate); err != nil {
		errs = errors.AppendField(errs, "LockedRate", err)
	}
	errs = errors.AppendField(errs, "LastSettled", m.LastSettled.Validate())
	return errs
}

// Balance returns the principal. Accounts are validated when loaded, so the
// value can always be decoded.
func (m *Account) Balance() coin.Amount {
	a, _ := coin.AmountFromBytes(m.Principal)
	return a
}

func (m *Account) SetBalance(a coin.Amount) {
	m.Principal = a.Bytes()
}

// Rate returns the locked rate.
func (m *Account) Rate() coin.Rate {
	r, _ := coin.RateFromBytes(m.LockedRate)
	return r
}

func (m *Account) SetRate(r coin.Rate) {
	m.LockedRate = r.Bytes()
}

// Allowance is the amount a spender may still transfer on behalf of an
// owner.
type Allowance struct {
	Amount []byte `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

var _ orm.Model = (*Allowance)(nil)

func (m *Allowance) Validate() error {
	if _, err := coin.AmountFromBytes(m.Amount); err != nil {
		return errors.Field("Amount", err, "invalid allowance")
	}
	return nil
}

// Value returns the allowed amount.
func (m *Allowance) Value() coin.Amount {
	a, _ := coin.AmountFromBytes(m.Amount)
	return a
}

// Ceiling holds the global rate. It is a singleton.
type Ceiling struct {
	Rate []byte `protobuf:"bytes,1,opt,name=rate,proto3" json:"rate,omitempty"`
}

func (m *Ceiling) Reset()         { *m = Ceiling{} }
func (m *Ceiling) String() string { return proto.CompactTextString(m) }
func (*Ceiling) ProtoMessage()    {}

func (m *Ceiling) Validate() error {
	if _, err := coin.RateFromBytes(m.Rate); err != nil {
		return errors.Field("Rate", err, "invalid rate")
	}
	return nil
}

// Totals holds the sum of all account principals. It is a singleton.
type Totals struct {
	Principal []byte `protobuf:"bytes,1,opt,name=principal,proto3" json:"principal,omitempty"`
}

func (m *Totals) Reset()         { *m = Totals{} }
func (m *Totals) String() string { return proto.CompactTextString(m) }
func (*Totals) ProtoMessage()    {}

func (m *Totals) Validate() error {
	if _, err := coin.AmountFromBytes(m.Principal); err != nil {
		return errors.Field("Principal", err, "invalid supply")
	}
	return nil
}

var (
	accountBucket   = orm.NewModelBucket("acct")
	allowanceBucket = orm.NewModelBucket("allow")

	ceilingKey = []byte("_ledger:rate")
	totalsKey  = []byte("_ledger:supply")
)

func allowanceKey(owner, spender accrual.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}

// loadAccount returns the account of given address. A zero account is
// returned if it does not exist yet.
func loadAccount(db accrual.ReadOnlyKVStore, addr accrual.Address) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	var acc Account
	switch err := accountBucket.One(db, addr, &acc); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, errors.Wrap(err, "load account")
	}
	if err := acc.Validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "account %s: %s", addr, err)
	}
	return &acc, nil
}

// loadSingleton reads a model stored directly under given key.
func loadSingleton(db accrual.ReadOnlyKVStore, key []byte, dest orm.Model) error {
	raw, err := db.Get(key)
	if err != nil {
		return errors.Wrap(err, "get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %q: %s", key, err)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrapf(errors.ErrModel, "%q: %s", key, err)
	}
	return nil
}

func saveSingleton(db accrual.KVStore, key []byte, src orm.Model) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(src)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %q: %s", key, err)
	}
	return db.Set(key, raw)
}
