package custodian

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/google/uuid"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/orm"
)

// Deposit records a single exchange of the base asset for claims.
//
// Models of this package follow the schema declared in codec.proto.
type Deposit struct {
	ID     []byte           `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Payer  accrual.Address  `protobuf:"bytes,2,opt,name=payer,proto3,casttype=github.com/iov-one/accrual.Address" json:"payer,omitempty"`
	Amount []byte           `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Rate   []byte           `protobuf:"bytes,4,opt,name=rate,proto3" json:"rate,omitempty"`
	Time   accrual.UnixTime `protobuf:"varint,5,opt,name=time,proto3,casttype=github.com/iov-one/accrual.UnixTime" json:"time,omitempty"`
}

func (m *Deposit) Reset()         { *m = Deposit{} }
func (m *Deposit) String() string { return proto.CompactTextString(m) }
func (*Deposit) ProtoMessage()    {}

var _ orm.Model = (*Deposit)(nil)

func (m *Deposit) Validate() error {
	var errs error
	if len(m.ID) != 16 {
		errs = errors.AppendField(errs, "ID", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	if a, err := coin.AmountFromBytes(m.Amount); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if a.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if _, err := coin.RateFromBytes(m.Rate); err != nil {
		errs = errors.AppendField(errs, "Rate", err)
	}
	errs = errors.AppendField(errs, "Time", m.Time.Validate())
	return errs
}

// UUID returns the record id.
func (m *Deposit) UUID() uuid.UUID {
	var id uuid.UUID
	copy(id[:], m.ID)
	return id
}

// Payout records a single exchange of claims for the base asset.
type Payout struct {
	ID      []byte           `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Account accrual.Address  `protobuf:"bytes,2,opt,name=account,proto3,casttype=github.com/iov-one/accrual.Address" json:"account,omitempty"`
	Amount  []byte           `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Time    accrual.UnixTime `protobuf:"varint,4,opt,name=time,proto3,casttype=github.com/iov-one/accrual.UnixTime" json:"time,omitempty"`
}

func (m *Payout) Reset()         { *m = Payout{} }
func (m *Payout) String() string { return proto.CompactTextString(m) }
func (*Payout) ProtoMessage()    {}

var _ orm.Model = (*Payout)(nil)

func (m *Payout) Validate() error {
	var errs error
	if len(m.ID) != 16 {
		errs = errors.AppendField(errs, "ID", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	if a, err := coin.AmountFromBytes(m.Amount); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if a.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Time", m.Time.Validate())
	return errs
}

// UUID returns the record id.
func (m *Payout) UUID() uuid.UUID {
	var id uuid.UUID
	copy(id[:], m.ID)
	return id
}

// Counter is the number of records created so far. It is a singleton.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

var (
	depositBucket = orm.NewModelBucket("deposit")
	payoutBucket  = orm.NewModelBucket("payout")

	counterKey = []byte("_custodian:seq")

	// recordSpace is the namespace of all record ids.
	recordSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("accrual/custodian"))
)

// nextID returns a new record id. Ids are name based, derived from a
// stored counter, so that every replay of the same operations produces
// the same ids.
func nextID(db accrual.KVStore) (uuid.UUID, error) {
	var c Counter
	raw, err := db.Get(counterKey)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "get counter")
	}
	if raw != nil {
		if err := proto.Unmarshal(raw, &c); err != nil {
			return uuid.Nil, errors.Wrapf(errors.ErrModel, "counter: %s", err)
		}
	}
	c.Count++
	raw, err = proto.Marshal(&c)
	if err != nil {
		return uuid.Nil, errors.Wrapf(errors.ErrModel, "counter: %s", err)
	}
	if err := db.Set(counterKey, raw); err != nil {
		return uuid.Nil, errors.Wrap(err, "set counter")
	}
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], uint64(c.Count))
	return uuid.NewSHA1(recordSpace, seq[:]), nil
}

// LoadDeposit returns the deposit record with given id.
func LoadDeposit(db accrual.ReadOnlyKVStore, id uuid.UUID) (*Deposit, error) {
	var d Deposit
	if err := depositBucket.One(db, id[:], &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadPayout returns the payout record with given id.
func LoadPayout(db accrual.ReadOnlyKVStore, id uuid.UUID) (*Payout, error) {
	var p Payout
	if err := payoutBucket.One(db, id[:], &p); err != nil {
		return nil, err
	}
	return &p, nil
}
