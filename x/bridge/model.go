package bridge

import (
	"encoding/json"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
)

const maxRemoteNameLength = 128

// Configuration holds all chain permissions, ordered by the remote chain id.
// Revision is increased with every change.
//
// Models of this package follow the schema declared in codec.proto.
type Configuration struct {
	Revision uint64             `protobuf:"varint,1,opt,name=revision,proto3" json:"revision,omitempty"`
	Chains   []*ChainPermission `protobuf:"bytes,2,rep,name=chains,proto3" json:"chains,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

func (m *Configuration) Validate() error {
	if m.Revision == 0 {
		return errors.Field("Revision", errors.ErrState, "revision must be set")
	}
	seen := make(map[uint64]struct{}, len(m.Chains))
	var errs error
	for i, c := range m.Chains {
		if c == nil {
			errs = errors.AppendField(errs, "Chains", errors.Wrapf(errors.ErrEmpty, "chain #%d", i))
			continue
		}
		if _, ok := seen[c.RemoteChainID]; ok {
			errs = errors.AppendField(errs, "Chains", errors.Wrapf(errors.ErrDuplicate, "chain %d", c.RemoteChainID))
			continue
		}
		seen[c.RemoteChainID] = struct{}{}
		if err := c.Validate(); err != nil {
			errs = errors.AppendField(errs, "Chains", errors.Wrapf(err, "chain %d", c.RemoteChainID))
		}
	}
	return errs
}

// find returns the index of the chain with given id or -1.
func (m *Configuration) find(chainID uint64) int {
	for i, c := range m.Chains {
		if c.RemoteChainID == chainID {
			return i
		}
	}
	return -1
}

func (m *Configuration) sort() {
	sort.Slice(m.Chains, func(i, j int) bool {
		return m.Chains[i].RemoteChainID < m.Chains[j].RemoteChainID
	})
}

// ChainPermission allows exchanging claims with a single remote chain.
type ChainPermission struct {
	RemoteChainID uint64         `protobuf:"varint,1,opt,name=remote_chain_id,json=remoteChainId,proto3" json:"remote_chain_id"`
	RemoteLedger  string         `protobuf:"bytes,2,opt,name=remote_ledger,json=remoteLedger,proto3" json:"remote_ledger"`
	RemoteAsset   string         `protobuf:"bytes,3,opt,name=remote_asset,json=remoteAsset,proto3" json:"remote_asset"`
	Outbound      *LimiterConfig `protobuf:"bytes,4,opt,name=outbound,proto3" json:"outbound,omitempty"`
	Inbound       *LimiterConfig `protobuf:"bytes,5,opt,name=inbound,proto3" json:"inbound,omitempty"`
}

func (m *ChainPermission) Reset()         { *m = ChainPermission{} }
func (m *ChainPermission) String() string { return proto.CompactTextString(m) }
func (*ChainPermission) ProtoMessage()    {}

func (m *ChainPermission) Validate() error {
	var errs error
	if m.RemoteChainID == 0 {
		errs = errors.AppendField(errs, "RemoteChainID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "RemoteLedger", validateRemoteName(m.RemoteLedger))
	errs = errors.AppendField(errs, "RemoteAsset", validateRemoteName(m.RemoteAsset))
	errs = errors.AppendField(errs, "Outbound", m.Outbound.Validate())
	errs = errors.AppendField(errs, "Inbound", m.Inbound.Validate())
	return errs
}

func validateRemoteName(name string) error {
	switch n := len(name); {
	case n == 0:
		return errors.ErrEmpty
	case n > maxRemoteNameLength:
		return errors.Wrapf(errors.ErrInput, "longer than %d characters", maxRemoteNameLength)
	}
	return nil
}

// LimiterConfig declares a token bucket. When disabled, both capacity and
// rate must be zero. A nil limiter is disabled.
type LimiterConfig struct {
	Enabled  bool   `protobuf:"varint,1,opt,name=enabled,proto3" json:"enabled,omitempty"`
	Capacity []byte `protobuf:"bytes,2,opt,name=capacity,proto3" json:"capacity,omitempty"`
	Rate     []byte `protobuf:"bytes,3,opt,name=rate,proto3" json:"rate,omitempty"`
}

func (m *LimiterConfig) Reset()         { *m = LimiterConfig{} }
func (m *LimiterConfig) String() string { return proto.CompactTextString(m) }
func (*LimiterConfig) ProtoMessage()    {}

// NewLimiter returns an enabled limiter.
func NewLimiter(capacity, rate coin.Amount) *LimiterConfig {
	return &LimiterConfig{
		Enabled:  true,
		Capacity: capacity.Bytes(),
		Rate:     rate.Bytes(),
	}
}

// Values returns the bucket capacity and the refill rate.
func (m *LimiterConfig) Values() (capacity, rate coin.Amount, err error) {
	if m == nil {
		return capacity, rate, nil
	}
	if capacity, err = coin.AmountFromBytes(m.Capacity); err != nil {
		return capacity, rate, errors.Field("Capacity", err, "invalid capacity")
	}
	if rate, err = coin.AmountFromBytes(m.Rate); err != nil {
		return capacity, rate, errors.Field("Rate", err, "invalid rate")
	}
	return capacity, rate, nil
}

func (m *LimiterConfig) Validate() error {
	capacity, rate, err := m.Values()
	if err != nil {
		return err
	}
	if m == nil || !m.Enabled {
		if !capacity.IsZero() || !rate.IsZero() {
			return errors.Wrap(errors.ErrInput, "disabled limiter must not declare limits")
		}
		return nil
	}
	if rate.IsZero() {
		return errors.Field("Rate", errors.ErrAmount, "rate must be greater than zero")
	}
	if rate.Compare(capacity) > 0 {
		return errors.Field("Rate", errors.ErrAmount, "rate %s exceeds capacity %s", rate, capacity)
	}
	return nil
}

type limiterJSON struct {
	Enabled  bool        `json:"enabled"`
	Capacity coin.Amount `json:"capacity"`
	Rate     coin.Amount `json:"rate"`
}

// MarshalJSON represents limits as base 10 amounts.
func (m LimiterConfig) MarshalJSON() ([]byte, error) {
	capacity, rate, err := m.Values()
	if err != nil {
		return nil, err
	}
	return json.Marshal(limiterJSON{Enabled: m.Enabled, Capacity: capacity, Rate: rate})
}

func (m *LimiterConfig) UnmarshalJSON(raw []byte) error {
	var l limiterJSON
	if err := json.Unmarshal(raw, &l); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode limiter: %s", err)
	}
	*m = LimiterConfig{
		Enabled:  l.Enabled,
		Capacity: l.Capacity.Bytes(),
		Rate:     l.Rate.Bytes(),
	}
	return nil
}
