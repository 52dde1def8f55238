package acl

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
	"github.com/iov-one/accrual/orm"
)

// RoleMintBurn allows to issue and redeem ledger claims. It is held by the
// custodian.
const RoleMintBurn = "mint_burn"

var isRoleName = regexp.MustCompile(`^[a-z][a-z0-9_]{2,31}$`).MatchString

// Configuration declares the owner of the vault.
//
// Models of this package follow the schema declared in codec.proto.
type Configuration struct {
	Owner accrual.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/iov-one/accrual.Address" json:"owner,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (m *Configuration) GetOwner() accrual.Address {
	if m == nil {
		return nil
	}
	return m.Owner
}

func (m *Configuration) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Field("Owner", err, "invalid owner address")
	}
	return nil
}

// Role is stored under the role name and points to the only holder of that
// role.
type Role struct {
	Holder accrual.Address `protobuf:"bytes,1,opt,name=holder,proto3,casttype=github.com/iov-one/accrual.Address" json:"holder,omitempty"`
}

func (m *Role) Reset()         { *m = Role{} }
func (m *Role) String() string { return proto.CompactTextString(m) }
func (*Role) ProtoMessage()    {}

var _ orm.Model = (*Role)(nil)

func (m *Role) Validate() error {
	if err := m.Holder.Validate(); err != nil {
		return errors.Field("Holder", err, "invalid holder address")
	}
	return nil
}

func validateRoleName(name string) error {
	if !isRoleName(name) {
		return errors.Wrapf(errors.ErrInput, "invalid role name %q", name)
	}
	return nil
}

var roleBucket = orm.NewModelBucket("role")
