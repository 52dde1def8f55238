package acl

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

var _ accrual.Msg = (*GrantMsg)(nil)

// GrantMsg gives a role to the holder address.
type GrantMsg struct {
	Role   string          `json:"role"`
	Holder accrual.Address `json:"holder"`
}

func (GrantMsg) Path() string {
	return "acl/grant"
}

func (m *GrantMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Role", validateRoleName(m.Role))
	errs = errors.AppendField(errs, "Holder", m.Holder.Validate())
	return errs
}

var _ accrual.Msg = (*RevokeMsg)(nil)

// RevokeMsg takes a role away from its current holder.
type RevokeMsg struct {
	Role string `json:"role"`
}

func (RevokeMsg) Path() string {
	return "acl/revoke"
}

func (m *RevokeMsg) Validate() error {
	return errors.AppendField(nil, "Role", validateRoleName(m.Role))
}

var _ accrual.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the acl configuration. Setting a new owner
// transfers the ownership.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "acl/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "patch is required")
	}
	if len(m.Patch.Owner) != 0 {
		return errors.AppendField(nil, "Patch", m.Patch.Validate())
	}
	return nil
}
