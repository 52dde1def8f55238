package acl

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
	"github.com/iov-one/accrual/x"
)

const confPkg = "acl"

// Owner returns the address of the current owner.
func Owner(db gconf.ReadStore) (accrual.Address, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load acl configuration")
	}
	return conf.Owner, nil
}

// RequireOwner returns ErrUnauthorized unless the owner is authenticated.
func RequireOwner(ctx accrual.Context, db accrual.ReadOnlyKVStore, auth x.Authenticator) error {
	owner, err := Owner(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return nil
}

// Holder returns the address holding given role. ErrNotFound is returned
// if the role was never granted or was revoked.
func Holder(db accrual.ReadOnlyKVStore, role string) (accrual.Address, error) {
	var r Role
	if err := roleBucket.One(db, []byte(role), &r); err != nil {
		return nil, errors.Wrapf(err, "role %q", role)
	}
	return r.Holder, nil
}

// RequireRole returns ErrUnauthorized unless the holder of given role is
// authenticated.
func RequireRole(ctx accrual.Context, db accrual.ReadOnlyKVStore, auth x.Authenticator, role string) error {
	holder, err := Holder(db, role)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrUnauthorized, "role %q not granted", role)
	default:
		return err
	}
	if !auth.HasAddress(ctx, holder) {
		return errors.Wrapf(errors.ErrUnauthorized, "%q role required", role)
	}
	return nil
}

// Grant gives a role to given address. Only the owner can grant roles. If
// the role was already granted, the previous holder loses it.
func Grant(ctx accrual.Context, db accrual.KVStore, auth x.Authenticator, role string, holder accrual.Address) error {
	if err := validateRoleName(role); err != nil {
		return err
	}
	if err := RequireOwner(ctx, db, auth); err != nil {
		return err
	}
	if err := roleBucket.Put(db, []byte(role), &Role{Holder: holder}); err != nil {
		return errors.Wrap(err, "save role")
	}
	accrual.Emit(ctx, RoleGranted{Role: role, Holder: holder})
	accrual.GetLogger(ctx).Info("role granted", "role", role, "holder", holder)
	return nil
}

// Revoke removes the holder of a role. Only the owner can revoke roles.
func Revoke(ctx accrual.Context, db accrual.KVStore, auth x.Authenticator, role string) error {
	if err := RequireOwner(ctx, db, auth); err != nil {
		return err
	}
	if err := roleBucket.Delete(db, []byte(role)); err != nil {
		return errors.Wrapf(err, "role %q", role)
	}
	accrual.Emit(ctx, RoleRevoked{Role: role})
	accrual.GetLogger(ctx).Info("role revoked", "role", role)
	return nil
}

// TransferOwnership replaces the owner. Only the current owner can do it.
func TransferOwnership(ctx accrual.Context, db accrual.KVStore, auth x.Authenticator, newOwner accrual.Address) error {
	if err := RequireOwner(ctx, db, auth); err != nil {
		return err
	}
	if err := gconf.Save(db, confPkg, &Configuration{Owner: newOwner}); err != nil {
		return errors.Wrap(err, "save configuration")
	}
	accrual.Emit(ctx, OwnershipTransferred{Owner: newOwner})
	return nil
}

// RoleGranted is emitted when a role is given to a new holder.
type RoleGranted struct {
	Role   string
	Holder accrual.Address
}

func (RoleGranted) EventName() string { return "acl/role_granted" }

// RoleRevoked is emitted when a role is taken away.
type RoleRevoked struct {
	Role string
}

func (RoleRevoked) EventName() string { return "acl/role_revoked" }

// OwnershipTransferred is emitted when the owner changes.
type OwnershipTransferred struct {
	Owner accrual.Address
}

func (OwnershipTransferred) EventName() string { return "acl/ownership_transferred" }
