package acl

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
)

const optKey = "acl"

// GenesisRole is a role assignment declared in the genesis file.
type GenesisRole struct {
	Role   string          `json:"role"`
	Holder accrual.Address `json:"holder"`
}

// Initializer loads the owner configuration and the initial role
// assignments from the genesis file.
type Initializer struct{}

var _ accrual.Initializer = Initializer{}

func (Initializer) FromGenesis(opts accrual.Options, db accrual.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var roles []GenesisRole
	if err := opts.ReadOptions(optKey, &roles); err != nil {
		return err
	}
	for i, r := range roles {
		if err := validateRoleName(r.Role); err != nil {
			return errors.Wrapf(err, "role #%d", i)
		}
		if ok, err := roleBucket.Has(db, []byte(r.Role)); err != nil {
			return err
		} else if ok {
			return errors.Wrapf(errors.ErrDuplicate, "role %q", r.Role)
		}
		if err := roleBucket.Put(db, []byte(r.Role), &Role{Holder: r.Holder}); err != nil {
			return errors.Wrapf(err, "role %q", r.Role)
		}
	}
	return nil
}
