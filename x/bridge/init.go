package bridge

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
)

// Initializer stores the chain permissions declared in the "bridge"
// configuration of the genesis file. The declaration is optional, an empty
// list is stored if it is missing.
type Initializer struct{}

var _ accrual.Initializer = Initializer{}

func (Initializer) FromGenesis(opts accrual.Options, db accrual.KVStore) error {
	var confOptions accrual.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	var conf Configuration
	if err := confOptions.ReadOptions(confPkg, &conf); err != nil {
		return err
	}
	conf.Revision = 1
	conf.sort()
	if err := gconf.Save(db, confPkg, &conf); err != nil {
		return errors.Wrap(err, "save bridge configuration")
	}
	return nil
}
