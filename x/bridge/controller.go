package bridge

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
	"github.com/iov-one/accrual/gconf"
	"github.com/iov-one/accrual/x"
	"github.com/iov-one/accrual/x/acl"
)

const confPkg = "bridge"

func loadConfig(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load bridge configuration")
	}
	return &conf, nil
}

// Chains returns all chain permissions, ordered by the remote chain id.
func Chains(db gconf.ReadStore) ([]*ChainPermission, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	return conf.Chains, nil
}

// Chain returns the permission of a single remote chain.
func Chain(db gconf.ReadStore, chainID uint64) (*ChainPermission, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	i := conf.find(chainID)
	if i < 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "chain %d", chainID)
	}
	return conf.Chains[i], nil
}

// Apply removes and then adds chain permissions in a single update. An added
// permission replaces the existing one with the same chain id. Only the acl
// owner can apply changes.
func Apply(ctx accrual.Context, db accrual.KVStore, auth x.Authenticator, add []*ChainPermission, remove []uint64) error {
	if err := acl.RequireOwner(ctx, db, auth); err != nil {
		return err
	}
	conf, err := loadConfig(db)
	if err != nil {
		return err
	}

	for _, id := range remove {
		i := conf.find(id)
		if i < 0 {
			return errors.Wrapf(errors.ErrNotFound, "chain %d", id)
		}
		conf.Chains = append(conf.Chains[:i], conf.Chains[i+1:]...)
	}
	for _, c := range add {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "chain permission")
		}
		if i := conf.find(c.RemoteChainID); i >= 0 {
			conf.Chains[i] = c
		} else {
			conf.Chains = append(conf.Chains, c)
		}
	}
	conf.sort()
	conf.Revision++

	if err := gconf.Save(db, confPkg, conf); err != nil {
		return errors.Wrap(err, "save bridge configuration")
	}

	added := make([]uint64, 0, len(add))
	for _, c := range add {
		added = append(added, c.RemoteChainID)
	}
	accrual.Emit(ctx, ChainsApplied{Revision: conf.Revision, Added: added, Removed: remove})
	accrual.GetLogger(ctx).Info("bridge chains applied", "revision", conf.Revision, "added", len(add), "removed", len(remove))
	return nil
}

// ChainsApplied is emitted when the chain permission list changes.
type ChainsApplied struct {
	Revision uint64
	Added    []uint64
	Removed  []uint64
}

func (ChainsApplied) EventName() string { return "bridge/chains_applied" }
