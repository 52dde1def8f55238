package ledger

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

const optKey = "ledger"

// Genesis is the initial state of the ledger.
type Genesis struct {
	// Rate is the initial global rate.
	Rate *coin.Rate `json:"rate"`
}

// Initializer sets the initial global rate from the genesis file.
type Initializer struct{}

var _ accrual.Initializer = Initializer{}

func (Initializer) FromGenesis(opts accrual.Options, db accrual.KVStore) error {
	var g Genesis
	if err := opts.ReadOptions(optKey, &g); err != nil {
		return err
	}
	if g.Rate == nil {
		return errors.Wrap(errors.ErrNotFound, "no initial rate in genesis")
	}
	if err := saveSingleton(db, ceilingKey, &Ceiling{Rate: g.Rate.Bytes()}); err != nil {
		return errors.Wrap(err, "save global rate")
	}
	return nil
}
