package cash

import (
	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/coin"
	"github.com/iov-one/accrual/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use accrual.Address, so address in hex, not base64
type GenesisAccount struct {
	Address accrual.Address `json:"address"`
	Amount  coin.Amount     `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ accrual.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts accrual.Options, db accrual.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := ctrl.IssueCoins(db, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
