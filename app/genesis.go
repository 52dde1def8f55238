package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/accrual"
	"github.com/iov-one/accrual/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState accrual.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	if !accrual.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...accrual.Initializer) accrual.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []accrual.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts accrual.Options, kv accrual.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return errors.Wrapf(err, "%T", i)
		}
	}
	return nil
}
