package server

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/store"
)

// ValidateGenesis loads the app_state of every given genesis file into
// a throw away store and returns the first initialization failure.
func ValidateGenesis(ini settle.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini settle.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	var genesis struct {
		ChainID string         `json:"chain_id"`
		State   settle.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot JSON deserialize genesis: %s", err)
	}
	if len(genesis.State) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}
	if !settle.IsValidChainID(genesis.ChainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", genesis.ChainID)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	ctx := settle.WithChainID(context.Background(), genesis.ChainID)
	ctx = settle.WithLogger(ctx, log.NewNopLogger())
	if err := ini.FromGenesis(ctx, genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
