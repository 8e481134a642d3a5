package app

import (
	"github.com/theconstruct/settle"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...settle.Initializer) settle.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []settle.Initializer
}

var _ settle.Initializer = chainInitializer{}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(ctx settle.Context, opts settle.Options, kv settle.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(ctx, opts, kv); err != nil {
			return err
		}
	}
	return nil
}
