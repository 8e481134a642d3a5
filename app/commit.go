package app

import (
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
)

// CommitStore owns the committed state of the application and the two
// caches requests run against. DeliverTx writes pile up in the deliver
// cache until Commit. CheckTx runs on its own cache so that mempool checks
// never leak into a block.
type CommitStore struct {
	committed settle.CommitKVStore
	deliver   settle.KVCacheWrap
	check     settle.KVCacheWrap
}

// NewCommitStore loads the latest version of the store. It panics if the
// store cannot be loaded.
func NewCommitStore(store settle.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

// reset opens fresh caches over the committed state.
func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the latest committed height and hash.
func (cs *CommitStore) CommitInfo() (settle.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists the deliver cache as a new version and opens fresh
// caches. Pending check writes are dropped.
func (cs *CommitStore) Commit() (settle.CommitID, error) {
	cs.check.Discard()
	if err := cs.deliver.Write(); err != nil {
		return settle.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, errors.Wrap(err, "commit")
	}
	cs.reset()
	return res, nil
}

// SyncGenesis makes the genesis state, written to the deliver cache by
// InitChain, visible to CheckTx. The genesis is only committed together with
// the first block, and transactions may be checked before that.
func (cs *CommitStore) SyncGenesis() {
	cs.check.Discard()
	cs.check = cs.deliver.CacheWrap()
}

// CheckStore returns the cache CheckTx must use.
func (cs *CommitStore) CheckStore() settle.CacheableKVStore {
	return cs.check
}

// DeliverStore returns the cache DeliverTx must use.
func (cs *CommitStore) DeliverStore() settle.CacheableKVStore {
	return cs.deliver
}

//------- storing chainID ---------

// _st: is a prefix for settle internal data
const chainIDKey = "_st:chainID"

// mustLoadChainID returns the chain id stored if any
// panics on db error
func mustLoadChainID(kv settle.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv settle.KVStore, chainID string) error {
	if !settle.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
