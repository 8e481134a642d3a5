package store

import "github.com/theconstruct/settle"

// Short aliases for the storage interfaces, so that every implementation in
// this package reads the same way.

type (
	ReadOnlyKVStore  = settle.ReadOnlyKVStore
	SetDeleter       = settle.SetDeleter
	KVStore          = settle.KVStore
	Batch            = settle.Batch
	Iterator         = settle.Iterator
	CacheableKVStore = settle.CacheableKVStore
	KVCacheWrap      = settle.KVCacheWrap
	CommitKVStore    = settle.CommitKVStore
	CommitID         = settle.CommitID
	Model            = settle.Model
)
