package orm

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// A nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index is a secondary index of a bucket.
type Index interface {
	settle.QueryHandler

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	Update(db settle.KVStore, prev Object, save Object) error

	// Refs returns all primary keys indexed under given value, in key
	// order.
	Refs(db settle.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

// index stores all primary keys sharing an index value as a MultiRef under
// a single key. This is only fit for small collections.
type index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ Index = index{}

// NewIndex constructs an index.
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return index{
		name:   name,
		id:     append([]byte(indexPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func (i index) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update moves the reference of the object to the index value of save.
func (i index) Update(db settle.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()):
		return errors.Wrap(errors.ErrHuman, "cannot change the key of an object")
	}

	var prevIdx, saveIdx []byte
	var err error
	if prev != nil {
		if prevIdx, err = i.index(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if saveIdx, err = i.index(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(prevIdx, saveIdx) {
		return nil
	}

	if prevIdx != nil {
		if err := i.remove(db, prevIdx, prev.Key()); err != nil {
			return err
		}
	}
	if saveIdx != nil {
		if err := i.insert(db, saveIdx, save.Key()); err != nil {
			return err
		}
	}
	return nil
}

func (i index) load(db settle.ReadOnlyKVStore, key []byte) (*MultiRef, error) {
	var refs MultiRef
	bz, err := db.Get(i.indexKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if bz == nil {
		return &refs, nil
	}
	if err := proto.Unmarshal(bz, &refs); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &refs, nil
}

func (i index) store(db settle.KVStore, key []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		return db.Delete(i.indexKey(key))
	}
	bz, err := proto.Marshal(refs)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return db.Set(i.indexKey(key), bz)
}

func (i index) insert(db settle.KVStore, key []byte, pk []byte) error {
	refs, err := i.load(db, key)
	if err != nil {
		return err
	}
	if i.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return i.store(db, key, refs)
}

func (i index) remove(db settle.KVStore, key []byte, pk []byte) error {
	refs, err := i.load(db, key)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.store(db, key, refs)
}

// Refs returns the primary keys stored under given index value.
func (i index) Refs(db settle.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := i.load(db, value)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the indexed objects, with their full db keys.
func (i index) Query(db settle.ReadOnlyKVStore, mod string, data []byte) ([]settle.Model, error) {
	switch mod {
	case settle.KeyQueryMod:
		refs, err := i.Refs(db, data)
		if err != nil {
			return nil, err
		}
		return i.resolve(db, refs)
	case settle.PrefixQueryMod:
		itr, err := db.Iterator(prefixRange(i.indexKey(data)))
		if err != nil {
			return nil, err
		}
		var res []settle.Model
		for _, m := range ConsumeIterator(itr) {
			var refs MultiRef
			if err := proto.Unmarshal(m.Value, &refs); err != nil {
				return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
			}
			models, err := i.resolve(db, refs.Refs)
			if err != nil {
				return nil, err
			}
			res = append(res, models...)
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown mod: %s", mod)
	}
}

func (i index) resolve(db settle.ReadOnlyKVStore, refs [][]byte) ([]settle.Model, error) {
	res := make([]settle.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		val, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if val != nil {
			res = append(res, settle.Pair(key, val))
		}
	}
	return res, nil
}
