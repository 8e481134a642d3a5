package orm

import (
	"testing"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest/assert"
	"github.com/theconstruct/settle/store"
)

func keysOf(objs []Object) []string {
	var res []string
	for _, o := range objs {
		res = append(res, string(o.Key()))
	}
	return res
}

func TestIndexFollowsUpdates(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("hold", NewRecord(nil, new(holding))).
		WithIndex("owner", byOwner, false)

	assert.Nil(t, b.Save(db, newHolding("b", "alice", 1)))
	assert.Nil(t, b.Save(db, newHolding("a", "alice", 2)))
	assert.Nil(t, b.Save(db, newHolding("c", "bert", 3)))

	objs, err := b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, keysOf(objs))

	// changing the owner moves the reference
	assert.Nil(t, b.Save(db, newHolding("b", "bert", 1)))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []string{"a"}, keysOf(objs))
	objs, err = b.GetIndexed(db, "owner", []byte("bert"))
	assert.Nil(t, err)
	assert.Equal(t, []string{"b", "c"}, keysOf(objs))

	// saving with no index change is fine
	assert.Nil(t, b.Save(db, newHolding("b", "bert", 7)))

	assert.Nil(t, b.Delete(db, []byte("a")))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(objs))

	_, err = b.GetIndexed(db, "amount", []byte("alice"))
	assert.IsErr(t, ErrInvalidIndex, err)
}

func TestUniqueIndex(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("hold", NewRecord(nil, new(holding))).
		WithIndex("owner", byOwner, true)

	assert.Nil(t, b.Save(db, newHolding("a", "alice", 1)))
	err := b.Save(db, newHolding("b", "alice", 1))
	assert.IsErr(t, errors.ErrDuplicate, err)

	// the failed save left nothing behind
	obj, err := b.Get(db, []byte("b"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestIndexQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("hold", NewRecord(nil, new(holding))).
		WithIndex("owner", byOwner, false)
	assert.Nil(t, b.Save(db, newHolding("a", "alice", 1)))
	assert.Nil(t, b.Save(db, newHolding("b", "albert", 2)))
	assert.Nil(t, b.Save(db, newHolding("c", "bert", 3)))

	qr := settle.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/hold/owner")
	if h == nil {
		t.Fatal("index not registered")
	}

	res, err := h.Query(db, settle.KeyQueryMod, []byte("bert"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("hold:c"), res[0].Key)

	res, err = h.Query(db, settle.PrefixQueryMod, []byte("al"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	// index values are sorted, so albert comes before alice
	assert.Equal(t, []byte("hold:b"), res[0].Key)
	assert.Equal(t, []byte("hold:a"), res[1].Key)
}

func TestMultiRef(t *testing.T) {
	var m MultiRef
	assert.Nil(t, m.Add([]byte("c")))
	assert.Nil(t, m.Add([]byte("a")))
	assert.Nil(t, m.Add([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, m.Refs)
	assert.Nil(t, m.Validate())
}
