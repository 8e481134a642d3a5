package store

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/theconstruct/settle/settletest/assert"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. Pass the constructor of the store under test and call the
// methods from the package specific test code.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and a function releasing
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores created by given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks that writes are visible in the layer they were made in and in
// the layers stacked on top of it, but not below until written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("esc:e1"), []byte("first")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	k2, v2 := []byte("esc:e2"), []byte("second")
	s.AssertGetHas(t, cache, k2, nil, false)
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// a discarded layer leaves no trace
	k3, v3 := []byte("esc:e3"), []byte("third")
	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set(k3, v3))
	assert.Nil(t, discarded.Delete(k))
	discarded.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	written := base.CacheWrap()
	assert.Nil(t, written.Delete(k))
	assert.Nil(t, written.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that a layer can overwrite and delete values of the
// layer below.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	parent, cleanup := s.makeBase()
	defer cleanup()

	assert.Nil(t, parent.Set(ks[1], vs[1]))
	assert.Nil(t, parent.Set(ks[2], vs[2]))

	child := parent.CacheWrap()
	assert.Nil(t, child.Set(ks[1], vs[0]))
	assert.Nil(t, child.Set(ks[3], vs[3]))
	assert.Nil(t, child.Delete(ks[2]))

	s.AssertGetHas(t, parent, ks[1], vs[1], true)
	s.AssertGetHas(t, parent, ks[2], vs[2], true)
	s.AssertGetHas(t, parent, ks[3], nil, false)

	wantChild := []Model{
		{Key: ks[1], Value: vs[0]},
		{Key: ks[2], Value: nil},
		{Key: ks[3], Value: vs[3]},
	}
	for _, m := range wantChild {
		s.AssertGetHas(t, child, m.Key, m.Value, m.Value != nil)
	}

	assert.Nil(t, child.Write())
	for _, m := range wantChild {
		s.AssertGetHas(t, parent, m.Key, m.Value, m.Value != nil)
	}
}

// FuzzIterator makes sure iteration over a cache layer combines its own
// writes with the data of the layer below, in both directions.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 40

	childSet := randModels(size, 8, 20)
	childDel := randModels(10, 8, 20)
	parentSet := randModels(size, 8, 20)

	ops := append(makeSetOps(childSet...), makeDelOps(childDel...)...)
	childOnly := sortModels(childSet)
	all := sortModels(append(childSet, parentSet...))

	cases := map[string]struct {
		pre    []Op
		expect []Model
	}{
		"child with empty parent": {
			pre:    nil,
			expect: childOnly,
		},
		"child combined with parent": {
			pre:    makeSetOps(parentSet...),
			expect: all,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			e := tc.expect
			n := len(e)
			verifyIteration(t, base, tc.pre, ops, []rangeQuery{
				{nil, nil, false, e},
				{e[10].Key, nil, false, e[10:]},
				{nil, e[n-8].Key, false, e[:n-8]},
				{e[7].Key, e[18].Key, false, e[7:18]},
				{nil, nil, true, reverse(e)},
				{e[24].Key, nil, true, reverse(e[24:])},
				{nil, e[9].Key, true, reverse(e[:9])},
				{e[6].Key, e[26].Key, true, reverse(e[6:26])},
			})
		})
	}
}

// IteratorWithConflicts covers iteration where a layer shadows or deletes
// entries of the layer below.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := randModels(6, 20, 30)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	abc := sortModels([]Model{a, b, c})
	overwritten := sortModels([]Model{a2, b2, c, d})

	cases := map[string]struct {
		pre     []Op
		child   []Op
		queries []rangeQuery
	}{
		"child only": {
			child: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[1].Key, abc[2].Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"parent only": {
			pre: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, abc},
				{abc[1].Key, abc[2].Key, false, abc[1:2]},
				{nil, nil, true, reverse(abc)},
			},
		},
		"overwritten values come from the child": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, overwritten},
				{overwritten[1].Key, overwritten[3].Key, false, overwritten[1:3]},
				{nil, nil, true, reverse(overwritten)},
			},
		},
		"deleted values are skipped": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, nil, true, []Model{c}},
				{nil, c.Key, false, nil},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			verifyIteration(t, base, tc.pre, tc.child, tc.queries)
		})
	}
}

// AssertGetHas checks both Get and Has results for a single key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("want %X value, got %X", val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func verifyIteration(t testing.TB, base CacheableKVStore, pre, child []Op, queries []rangeQuery) {
	t.Helper()
	for _, op := range pre {
		assert.Nil(t, op.Apply(base))
	}
	cache := base.CacheWrap()
	for _, op := range child {
		assert.Nil(t, op.Apply(cache))
	}

	for qi, q := range queries {
		var (
			iter Iterator
			err  error
		)
		if q.reverse {
			iter, err = cache.ReverseIterator(q.start, q.end)
		} else {
			iter, err = cache.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		var got []Model
		for ; iter.Valid(); iter.Next() {
			got = append(got, Model{Key: iter.Key(), Value: iter.Value()})
		}
		iter.Close()

		if len(got) != len(q.expected) {
			t.Fatalf("query %d: want %d results, got %d", qi, len(q.expected), len(got))
		}
		for i := range got {
			if !bytes.Equal(q.expected[i].Key, got[i].Key) {
				t.Fatalf("query %d: want key %X at %d, got %X", qi, q.expected[i].Key, i, got[i].Key)
			}
			if !bytes.Equal(q.expected[i].Value, got[i].Value) {
				t.Fatalf("query %d: want value %X at %d, got %X", qi, q.expected[i].Value, i, got[i].Value)
			}
		}
	}
}

var rnd = rand.New(rand.NewSource(42))

func randBytes(length int) []byte {
	res := make([]byte, length)
	rnd.Read(res)
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i].Key = randBytes(keySize)
		models[i].Value = randBytes(valueSize)
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
