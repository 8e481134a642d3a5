package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectBtree returns all items of the tree within [start, end) in the
// requested order. A nil start or end means no limit on that side.
func collectBtree(bt *btree.BTree, start, end []byte, ascending bool) []cacheItem {
	var res []cacheItem
	add := func(item btree.Item) bool {
		res = append(res, item.(cacheItem))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(add)
	case start == nil:
		bt.AscendLessThan(cacheItem{key: end}, add)
	case end == nil:
		bt.AscendGreaterOrEqual(cacheItem{key: start}, add)
	default:
		bt.AscendRange(cacheItem{key: start}, cacheItem{key: end}, add)
	}

	if !ascending {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergedIterator joins the cached items with those of the parent,
// taking into consideration overwrites and deletes.
type mergedIterator struct {
	items     []cacheItem
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(items []cacheItem, parent Iterator, ascending bool) *mergedIterator {
	iter := &mergedIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	iter.skipAllDeleted()
	return iter
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergedIterator) Valid() bool {
	return i.usValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergedIterator) Next() {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		i.parent.Next()
	case parent:
		i.parent.Next()
	default:
		panic("Advanced past the end!")
	}
	i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergedIterator) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].key
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *mergedIterator) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *mergedIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipAllDeleted fast forwards over all deleted entries of the cache,
// together with the parent entries they shadow.
func (i *mergedIterator) skipAllDeleted() {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return
		}
		if !i.items[i.idx].deleted {
			return
		}
		i.idx++
		if src == both {
			i.parent.Next()
		}
	}
}

// firstKey selects the iterator that holds the next key in order, if any
func (i *mergedIterator) firstKey() source {
	if !i.parentValid() {
		if !i.usValid() {
			return none
		}
		return us
	} else if !i.usValid() {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].key)
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergedIterator) usValid() bool {
	return i.idx < len(i.items)
}

func (i *mergedIterator) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}
