package orm

import (
	"github.com/theconstruct/settle"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr settle.Iterator) []settle.Model {
	defer itr.Close()

	var res []settle.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, settle.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// queryPrefix returns all keys and values stored under given prefix.
func queryPrefix(db settle.ReadOnlyKVStore, prefix []byte) ([]settle.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr), nil
}

// prefixRange turns a prefix into (start, end) to create
// an iterator over all keys with that prefix
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// increment the last byte that does not overflow and cut the rest
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end[:i+1]
		}
	}
	// all bytes were 0xFF, no end to this range
	return prefix, nil
}
