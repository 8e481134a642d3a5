package orm

import (
	"reflect"

	"github.com/theconstruct/settle/errors"
)

// Record is the Object stored by a bucket: a model together with the key it
// lives under.
type Record struct {
	key   []byte
	model Model
}

var _ Object = (*Record)(nil)

// NewRecord returns a record holding model under key. A record created with
// a nil key serves as the bucket prototype.
func NewRecord(key []byte, model Model) *Record {
	return &Record{key: key, model: model}
}

func (r *Record) Key() []byte       { return r.key }
func (r *Record) SetKey(key []byte) { r.key = key }
func (r *Record) Value() Model      { return r.model }

// Validate checks the key is set and the model is consistent.
func (r *Record) Validate() error {
	switch {
	case len(r.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "record key")
	case r.model == nil:
		return errors.Wrapf(errors.ErrEmpty, "record %q model", r.key)
	}
	if err := r.model.Validate(); err != nil {
		return errors.Wrapf(err, "record %q", r.key)
	}
	return nil
}

// Clone returns a record with a zero model of the same type, ready to be
// unmarshalled into. The key is copied.
func (r *Record) Clone() Object {
	zero := reflect.New(reflect.TypeOf(r.model).Elem()).Interface().(Model)
	var key []byte
	if len(r.key) > 0 {
		key = append(key, r.key...)
	}
	return &Record{key: key, model: zero}
}
