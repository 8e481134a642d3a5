package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle/errors"
)

// holding is a minimal model used to exercise buckets and indexes.
type holding struct {
	Owner  string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount int64  `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *holding) Reset()         { *m = holding{} }
func (m *holding) String() string { return proto.CompactTextString(m) }
func (*holding) ProtoMessage()    {}

func (m *holding) Validate() error {
	if m.Owner == "" {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	if m.Amount < 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "negative")
	}
	return nil
}

func newHolding(key, owner string, amount int64) Object {
	return NewRecord([]byte(key), &holding{Owner: owner, Amount: amount})
}

func byOwner(obj Object) ([]byte, error) {
	h, ok := obj.Value().(*holding)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return []byte(h.Owner), nil
}
