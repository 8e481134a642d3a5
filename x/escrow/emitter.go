package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
)

// Directive instructs the settlement layer to transfer a single coin to the
// recipient.
type Directive struct {
	Recipient string     `protobuf:"bytes,1,opt,name=recipient,proto3" json:"recipient"`
	Coin      *coin.Coin `protobuf:"bytes,2,opt,name=coin,proto3" json:"coin"`
}

func (m *Directive) Reset()         { *m = Directive{} }
func (m *Directive) String() string { return proto.CompactTextString(m) }
func (*Directive) ProtoMessage()    {}

// Emit returns one directive per coin, paying everything to the recipient.
// The order of funds is kept.
func Emit(recipient settle.Principal, funds coin.Coins) []*Directive {
	out := make([]*Directive, 0, len(funds))
	for _, c := range funds {
		out = append(out, &Directive{
			Recipient: recipient.String(),
			Coin:      c.Clone(),
		})
	}
	return out
}
