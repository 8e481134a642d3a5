package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
)

const (
	pathCreateEscrowMsg   = "escrow/create"
	pathReleasePaymentMsg = "escrow/release"
)

// CreateEscrowMsg opens a new escrow. The payer is the signer of the
// transaction.
type CreateEscrowMsg struct {
	Id          string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Beneficiary string       `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary"`
	Maturity    int64        `protobuf:"varint,3,opt,name=maturity,proto3" json:"maturity"`
	Funds       []*coin.Coin `protobuf:"bytes,4,rep,name=funds,proto3" json:"funds"`
}

func (m *CreateEscrowMsg) Reset()         { *m = CreateEscrowMsg{} }
func (m *CreateEscrowMsg) String() string { return proto.CompactTextString(m) }
func (*CreateEscrowMsg) ProtoMessage()    {}

var _ settle.Msg = (*CreateEscrowMsg)(nil)

// Path returns the routing path for this message
func (*CreateEscrowMsg) Path() string {
	return pathCreateEscrowMsg
}

// Validate checks the id only. Every other field is checked when the message
// is processed, after the caller is authorized.
func (m *CreateEscrowMsg) Validate() error {
	return validateID(m.Id)
}

// ReleasePaymentMsg releases a matured escrow to its beneficiary.
type ReleasePaymentMsg struct {
	Id string `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
}

func (m *ReleasePaymentMsg) Reset()         { *m = ReleasePaymentMsg{} }
func (m *ReleasePaymentMsg) String() string { return proto.CompactTextString(m) }
func (*ReleasePaymentMsg) ProtoMessage()    {}

var _ settle.Msg = (*ReleasePaymentMsg)(nil)

// Path returns the routing path for this message
func (*ReleasePaymentMsg) Path() string {
	return pathReleasePaymentMsg
}

// Validate makes sure that this is sensible
func (m *ReleasePaymentMsg) Validate() error {
	return validateID(m.Id)
}

// CreateReceipt is returned as the data of a successful CreateEscrowMsg.
type CreateReceipt struct {
	Id          string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Beneficiary string       `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary"`
	Maturity    int64        `protobuf:"varint,3,opt,name=maturity,proto3" json:"maturity"`
	Funds       []*coin.Coin `protobuf:"bytes,4,rep,name=funds,proto3" json:"funds"`
}

func (m *CreateReceipt) Reset()         { *m = CreateReceipt{} }
func (m *CreateReceipt) String() string { return proto.CompactTextString(m) }
func (*CreateReceipt) ProtoMessage()    {}

// ReleaseReceipt is returned as the data of a successful ReleasePaymentMsg.
type ReleaseReceipt struct {
	Id         string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Recipient  string       `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient"`
	Directives []*Directive `protobuf:"bytes,3,rep,name=directives,proto3" json:"directives"`
}

func (m *ReleaseReceipt) Reset()         { *m = ReleaseReceipt{} }
func (m *ReleaseReceipt) String() string { return proto.CompactTextString(m) }
func (*ReleaseReceipt) ProtoMessage()    {}
