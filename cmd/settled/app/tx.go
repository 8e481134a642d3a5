package settled

import (
	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/x/escrow"
	"github.com/theconstruct/settle/x/sigs"
)

// Tx is the transaction envelope accepted by settled. Exactly one message
// field must be set.
type Tx struct {
	Signatures        []*sigs.StdSignature      `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CreateEscrowMsg   *escrow.CreateEscrowMsg   `protobuf:"bytes,10,opt,name=create_escrow_msg,json=createEscrowMsg,proto3" json:"create_escrow_msg,omitempty"`
	ReleasePaymentMsg *escrow.ReleasePaymentMsg `protobuf:"bytes,11,opt,name=release_payment_msg,json=releasePaymentMsg,proto3" json:"release_payment_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ settle.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (settle.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// NewTx wraps a single message into a transaction without signatures.
func NewTx(msg settle.Msg) (*Tx, error) {
	switch m := msg.(type) {
	case *escrow.CreateEscrowMsg:
		return &Tx{CreateEscrowMsg: m}, nil
	case *escrow.ReleasePaymentMsg:
		return &Tx{ReleasePaymentMsg: m}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidType, "unsupported message %T", msg)
	}
}

// GetMsg returns the single message carried by this transaction.
func (m *Tx) GetMsg() (settle.Msg, error) {
	var msgs []settle.Msg
	if m.CreateEscrowMsg != nil {
		msgs = append(msgs, m.CreateEscrowMsg)
	}
	if m.ReleasePaymentMsg != nil {
		msgs = append(msgs, m.ReleasePaymentMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "more than one message")
	}
}

// GetSignatures returns all signatures attached to the tx.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (m *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *m
	unsigned.Signatures = nil
	bz, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return bz, nil
}
