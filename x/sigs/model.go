package sigs

import (
	"fmt"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"golang.org/x/crypto/ed25519"
)

// StdSignature is a signature of the main transaction payload together with
// the public key that created it.
type StdSignature struct {
	PubKey    []byte `protobuf:"bytes,1,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Signature []byte `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return fmt.Sprintf("StdSignature{%X}", m.PubKey) }
func (*StdSignature) ProtoMessage()    {}

func (m *StdSignature) GetPubKey() []byte {
	if m != nil {
		return m.PubKey
	}
	return nil
}

func (m *StdSignature) GetSignature() []byte {
	if m != nil {
		return m.Signature
	}
	return nil
}

// Validate ensures the StdSignature meets basic standards
func (m *StdSignature) Validate() error {
	if len(m.GetPubKey()) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrUnauthorized, "invalid public key length %d", len(m.GetPubKey()))
	}
	if len(m.GetSignature()) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// Principal returns the principal this signature authenticates.
func (m *StdSignature) Principal() settle.Principal {
	return settle.NewPrincipal(m.GetPubKey())
}
