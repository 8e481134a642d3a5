package client

import (
	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle"
	settled "github.com/theconstruct/settle/cmd/settled/app"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/x/escrow"
	"github.com/theconstruct/settle/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// EscrowResponse is a queried escrow together with the height it was read
// at.
type EscrowResponse struct {
	Escrow *escrow.Escrow
	Height int64
}

// BuildCreateEscrowTx returns an unsigned transaction opening an escrow.
func BuildCreateEscrowTx(msg *escrow.CreateEscrowMsg) *settled.Tx {
	return &settled.Tx{CreateEscrowMsg: msg}
}

// BuildReleasePaymentTx returns an unsigned transaction releasing an escrow.
func BuildReleasePaymentTx(id string) *settled.Tx {
	return &settled.Tx{ReleasePaymentMsg: &escrow.ReleasePaymentMsg{Id: id}}
}

// SignTx modifies the tx in-place, adding a signature
func SignTx(tx *settled.Tx, signer ed25519.PrivateKey, chainID string) error {
	sig, err := sigs.SignTx(signer, tx, chainID)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// CreateEscrow opens an escrow signed by the owner key and returns the
// creation receipt.
func (c *Client) CreateEscrow(owner ed25519.PrivateKey, msg *escrow.CreateEscrowMsg) (*escrow.CreateReceipt, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	tx := BuildCreateEscrowTx(msg)
	if err := c.sign(tx, owner); err != nil {
		return nil, err
	}
	res, err := c.BroadcastTx(tx)
	if err != nil {
		return nil, err
	}
	var receipt escrow.CreateReceipt
	if err := proto.Unmarshal(res.Data, &receipt); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &receipt, nil
}

// ReleasePayment releases a matured escrow and returns the settlement
// directives. The signer is optional as anyone may release.
//
// Before maturity the returned error is escrow.ErrNotMatured, which
// escrow.IsTemporary reports as worth retrying.
func (c *Client) ReleasePayment(signer ed25519.PrivateKey, id string) (*escrow.ReleaseReceipt, error) {
	tx := BuildReleasePaymentTx(id)
	if err := tx.ReleasePaymentMsg.Validate(); err != nil {
		return nil, err
	}
	if signer != nil {
		if err := c.sign(tx, signer); err != nil {
			return nil, err
		}
	}
	res, err := c.BroadcastTx(tx)
	if err != nil {
		return nil, err
	}
	var receipt escrow.ReleaseReceipt
	if err := proto.Unmarshal(res.Data, &receipt); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &receipt, nil
}

func (c *Client) sign(tx *settled.Tx, key ed25519.PrivateKey) error {
	chainID, err := c.ChainID()
	if err != nil {
		return err
	}
	return SignTx(tx, key, chainID)
}

// GetEscrow returns the escrow with given id. A missing escrow is reported
// as errors.ErrNotFound.
func (c *Client) GetEscrow(id string) (*EscrowResponse, error) {
	resp, err := c.AbciQuery("/escrows", []byte(id))
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %q", id)
	}
	var e escrow.Escrow
	if err := proto.Unmarshal(resp.Models[0].Value, &e); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	if e.Id != id {
		return nil, errors.Wrapf(errors.ErrInvalidState, "queried %q, returned %q", id, e.Id)
	}
	return &EscrowResponse{Escrow: &e, Height: resp.Height}, nil
}

// EscrowsByBeneficiary returns all escrows paying to given principal.
func (c *Client) EscrowsByBeneficiary(p settle.Principal) ([]*escrow.Escrow, error) {
	return c.escrows("/escrows/beneficiary", p)
}

// EscrowsByPayer returns all escrows funded by given principal.
func (c *Client) EscrowsByPayer(p settle.Principal) ([]*escrow.Escrow, error) {
	return c.escrows("/escrows/payer", p)
}

func (c *Client) escrows(path string, p settle.Principal) ([]*escrow.Escrow, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	resp, err := c.AbciQuery(path, []byte(p))
	if err != nil {
		return nil, err
	}
	out := make([]*escrow.Escrow, 0, len(resp.Models))
	for _, m := range resp.Models {
		var e escrow.Escrow
		if err := proto.Unmarshal(m.Value, &e); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
		}
		out = append(out, &e)
	}
	return out, nil
}

// GetState returns the admin configuration of the escrow extension.
func (c *Client) GetState() (*escrow.AdminConfig, error) {
	resp, err := c.AbciQuery("/escrows/state", nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "escrow configuration")
	}
	var conf escrow.AdminConfig
	if err := proto.Unmarshal(resp.Models[0].Value, &conf); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &conf, nil
}
