package escrow

import (
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
)

// Machine applies the escrow lifecycle rules on top of a Ledger.
//
// Every check is done before the first write, so a failing call never
// modifies the store. The Prepare methods run the checks only and are used
// by the check path of the handlers.
type Machine struct {
	ledger Ledger
}

// NewMachine returns a state machine working on given ledger.
func NewMachine(ledger Ledger) Machine {
	return Machine{ledger: ledger}
}

// CreateRequest carries the arguments of an escrow creation.
type CreateRequest struct {
	ID          string
	Beneficiary settle.Principal
	Maturity    settle.UnixTime
	Funds       coin.Coins
	Caller      settle.Principal
	Now         settle.UnixTime
}

// PrepareCreate runs all creation checks in order and returns the record
// that Create would store.
func (m Machine) PrepareCreate(db settle.ReadOnlyKVStore, conf *AdminConfig, req CreateRequest) (*Escrow, error) {
	if req.Caller == "" || !req.Caller.Equals(settle.Principal(conf.Owner)) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the owner can create an escrow")
	}

	switch exists, err := m.ledger.Exists(db, req.ID); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(ErrAlreadyExists, "escrow %q", req.ID)
	}

	if err := req.Beneficiary.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidBeneficiary, err.Error())
	}

	if req.Maturity <= req.Now+settle.UnixTime(conf.MinLockSeconds) {
		return nil, errors.Wrapf(ErrInvalidEndTime, "maturity must be later than %d", req.Now+settle.UnixTime(conf.MinLockSeconds))
	}

	if err := req.Funds.Validate(); err != nil {
		return nil, errors.Wrap(ErrNoFundsProvided, err.Error())
	}
	if req.Funds.IsEmpty() || !req.Funds.IsPositive() {
		return nil, errors.Wrap(ErrNoFundsProvided, "funds must be positive")
	}

	return &Escrow{
		Id:          req.ID,
		Payer:       req.Caller.String(),
		Beneficiary: req.Beneficiary.String(),
		Funds:       req.Funds.Clone(),
		Maturity:    int64(req.Maturity),
		Released:    false,
	}, nil
}

// Create opens a new escrow and returns its creation receipt.
func (m Machine) Create(db settle.KVStore, conf *AdminConfig, req CreateRequest) (*CreateReceipt, error) {
	e, err := m.PrepareCreate(db, conf, req)
	if err != nil {
		return nil, err
	}
	if err := m.ledger.Put(db, e); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &CreateReceipt{
		Id:          e.Id,
		Beneficiary: e.Beneficiary,
		Maturity:    e.Maturity,
		Funds:       coin.Coins(e.Funds).Clone(),
	}, nil
}

// PrepareRelease runs all release checks in order and returns the stored
// escrow.
func (m Machine) PrepareRelease(db settle.ReadOnlyKVStore, id string, now settle.UnixTime) (*Escrow, error) {
	e, err := m.ledger.Get(db, id)
	if err != nil {
		return nil, err
	}
	if e.Released {
		return nil, errors.Wrapf(ErrAlreadyReleased, "escrow %q", id)
	}
	if now < e.MaturityTime() {
		return nil, errors.Wrapf(ErrNotMatured, "escrow %q matures at %d", id, e.Maturity)
	}
	return e, nil
}

// Release marks a matured escrow as released and returns the directives
// paying all funds to the beneficiary.
func (m Machine) Release(db settle.KVStore, id string, now settle.UnixTime) (*ReleaseReceipt, error) {
	e, err := m.PrepareRelease(db, id, now)
	if err != nil {
		return nil, err
	}
	e.Released = true
	if err := m.ledger.Put(db, e); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	recipient := settle.Principal(e.Beneficiary)
	return &ReleaseReceipt{
		Id:         e.Id,
		Recipient:  recipient.String(),
		Directives: Emit(recipient, e.Funds),
	}, nil
}
