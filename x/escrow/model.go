package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/orm"
)

const (
	// maxIDLength is the longest escrow id accepted, in bytes.
	maxIDLength = 128

	// DefaultMinLock is the minimum time, in seconds, between the creation
	// of an escrow and its maturity, unless the genesis says otherwise.
	DefaultMinLock int64 = 300
)

// Escrow is a deposit of funds for a beneficiary, locked until maturity.
type Escrow struct {
	Id          string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Payer       string       `protobuf:"bytes,2,opt,name=payer,proto3" json:"payer"`
	Beneficiary string       `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary"`
	Funds       []*coin.Coin `protobuf:"bytes,4,rep,name=funds,proto3" json:"funds"`
	Maturity    int64        `protobuf:"varint,5,opt,name=maturity,proto3" json:"maturity"`
	Released    bool         `protobuf:"varint,6,opt,name=released,proto3" json:"released"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow record is consistent.
func (m *Escrow) Validate() error {
	if err := validateID(m.Id); err != nil {
		return err
	}
	if err := settle.Principal(m.Payer).Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := settle.Principal(m.Beneficiary).Validate(); err != nil {
		return errors.Wrap(ErrInvalidBeneficiary, err.Error())
	}
	if err := validateFunds(m.Funds); err != nil {
		return err
	}
	if m.Maturity <= 0 {
		return errors.Wrap(ErrInvalidEndTime, "maturity required")
	}
	return nil
}

// MaturityTime returns the maturity as unix time.
func (m *Escrow) MaturityTime() settle.UnixTime {
	return settle.UnixTime(m.Maturity)
}

// Copy returns a deep copy of the escrow.
func (m *Escrow) Copy() *Escrow {
	cpy := *m
	cpy.Funds = coin.Coins(m.Funds).Clone()
	return &cpy
}

// AdminConfig is the configuration of the escrow extension. It is set once
// at genesis and never changes afterwards.
type AdminConfig struct {
	// Owner is the only principal allowed to create escrows.
	Owner string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// MinLockSeconds is the minimum lock period of a new escrow.
	MinLockSeconds int64 `protobuf:"varint,2,opt,name=min_lock_seconds,json=minLockSeconds,proto3" json:"min_lock"`
}

func (m *AdminConfig) Reset()         { *m = AdminConfig{} }
func (m *AdminConfig) String() string { return proto.CompactTextString(m) }
func (*AdminConfig) ProtoMessage()    {}

// Validate ensures the configuration can be used. The owner signs creation
// requests, so it must be an address.
func (m *AdminConfig) Validate() error {
	owner := settle.Principal(m.Owner)
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !owner.IsAddress() {
		return errors.Wrapf(errors.ErrInvalidInput, "owner %q is not an address", m.Owner)
	}
	if m.MinLockSeconds < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "negative min lock")
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return errors.Wrap(errors.ErrEmpty, "escrow id")
	}
	if len(id) > maxIDLength {
		return errors.Wrapf(errors.ErrInvalidInput, "escrow id longer than %d bytes", maxIDLength)
	}
	return nil
}

func validateFunds(funds []*coin.Coin) error {
	cs := coin.Coins(funds)
	if cs.IsEmpty() {
		return errors.Wrap(ErrNoFundsProvided, "empty")
	}
	if err := cs.Validate(); err != nil {
		return errors.Wrap(err, "funds")
	}
	if !cs.IsPositive() {
		return errors.Wrap(ErrNoFundsProvided, "amounts must be positive")
	}
	return nil
}
