package escrow

import (
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/gconf"
	"github.com/theconstruct/settle/x"
)

const (
	// ConfigPkg is the name the AdminConfig is stored and queried under.
	ConfigPkg = "escrow"

	createEscrowCost   int64 = 300
	releasePaymentCost int64 = 0

	actionCreateEscrow   = "create_escrow"
	actionReleasePayment = "release_payment"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r settle.Registry, auth x.Authenticator) {
	machine := NewMachine(NewLedger())
	r.Handle(&CreateEscrowMsg{}, CreateEscrowHandler{auth: auth, machine: machine})
	r.Handle(&ReleasePaymentMsg{}, ReleasePaymentHandler{machine: machine})
}

// RegisterQuery will register the escrows as "/escrows" and the
// configuration as "/escrows/state"
func RegisterQuery(qr settle.QueryRouter) {
	NewLedger().Register("escrows", qr)
	qr.Register("/escrows/state", gconf.NewQueryHandler(ConfigPkg))
}

// LoadConfig reads the AdminConfig from the store.
func LoadConfig(db gconf.ReadStore) (*AdminConfig, error) {
	var conf AdminConfig
	if err := gconf.Load(db, ConfigPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load escrow configuration")
	}
	return &conf, nil
}

// CreateEscrowHandler opens escrows on behalf of the owner.
type CreateEscrowHandler struct {
	auth    x.Authenticator
	machine Machine
}

var _ settle.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateEscrowHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	conf, req, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.machine.PrepareCreate(db, conf, *req); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores the escrow if all preconditions are met.
func (h CreateEscrowHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	conf, req, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	receipt, err := h.machine.Create(db, conf, *req)
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(receipt)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &settle.DeliverResult{
		Data: data,
		Tags: []common.KVPair{
			settle.Tag("action", actionCreateEscrow),
			settle.Tag("id", receipt.Id),
			settle.Tag("beneficiary", receipt.Beneficiary),
			settle.Tag("maturity", strconv.FormatInt(receipt.Maturity, 10)),
			settle.Tag("funds", coin.Coins(receipt.Funds).String()),
		},
	}, nil
}

// load does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) load(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*AdminConfig, *CreateRequest, error) {
	var msg CreateEscrowMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, nil, err
	}
	req := &CreateRequest{
		ID:          msg.Id,
		Beneficiary: settle.Principal(msg.Beneficiary),
		Maturity:    settle.UnixTime(msg.Maturity),
		Funds:       msg.Funds,
		Caller:      x.MainSigner(ctx, h.auth),
		Now:         now,
	}
	return conf, req, nil
}

// ReleasePaymentHandler releases matured escrows. Anyone may send it.
type ReleasePaymentHandler struct {
	machine Machine
}

var _ settle.Handler = ReleasePaymentHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ReleasePaymentHandler) Check(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.CheckResult, error) {
	msg, now, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.machine.PrepareRelease(db, msg.Id, now); err != nil {
		return nil, err
	}
	return &settle.CheckResult{GasAllocated: releasePaymentCost}, nil
}

// Deliver marks the escrow released and returns the settlement directives
// in the receipt.
func (h ReleasePaymentHandler) Deliver(ctx settle.Context, db settle.KVStore, tx settle.Tx) (*settle.DeliverResult, error) {
	msg, now, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	receipt, err := h.machine.Release(db, msg.Id, now)
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(receipt)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &settle.DeliverResult{
		Data: data,
		Tags: []common.KVPair{
			settle.Tag("action", actionReleasePayment),
			settle.Tag("id", receipt.Id),
			settle.Tag("recipient", receipt.Recipient),
		},
	}, nil
}

func (h ReleasePaymentHandler) load(ctx settle.Context, tx settle.Tx) (*ReleasePaymentMsg, settle.UnixTime, error) {
	var msg ReleasePaymentMsg
	if err := settle.LoadMsg(tx, &msg); err != nil {
		return nil, 0, errors.Wrap(err, "load msg")
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, 0, err
	}
	return &msg, now, nil
}

// blockNow returns the time of the block being processed.
func blockNow(ctx settle.Context) (settle.UnixTime, error) {
	now, ok := settle.BlockTime(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block time not present in context")
	}
	return settle.AsUnixTime(now), nil
}
