package app

import (
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
)

// BaseApp is a complete ABCI application. StoreApp answers the state and
// query calls. Transactions are decoded and passed to the handler, which is
// usually a decorator chain ending in a Router.
type BaseApp struct {
	*StoreApp
	decoder settle.TxDecoder
	handler settle.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application running every transaction through
// handler. In debug mode internal error details are returned to clients.
func NewBaseApp(store *StoreApp, decoder settle.TxDecoder, handler settle.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// CheckTx implements abci.Application. It runs against the check cache and
// never changes the state of the next block.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", txBytes)
	if err != nil {
		return settle.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return settle.CheckOrError(res, err, b.debug)
}

// DeliverTx implements abci.Application.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", txBytes)
	if err != nil {
		return settle.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return settle.DeliverOrError(res, err, b.debug)
}

// prepare decodes the transaction and returns the context of the current
// block, tagged for logging. A decoder panic is returned as ErrPanic.
func (b BaseApp) prepare(call string, txBytes []byte) (ctx settle.Context, tx settle.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(txBytes); err != nil {
		return nil, nil, err
	}
	ctx = settle.WithLogInfo(b.BlockContext(), "call", call, "path", settle.GetPath(tx))
	return ctx, tx, nil
}
