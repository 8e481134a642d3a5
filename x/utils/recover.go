package utils

import (
	"fmt"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
)

// Recovery stops a panic in any handler or decorator below it. The request
// fails with ErrPanic and the panic is logged with the request path, so a
// single bad transaction cannot halt the node.
type Recovery struct{}

var _ settle.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check implements settle.Decorator.
func (Recovery) Check(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Checker) (_ *settle.CheckResult, err error) {
	defer recoverRequest(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver implements settle.Decorator.
func (Recovery) Deliver(ctx settle.Context, store settle.KVStore, tx settle.Tx, next settle.Deliverer) (_ *settle.DeliverResult, err error) {
	defer recoverRequest(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverRequest must be deferred directly, recover only works there.
func recoverRequest(ctx settle.Context, tx settle.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	settle.GetLogger(ctx).Error("request panic",
		"path", settle.GetPath(tx),
		"panic", fmt.Sprint(r))
}
