package settletest

import (
	"context"
	"time"

	"github.com/theconstruct/settle"
)

// ChainID is used by all test contexts.
const ChainID = "settle-test"

// Context returns a context as the application would build it for a block
// at given height and time.
func Context(height int64, now time.Time) settle.Context {
	ctx := context.Background()
	ctx = settle.WithHeight(ctx, height)
	ctx = settle.WithBlockTime(ctx, now)
	ctx = settle.WithChainID(ctx, ChainID)
	return ctx
}
