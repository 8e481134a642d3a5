package client

import (
	"errors"
	"time"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
	settled "github.com/theconstruct/settle/cmd/settled/app"
)

const testChainID = "settle-client"

// testConn is a local connection with a block time controlled by the test
// and a switch making every call fail like an unreachable node.
type testConn struct {
	*LocalConn
	now  time.Time
	down bool
}

var _ Conn = (*testConn)(nil)

var errConnRefused = errors.New("connection refused")

func newTestConn(owner string, now time.Time) (*testConn, error) {
	app, err := settled.GenerateApp("", log.NewNopLogger(), false)
	if err != nil {
		return nil, err
	}
	state, err := settled.GenInitOptions([]string{owner})
	if err != nil {
		return nil, err
	}
	c := &testConn{now: now}
	c.LocalConn = NewLocalConnection(app, testChainID, state, func() time.Time { return c.now })
	return c, nil
}

func (c *testConn) ABCIQuery(path string, data common.HexBytes) (*ctypes.ResultABCIQuery, error) {
	if c.down {
		return nil, errConnRefused
	}
	return c.LocalConn.ABCIQuery(path, data)
}

func (c *testConn) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	if c.down {
		return nil, errConnRefused
	}
	return c.LocalConn.BroadcastTxCommit(tx)
}

func (c *testConn) Genesis() (*ctypes.ResultGenesis, error) {
	if c.down {
		return nil, errConnRefused
	}
	return c.LocalConn.Genesis()
}

func (c *testConn) Status() (*ctypes.ResultStatus, error) {
	if c.down {
		return nil, errConnRefused
	}
	return c.LocalConn.Status()
}
