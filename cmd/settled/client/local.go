package client

import (
	"crypto/sha256"
	"sync"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// LocalConn talks to an application running in the same process, without a
// tendermint node in front of it. Every broadcast transaction is committed
// in its own block, stamped with the time returned by the clock.
//
// Use it for tests and offline tooling only.
type LocalConn struct {
	mu      sync.Mutex
	app     abci.Application
	chainID string
	height  int64
	clock   func() time.Time
}

var _ Conn = (*LocalConn)(nil)

// NewLocalConnection initializes the chain of the given application with
// the app state and returns a connection to it.
func NewLocalConnection(app abci.Application, chainID string, appState []byte, clock func() time.Time) *LocalConn {
	app.InitChain(abci.RequestInitChain{
		Time:          clock(),
		ChainId:       chainID,
		AppStateBytes: appState,
	})
	return &LocalConn{app: app, chainID: chainID, clock: clock}
}

// ABCIQuery implements Conn.
func (c *LocalConn) ABCIQuery(path string, data common.HexBytes) (*ctypes.ResultABCIQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

// BroadcastTxCommit implements Conn. A transaction rejected by CheckTx is
// not delivered, but the block is still committed.
func (c *LocalConn) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := sha256.Sum256(tx)
	out := &ctypes.ResultBroadcastTxCommit{Hash: hash[:]}

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: c.chainID,
		Height:  c.height,
		Time:    c.clock(),
	}})
	out.CheckTx = c.app.CheckTx(tx)
	if !out.CheckTx.IsErr() {
		out.DeliverTx = c.app.DeliverTx(tx)
		out.Height = c.height
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return out, nil
}

// Genesis implements Conn. Only the chain id is filled in.
func (c *LocalConn) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{Genesis: &tmtypes.GenesisDoc{ChainID: c.chainID}}, nil
}

// Status implements Conn. Only the latest height is filled in.
func (c *LocalConn) Status() (*ctypes.ResultStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ctypes.ResultStatus{SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height}}, nil
}
