package client

import (
	"github.com/gogo/protobuf/proto"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/app"
	settled "github.com/theconstruct/settle/cmd/settled/app"
	"github.com/theconstruct/settle/errors"
)

// Client is a tendermint client wrapped to provide
// simple access to the data structures used in settled.
type Client struct {
	conn Conn
}

// NewClient wraps a Client around an existing
// tendermint client connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// ChainID returns the chain id from the genesis of the node.
func (c *Client) ChainID() (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrap(errors.ErrNetwork, err.Error())
	}
	return gen.Genesis.ChainID, nil
}

// Height returns the latest block height known to the node.
func (c *Client) Height() (int64, error) {
	status, err := c.conn.Status()
	if err != nil {
		return -1, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// AbciResponse contains a query result:
// a (possibly empty) list of key-value pairs, and the height
// at which it queried
type AbciResponse struct {
	Models []settle.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc,
// verifies if it is an error or empty, and if there is
// data pulls out the ResultSets from keys and values into
// a useful AbciResponse struct
func (c *Client) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	q, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return out, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	resp := q.Response
	if resp.IsErr() {
		return out, errors.Wrap(errors.ABCIError(resp.Code, resp.Log), path)
	}
	out.Height = resp.Height

	if len(resp.Key) == 0 {
		return out, nil
	}
	out.Models, err = app.ParseResults(resp.Key, resp.Value)
	return out, err
}

// TxResult is the outcome of a committed transaction.
type TxResult struct {
	Height int64
	Hash   []byte
	Data   []byte
	Tags   map[string]string
}

// BroadcastTx serializes a signed transaction and writes it to the
// blockchain. It returns when the tx is committed.
//
// A rejected transaction is returned as an error rebuilt from the ABCI code,
// so it can be tested with the Is method of the root errors.
func (c *Client) BroadcastTx(tx *settled.Tx) (*TxResult, error) {
	data, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	res, err := c.conn.BroadcastTxCommit(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	if res.CheckTx.IsErr() {
		return nil, errors.Wrap(errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log), "check tx")
	}
	if res.DeliverTx.IsErr() {
		return nil, errors.Wrap(errors.ABCIError(res.DeliverTx.Code, res.DeliverTx.Log), "deliver tx")
	}
	return &TxResult{
		Height: res.Height,
		Hash:   res.Hash,
		Data:   res.DeliverTx.Data,
		Tags:   tagMap(res.DeliverTx),
	}, nil
}

func tagMap(res abci.ResponseDeliverTx) map[string]string {
	tags := make(map[string]string, len(res.Tags))
	for _, t := range res.Tags {
		tags[string(t.Key)] = string(t.Value)
	}
	return tags
}
