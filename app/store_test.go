package app

import (
	"context"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest"
	"github.com/theconstruct/settle/settletest/assert"
	"github.com/theconstruct/settle/store/iavl"
)

// keyInitializer writes the genesis "greeting" option under the greeting key.
type keyInitializer struct{}

func (keyInitializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	var greeting string
	if err := opts.ReadOptions("greeting", &greeting); err != nil {
		return err
	}
	return db.Set([]byte("greeting"), []byte(greeting))
}

func rawQueries() settle.QueryRouter {
	qr := settle.NewQueryRouter()
	qr.Register("/raw", settle.QueryHandlerFunc(func(db settle.ReadOnlyKVStore, mod string, data []byte) ([]settle.Model, error) {
		v, err := db.Get(data)
		if err != nil || v == nil {
			return nil, err
		}
		return []settle.Model{settle.Pair(data, v)}, nil
	}))
	return qr
}

func TestStoreAppLifecycle(t *testing.T) {
	commit := iavl.MockCommitStore()
	sa := NewStoreApp("test-app", commit, rawQueries(), context.Background()).
		WithInit(keyInitializer{})

	sa.InitChain(abci.RequestInitChain{
		ChainId:       "settle-chain",
		AppStateBytes: []byte(`{"greeting": "hello"}`),
	})
	assert.Equal(t, "settle-chain", sa.GetChainID())

	// the genesis cannot be loaded twice
	assert.Panics(t, func() {
		sa.InitChain(abci.RequestInitChain{ChainId: "other-chain", AppStateBytes: []byte(`{}`)})
	})

	blockTime := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	sa.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: blockTime}})
	height, _ := settle.GetHeight(sa.BlockContext())
	assert.Equal(t, int64(1), height)
	now, ok := settle.BlockTime(sa.BlockContext())
	assert.Equal(t, true, ok)
	assert.Equal(t, blockTime, now)
	assert.Equal(t, "settle-chain", settle.GetChainID(sa.BlockContext()))

	// nothing is visible before the commit
	res := sa.Query(abci.RequestQuery{Path: "/raw", Data: []byte("greeting")})
	assert.Equal(t, uint32(0), res.Code)
	models, err := ParseResults(res.Key, res.Value)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))

	sa.EndBlock(abci.RequestEndBlock{})
	cres := sa.Commit()
	if len(cres.Data) == 0 {
		t.Fatal("empty app hash")
	}

	res = sa.Query(abci.RequestQuery{Path: "/raw", Data: []byte("greeting")})
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, int64(1), res.Height)
	models, err = ParseResults(res.Key, res.Value)
	assert.Nil(t, err)
	assert.Equal(t, []settle.Model{settle.Pair([]byte("greeting"), []byte("hello"))}, models)

	info := sa.Info(abci.RequestInfo{})
	assert.Equal(t, "test-app", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)

	res = sa.Query(abci.RequestQuery{Path: "/missing"})
	assert.Equal(t, errors.ErrUnknownRequest.ABCICode(), res.Code)
}

func TestCheckSeesGenesisBeforeFirstCommit(t *testing.T) {
	genesisTime := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	sa := NewStoreApp("test-app", iavl.MockCommitStore(), rawQueries(), context.Background()).
		WithInit(keyInitializer{})
	sa.InitChain(abci.RequestInitChain{
		Time:          genesisTime,
		ChainId:       "settle-chain",
		AppStateBytes: []byte(`{"greeting": "hello"}`),
	})

	// a transaction may be checked before the first block starts
	now, ok := settle.BlockTime(sa.BlockContext())
	assert.Equal(t, true, ok)
	assert.Equal(t, genesisTime, now)
	got, err := sa.CheckStore().Get([]byte("greeting"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("hello"), got)

	sa.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: genesisTime}})
	got, err = sa.CheckStore().Get([]byte("greeting"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("hello"), got)

	// check writes never reach the committed state
	assert.Nil(t, sa.CheckStore().Set([]byte("checked"), []byte("yes")))
	sa.Commit()
	res := sa.Query(abci.RequestQuery{Path: "/raw", Data: []byte("checked")})
	models, err := ParseResults(res.Key, res.Value)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(models))
	res = sa.Query(abci.RequestQuery{Path: "/raw", Data: []byte("greeting")})
	models, err = ParseResults(res.Key, res.Value)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))

	got, err = sa.CheckStore().Get([]byte("greeting"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestStoreAppRequiresAppState(t *testing.T) {
	sa := NewStoreApp("test-app", iavl.MockCommitStore(), rawQueries(), context.Background())
	assert.Panics(t, func() {
		sa.InitChain(abci.RequestInitChain{ChainId: "settle-chain"})
	})
}

func TestBaseApp(t *testing.T) {
	decoder := func(raw []byte) (settle.Tx, error) {
		switch string(raw) {
		case "write":
			return &settletest.Tx{Msg: &settletest.Msg{RoutePath: "test/write"}}, nil
		case "fail":
			return &settletest.Tx{Msg: &settletest.Msg{RoutePath: "test/fail"}}, nil
		case "panic":
			panic("cannot decode")
		}
		return nil, errors.Wrap(errors.ErrInvalidInput, "unknown tx")
	}
	router := NewRouter()
	router.Handle(&settletest.Msg{RoutePath: "test/write"}, settletest.WriteHandler{
		Key:   []byte("written"),
		Value: []byte("yes"),
	})
	router.Handle(&settletest.Msg{RoutePath: "test/fail"}, &settletest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	})

	sa := NewStoreApp("test-app", iavl.MockCommitStore(), rawQueries(), context.Background())
	ba := NewBaseApp(sa, decoder, router, false)
	ba.InitChain(abci.RequestInitChain{ChainId: "settle-chain", AppStateBytes: []byte(`{}`)})
	ba.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	chres := ba.CheckTx([]byte("write"))
	assert.Equal(t, uint32(0), chres.Code)
	dres := ba.DeliverTx([]byte("write"))
	assert.Equal(t, uint32(0), dres.Code)

	dres = ba.DeliverTx([]byte("fail"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), dres.Code)
	chres = ba.CheckTx([]byte("fail"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), chres.Code)

	dres = ba.DeliverTx([]byte("garbage"))
	assert.Equal(t, errors.ErrInvalidInput.ABCICode(), dres.Code)
	dres = ba.DeliverTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), dres.Code)

	ba.Commit()
	res := ba.Query(abci.RequestQuery{Path: "/raw", Data: []byte("written")})
	var set ResultSet
	assert.Nil(t, proto.Unmarshal(res.Value, &set))
	assert.Equal(t, [][]byte{[]byte("yes")}, set.Results)
}
