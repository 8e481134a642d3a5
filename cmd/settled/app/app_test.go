package settled_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle"
	settleApp "github.com/theconstruct/settle/app"
	settled "github.com/theconstruct/settle/cmd/settled/app"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest"
	"github.com/theconstruct/settle/settletest/assert"
	"github.com/theconstruct/settle/x/escrow"
	"github.com/theconstruct/settle/x/sigs"
	"golang.org/x/crypto/ed25519"
)

const chainID = "settle-e2e"

var genesisTime = time.Unix(1700000000, 0).UTC()

type fixture struct {
	app    abci.Application
	owner  ed25519.PrivateKey
	height int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	owner := settletest.NewKey()

	application, err := settled.GenerateApp("", log.NewNopLogger(), false)
	assert.Nil(t, err)

	state, err := settled.GenInitOptions([]string{settletest.KeyPrincipal(owner).String(), "300"})
	assert.Nil(t, err)
	application.InitChain(abci.RequestInitChain{
		Time:          genesisTime,
		ChainId:       chainID,
		AppStateBytes: state,
	})
	return &fixture{app: application, owner: owner}
}

// block runs a single block at given time with the given transactions.
// Every transaction is checked before it is delivered.
func (f *fixture) block(t *testing.T, now time.Time, txs ...[]byte) ([]abci.ResponseCheckTx, []abci.ResponseDeliverTx) {
	t.Helper()
	f.height++
	f.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: chainID,
		Height:  f.height,
		Time:    now,
	}})
	var (
		checks   []abci.ResponseCheckTx
		delivers []abci.ResponseDeliverTx
	)
	for _, tx := range txs {
		checks = append(checks, f.app.CheckTx(tx))
		delivers = append(delivers, f.app.DeliverTx(tx))
	}
	f.app.EndBlock(abci.RequestEndBlock{Height: f.height})
	cres := f.app.Commit()
	assert.Equal(t, true, len(cres.Data) != 0)
	return checks, delivers
}

// deliver runs a block with a single transaction and returns the deliver
// result as an error, if any.
func (f *fixture) deliver(t *testing.T, now time.Time, tx []byte) (abci.ResponseDeliverTx, error) {
	t.Helper()
	checks, delivers := f.block(t, now, tx)
	// check and deliver must agree
	assert.Equal(t, checks[0].Code, delivers[0].Code)
	res := delivers[0]
	return res, errors.ABCIError(res.Code, res.Log)
}

func signedTx(t *testing.T, msg settle.Msg, keys ...ed25519.PrivateKey) []byte {
	t.Helper()
	tx, err := settled.NewTx(msg)
	assert.Nil(t, err)
	for _, k := range keys {
		sig, err := sigs.SignTx(k, tx, chainID)
		assert.Nil(t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	bz, err := proto.Marshal(tx)
	assert.Nil(t, err)
	return bz
}

func createMsg(id string, maturity time.Time, funds ...*coin.Coin) *escrow.CreateEscrowMsg {
	return &escrow.CreateEscrowMsg{
		Id:          id,
		Beneficiary: "bob",
		Maturity:    maturity.Unix(),
		Funds:       funds,
	}
}

func (f *fixture) queryEscrow(t *testing.T, id string) *escrow.Escrow {
	t.Helper()
	res := f.app.Query(abci.RequestQuery{Path: "/escrows", Data: []byte(id)})
	assert.Equal(t, uint32(0), res.Code)
	var e escrow.Escrow
	assert.Nil(t, settleApp.UnmarshalOneResult(res.Value, &e))
	return &e
}

func TestScenarios(t *testing.T) {
	f := newFixture(t)
	now := genesisTime

	// A: the owner creates an escrow
	res, err := f.deliver(t, now, signedTx(t, createMsg("e1", now.Add(301*time.Second), coin.NewCoinp(100, "usd")), f.owner))
	assert.Nil(t, err)
	var created escrow.CreateReceipt
	assert.Nil(t, proto.Unmarshal(res.Data, &created))
	assert.Equal(t, "e1", created.Id)
	assert.Equal(t, false, f.queryEscrow(t, "e1").Released)

	// B: release before maturity
	_, err = f.deliver(t, now.Add(time.Second), signedTx(t, &escrow.ReleasePaymentMsg{Id: "e1"}))
	assert.IsErr(t, escrow.ErrNotMatured, err)
	assert.Equal(t, true, escrow.IsTemporary(err))
	assert.Equal(t, false, f.queryEscrow(t, "e1").Released)

	// C: release at maturity, by anyone
	res, err = f.deliver(t, now.Add(301*time.Second), signedTx(t, &escrow.ReleasePaymentMsg{Id: "e1"}, settletest.NewKey()))
	assert.Nil(t, err)
	var released escrow.ReleaseReceipt
	assert.Nil(t, proto.Unmarshal(res.Data, &released))
	assert.Equal(t, []*escrow.Directive{{Recipient: "bob", Coin: coin.NewCoinp(100, "usd")}}, released.Directives)
	assert.Equal(t, "action=release_payment;id=e1;recipient=bob", tagsAsString(res.Tags))
	assert.Equal(t, true, f.queryEscrow(t, "e1").Released)

	// D: second release
	_, err = f.deliver(t, now.Add(400*time.Second), signedTx(t, &escrow.ReleasePaymentMsg{Id: "e1"}))
	assert.IsErr(t, escrow.ErrAlreadyReleased, err)

	// E: id reuse after release
	_, err = f.deliver(t, now.Add(401*time.Second), signedTx(t, createMsg("e1", now.Add(2000*time.Second), coin.NewCoinp(1, "usd")), f.owner))
	assert.IsErr(t, escrow.ErrAlreadyExists, err)

	// F: maturity within the lock period
	later := now.Add(402 * time.Second)
	_, err = f.deliver(t, later, signedTx(t, createMsg("e2", later.Add(time.Second), coin.NewCoinp(1, "usd")), f.owner))
	assert.IsErr(t, escrow.ErrInvalidEndTime, err)
	resq := f.app.Query(abci.RequestQuery{Path: "/escrows", Data: []byte("e2")})
	assert.Equal(t, uint32(0), resq.Code)
	assert.Equal(t, 0, len(resq.Key))
}

func TestCreateAuthorization(t *testing.T) {
	f := newFixture(t)
	now := genesisTime
	msg := createMsg("e1", now.Add(time.Hour), coin.NewCoinp(1, "usd"))

	_, err := f.deliver(t, now, signedTx(t, msg))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = f.deliver(t, now, signedTx(t, msg, settletest.NewKey()))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// a signature made for another chain is rejected
	tx, err := settled.NewTx(msg)
	assert.Nil(t, err)
	sig, err := sigs.SignTx(f.owner, tx, "another-chain")
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := proto.Marshal(tx)
	assert.Nil(t, err)
	_, err = f.deliver(t, now, bz)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := f.deliver(t, now, signedTx(t, msg, f.owner))
	assert.Nil(t, err)
	want := fmt.Sprintf("action=create_escrow;id=e1;beneficiary=bob;maturity=%d;funds=1usd", now.Add(time.Hour).Unix())
	assert.Equal(t, want, tagsAsString(res.Tags))

	e := f.queryEscrow(t, "e1")
	assert.Equal(t, settletest.KeyPrincipal(f.owner).String(), e.Payer)
}

func TestMalformedTransactions(t *testing.T) {
	f := newFixture(t)

	cases := map[string]struct {
		tx      []byte
		wantErr *errors.Error
	}{
		"not a transaction": {
			tx:      []byte("garbage"),
			wantErr: errors.ErrInvalidInput,
		},
		"no message": {
			tx:      mustMarshal(t, &settled.Tx{}),
			wantErr: errors.ErrInvalidMsg,
		},
		"two messages": {
			tx: mustMarshal(t, &settled.Tx{
				CreateEscrowMsg:   createMsg("e1", genesisTime.Add(time.Hour), coin.NewCoinp(1, "usd")),
				ReleasePaymentMsg: &escrow.ReleasePaymentMsg{Id: "e1"},
			}),
			wantErr: errors.ErrInvalidMsg,
		},
		"empty id": {
			tx:      mustMarshal(t, &settled.Tx{ReleasePaymentMsg: &escrow.ReleasePaymentMsg{}}),
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := f.deliver(t, genesisTime, tc.tx)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestQueries(t *testing.T) {
	f := newFixture(t)
	now := genesisTime
	_, delivers := f.block(t, now,
		signedTx(t, createMsg("a1", now.Add(time.Hour), coin.NewCoinp(1, "usd")), f.owner),
		signedTx(t, createMsg("a2", now.Add(time.Hour), coin.NewCoinp(2, "usd")), f.owner),
	)
	for _, d := range delivers {
		assert.Equal(t, uint32(0), d.Code)
	}

	res := f.app.Query(abci.RequestQuery{Path: "/escrows/beneficiary", Data: []byte("bob")})
	assert.Equal(t, uint32(0), res.Code)
	models, err := settleApp.ParseResults(res.Key, res.Value)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(models))
	assert.Equal(t, f.height, res.Height)

	res = f.app.Query(abci.RequestQuery{Path: "/escrows?prefix", Data: []byte("a")})
	assert.Equal(t, uint32(0), res.Code)
	models, err = settleApp.ParseResults(res.Key, res.Value)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(models))

	res = f.app.Query(abci.RequestQuery{Path: "/escrows/state"})
	assert.Equal(t, uint32(0), res.Code)
	var conf escrow.AdminConfig
	assert.Nil(t, settleApp.UnmarshalOneResult(res.Value, &conf))
	assert.Equal(t, settletest.KeyPrincipal(f.owner).String(), conf.Owner)
	assert.Equal(t, int64(300), conf.MinLockSeconds)

	res = f.app.Query(abci.RequestQuery{Path: "/wallets"})
	assert.IsErr(t, errors.ErrUnknownRequest, errors.ABCIError(res.Code, res.Log))
}

func TestGenInitOptions(t *testing.T) {
	owner := settle.NewPrincipal([]byte("owner"))
	raw, err := settled.GenInitOptions([]string{owner.String(), "60"})
	assert.Nil(t, err)
	var state struct {
		Conf struct {
			Escrow escrow.AdminConfig `json:"escrow"`
		} `json:"conf"`
	}
	assert.Nil(t, json.Unmarshal(raw, &state))
	assert.Equal(t, owner.String(), state.Conf.Escrow.Owner)
	assert.Equal(t, int64(60), state.Conf.Escrow.MinLockSeconds)

	_, err = settled.GenInitOptions([]string{owner.String(), "soon"})
	assert.IsErr(t, errors.ErrInvalidInput, err)
	_, err = settled.GenInitOptions([]string{"Not Valid"})
	assert.IsErr(t, errors.ErrInvalidInput, err)
	// creation requests are signed, so the owner cannot be an account name
	_, err = settled.GenInitOptions([]string{"owner"})
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestExamplesAreValid(t *testing.T) {
	for _, ex := range settled.Examples() {
		if v, ok := ex.Obj.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				t.Fatalf("%s: %s", ex.Filename, err)
			}
		}
		bz, err := proto.Marshal(ex.Obj)
		assert.Nil(t, err)
		assert.Equal(t, true, len(bz) != 0)
	}
}

func mustMarshal(t *testing.T, tx *settled.Tx) []byte {
	t.Helper()
	bz, err := proto.Marshal(tx)
	assert.Nil(t, err)
	return bz
}

func tagsAsString(pairs []common.KVPair) string {
	r := make([]string, len(pairs))
	for i, v := range pairs {
		r[i] = string(v.Key) + "=" + string(v.Value)
	}
	return strings.Join(r, ";")
}

func TestMempoolCheckBeforeFirstCommit(t *testing.T) {
	f := newFixture(t)
	tx := signedTx(t, createMsg("early", genesisTime.Add(301*time.Second), coin.NewCoinp(100, "usd")), f.owner)

	// the mempool checks a transaction before the first block starts
	chres := f.app.CheckTx(tx)
	assert.Equal(t, uint32(0), chres.Code)

	res, err := f.deliver(t, genesisTime, tx)
	assert.Nil(t, err)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, false, f.queryEscrow(t, "early").Released)
}
