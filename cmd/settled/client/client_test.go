package client

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/x/escrow"
	"golang.org/x/crypto/ed25519"
)

var genesisTime = time.Unix(1700000000, 0).UTC()

func setup(t *testing.T) (*Client, *testConn, ed25519.PrivateKey) {
	t.Helper()
	owner, err := GenPrivateKey()
	require.NoError(t, err)
	conn, err := newTestConn(KeyPrincipal(owner).String(), genesisTime)
	require.NoError(t, err)
	return NewClient(conn), conn, owner
}

func TestEscrowLifecycle(t *testing.T) {
	c, conn, owner := setup(t)

	chainID, err := c.ChainID()
	require.NoError(t, err)
	assert.Equal(t, testChainID, chainID)

	state, err := c.GetState()
	require.NoError(t, err)
	assert.Equal(t, KeyPrincipal(owner).String(), state.Owner)
	assert.Equal(t, escrow.DefaultMinLock, state.MinLockSeconds)

	msg := &escrow.CreateEscrowMsg{
		Id:          "order-7",
		Beneficiary: "bob",
		Maturity:    genesisTime.Unix() + 301,
		Funds:       []*coin.Coin{coin.NewCoinp(100, "usd"), coin.NewCoinp(3, "eur")},
	}
	created, err := c.CreateEscrow(owner, msg)
	require.NoError(t, err)
	assert.Equal(t, "order-7", created.Id)
	assert.Equal(t, "bob", created.Beneficiary)

	height, err := c.Height()
	require.NoError(t, err)
	assert.Equal(t, int64(1), height)

	got, err := c.GetEscrow("order-7")
	require.NoError(t, err)
	assert.False(t, got.Escrow.Released)
	assert.Equal(t, KeyPrincipal(owner).String(), got.Escrow.Payer)
	assert.Equal(t, int64(1), got.Height)

	// anyone may release, without a key
	_, err = c.ReleasePayment(nil, "order-7")
	require.Error(t, err)
	assert.True(t, escrow.ErrNotMatured.Is(err))
	assert.True(t, escrow.IsTemporary(err))

	conn.now = genesisTime.Add(301 * time.Second)
	released, err := c.ReleasePayment(nil, "order-7")
	require.NoError(t, err)
	require.Len(t, released.Directives, 2)
	assert.Equal(t, "bob", released.Directives[0].Recipient)
	assert.Equal(t, "100usd", released.Directives[0].Coin.String())
	assert.Equal(t, "3eur", released.Directives[1].Coin.String())

	got, err = c.GetEscrow("order-7")
	require.NoError(t, err)
	assert.True(t, got.Escrow.Released)

	_, err = c.ReleasePayment(owner, "order-7")
	assert.True(t, escrow.ErrAlreadyReleased.Is(err))
	assert.False(t, escrow.IsTemporary(err))

	_, err = c.CreateEscrow(owner, msg)
	assert.True(t, escrow.ErrAlreadyExists.Is(err))
}

func TestCreateRequiresOwner(t *testing.T) {
	c, _, _ := setup(t)
	stranger, err := GenPrivateKey()
	require.NoError(t, err)

	_, err = c.CreateEscrow(stranger, &escrow.CreateEscrowMsg{
		Id:          "e1",
		Beneficiary: "bob",
		Maturity:    genesisTime.Unix() + 1000,
		Funds:       []*coin.Coin{coin.NewCoinp(1, "usd")},
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// invalid messages never leave the client
	_, err = c.CreateEscrow(stranger, &escrow.CreateEscrowMsg{Beneficiary: "bob"})
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestQueries(t *testing.T) {
	c, _, owner := setup(t)

	_, err := c.GetEscrow("missing")
	assert.True(t, errors.ErrNotFound.Is(err))

	for _, id := range []string{"a", "b"} {
		_, err := c.CreateEscrow(owner, &escrow.CreateEscrowMsg{
			Id:          id,
			Beneficiary: "carol",
			Maturity:    genesisTime.Unix() + 1000,
			Funds:       []*coin.Coin{coin.NewCoinp(1, "usd")},
		})
		require.NoError(t, err)
	}

	list, err := c.EscrowsByBeneficiary("carol")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Id)
	assert.Equal(t, "b", list[1].Id)

	list, err = c.EscrowsByPayer(KeyPrincipal(owner))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = c.EscrowsByBeneficiary("dave")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = c.EscrowsByPayer("")
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = c.AbciQuery("/wallets", nil)
	assert.True(t, errors.ErrUnknownRequest.Is(err))
}

func TestNodeDown(t *testing.T) {
	c, conn, owner := setup(t)
	conn.down = true

	_, err := c.ChainID()
	assert.True(t, errors.ErrNetwork.Is(err))
	_, err = c.GetEscrow("e1")
	assert.True(t, errors.ErrNetwork.Is(err))
	_, err = c.ReleasePayment(owner, "e1")
	assert.True(t, errors.ErrNetwork.Is(err))
}

func TestKeys(t *testing.T) {
	key, err := GenPrivateKey()
	require.NoError(t, err)

	decoded, err := DecodePrivateKey(EncodePrivateKey(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = DecodePrivateKey("cafe")
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = DecodePrivateKey("not hex")
	assert.True(t, errors.ErrInvalidInput.Is(err))

	dir, err := ioutil.TempDir("", "settle-keys")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "key.priv")
	require.NoError(t, SaveKey(key, path, false))
	assert.True(t, errors.ErrDuplicate.Is(SaveKey(key, path, false)))

	loaded, err := LoadKey(path)
	require.NoError(t, err)
	assert.Equal(t, KeyPrincipal(key), KeyPrincipal(loaded))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(KeyPerm), info.Mode().Perm())
}
