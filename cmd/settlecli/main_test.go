package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	settled "github.com/theconstruct/settle/cmd/settled/app"
	"github.com/theconstruct/settle/cmd/settled/client"
	"github.com/theconstruct/settle/settletest/assert"
)

var genesisTime = time.Unix(1700000000, 0).UTC()

// testNode runs the settled application in-process and makes every command
// talk to it. Both the node and the local clock start at genesisTime and
// move only when the test says so.
type testNode struct {
	clock    time.Time
	dir      string
	ownerKey string
	cleanup  func()
}

func newTestNode(t testing.TB) *testNode {
	t.Helper()

	dir, err := ioutil.TempDir("", "settlecli")
	assert.Nil(t, err)

	owner, err := client.GenPrivateKey()
	assert.Nil(t, err)
	ownerKey := filepath.Join(dir, "owner.key")
	assert.Nil(t, client.SaveKey(owner, ownerKey, false))

	app, err := settled.GenerateApp("", log.NewNopLogger(), false)
	assert.Nil(t, err)
	state, err := settled.GenInitOptions([]string{client.KeyPrincipal(owner).String()})
	assert.Nil(t, err)

	n := &testNode{clock: genesisTime, dir: dir, ownerKey: ownerKey}
	conn := client.NewLocalConnection(app, "settlecli-test", state, func() time.Time { return n.clock })

	prevDial, prevNow, prevSleep := dial, now, sleep
	dial = func(string) *client.Client { return client.NewClient(conn) }
	now = func() time.Time { return n.clock }
	sleep = func(d time.Duration) { n.clock = n.clock.Add(d) }
	n.cleanup = func() {
		dial, now, sleep = prevDial, prevNow, prevSleep
		os.RemoveAll(dir)
	}
	return n
}
