package server

import (
	"fmt"
	"testing"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest/assert"
)

func TestParseStartFlags(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    startOptions
		wantErr *errors.Error
	}{
		"defaults": {
			args: nil,
			want: startOptions{bind: defaultBind, logLevel: "info"},
		},
		"all flags": {
			args: []string{"-bind", "unix:///tmp/abci.sock", "-debug", "-log_level", "error"},
			want: startOptions{bind: "unix:///tmp/abci.sock", debug: true, logLevel: "error"},
		},
		"unknown flag": {
			args:    []string{"-min_fee", "1usd"},
			wantErr: errors.ErrInvalidInput,
		},
		"extra argument": {
			args:    []string{"now"},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := parseStartFlags(tc.args)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStartInvalidLogLevel(t *testing.T) {
	gen := func(string, log.Logger, bool) (abci.Application, error) {
		t.Fatal("application must not be created")
		return nil, nil
	}
	err := StartCmd(gen, log.NewNopLogger(), "", []string{"-log_level", "chatty"})
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestStartGeneratorFailure(t *testing.T) {
	gen := func(string, log.Logger, bool) (abci.Application, error) {
		return nil, errors.ErrDatabase.New("locked")
	}
	err := StartCmd(gen, log.NewNopLogger(), "", nil)
	assert.IsErr(t, errors.ErrDatabase, err)
}

func TestStartStandAlone(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping ABCI stand-alone test")
	}

	var gotDebug bool
	gen := func(home string, logger log.Logger, debug bool) (abci.Application, error) {
		gotDebug = debug
		return abci.NewBaseApplication(), nil
	}
	args := []string{"-bind", "tcp://localhost:11122", "-debug"}
	runStart := func() error {
		return StartCmd(gen, log.NewNopLogger(), "", args)
	}
	assert.Nil(t, runOrTimeout(runStart, 2*time.Second))
	assert.Equal(t, true, gotDebug)
}

func runOrTimeout(cmd func() error, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		// cmd is expected to block until the timeout
		if err := cmd(); err != nil {
			done <- err
			return
		}
		done <- fmt.Errorf("start died for unknown reasons")
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return nil
	}
}
