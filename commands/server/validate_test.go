package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest/assert"
)

type optionInitializer struct {
	chainID string
}

func (i *optionInitializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	i.chainID = settle.GetChainID(ctx)
	var want string
	if err := opts.ReadOptions("want", &want); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if want != "ok" {
		return errors.ErrInvalidState.New("not ok")
	}
	return db.Set([]byte("key"), []byte(want))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "settle-validate")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		assert.Nil(t, ioutil.WriteFile(p, []byte(content), 0600))
		return p
	}
	good := write("good.json", `{"chain_id": "settle-dev", "app_state": {"want": "ok"}}`)
	bad := write("bad.json", `{"chain_id": "settle-dev", "app_state": {"want": "no"}}`)
	noState := write("nostate.json", `{"chain_id": "settle-dev"}`)
	badChain := write("badchain.json", `{"chain_id": "x", "app_state": {"want": "ok"}}`)
	broken := write("broken.json", `{"chain_id": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid":             {paths: []string{good}},
		"initializer fails": {paths: []string{good, bad}, wantErr: errors.ErrInvalidState},
		"no app state":      {paths: []string{noState}, wantErr: errors.ErrEmpty},
		"invalid chain id":  {paths: []string{badChain}, wantErr: errors.ErrInvalidInput},
		"not json":          {paths: []string{broken}, wantErr: errors.ErrInvalidInput},
		"missing file":      {paths: []string{filepath.Join(dir, "missing.json")}, wantErr: errors.ErrInvalidInput},
		"no files":          {paths: nil, wantErr: errors.ErrEmpty},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ini := &optionInitializer{}
			err := ValidateGenesis(ini, tc.paths)
			if tc.wantErr == nil {
				assert.Nil(t, err)
				assert.Equal(t, "settle-dev", ini.chainID)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
