package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle/errors"
)

const (
	appStateKey = "app_state"
	flagForce   = "f"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

// GenesisFile returns the location of the genesis file inside of home.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state produced by gen into the genesis file found
// in home. Run "tendermint init" first to get validator keys. If no genesis
// file exists, a new one without validators is created.
//
// An existing app_state is only replaced when the -f flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fl.Bool(flagForce, false, "overwrite an existing app_state")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	genFile := GenesisFile(home)
	doc, err := loadOrCreateGenesis(genFile, logger)
	if err != nil {
		return err
	}

	if raw, ok := doc[appStateKey]; ok && len(raw) > 0 && string(raw) != "null" && !*force {
		return errors.Wrapf(errors.ErrDuplicate, "%s already contains app_state, use -%s to overwrite", genFile, flagForce)
	}

	state, err := gen(fl.Args())
	if err != nil {
		return errors.Wrap(err, "cannot generate app_state")
	}
	doc[appStateKey] = state

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func loadOrCreateGenesis(genFile string, logger log.Logger) (genesisDoc, error) {
	bz, err := ioutil.ReadFile(genFile)
	switch {
	case err == nil:
		var doc genesisDoc
		if err := json.Unmarshal(bz, &doc); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot parse %s: %s", genFile, err)
		}
		logger.Info("Found genesis file", "path", genFile)
		return doc, nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		chainID, _ := json.Marshal("test-chain-" + common.RandStr(6))
		genTime, _ := json.Marshal(time.Now().UTC())
		logger.Info("Generated genesis file", "path", genFile)
		return genesisDoc{
			"chain_id":     chainID,
			"genesis_time": genTime,
		}, nil
	default:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
}
