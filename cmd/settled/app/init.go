package settled

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/app"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/x/escrow"
	"golang.org/x/crypto/ed25519"
)

type genesisConf struct {
	Escrow escrow.AdminConfig `json:"escrow"`
}

type genesisState struct {
	Conf   genesisConf       `json:"conf"`
	Escrow []json.RawMessage `json:"escrow"`
}

// GenInitOptions produces the app_state for a development chain.
//
// The first argument is the owner principal and the second the minimal lock
// duration in seconds. Without an owner a new key is generated and printed,
// so that the owner can sign escrow creation.
func GenInitOptions(args []string) (json.RawMessage, error) {
	conf := escrow.AdminConfig{MinLockSeconds: escrow.DefaultMinLock}

	if len(args) > 0 {
		conf.Owner = args[0]
	} else {
		owner, secret, err := GenerateOwnerKey()
		if err != nil {
			return nil, err
		}
		conf.Owner = owner.String()
		fmt.Println(secret)
	}

	if len(args) > 1 {
		n, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "min lock %q: %s", args[1], err)
		}
		conf.MinLockSeconds = n
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	state := genesisState{
		Conf:   genesisConf{Escrow: conf},
		Escrow: []json.RawMessage{},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return raw, nil
}

// GenerateOwnerKey creates a new ed25519 key and returns the principal that
// signs with it together with a hex encoded private key.
func GenerateOwnerKey() (settle.Principal, string, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	return settle.NewPrincipal(pub), hex.EncodeToString(priv), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (types.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "settle.db")
	}

	application, err := Application("settled", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		&escrow.Initializer{},
	))

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// Initializer returns the genesis initializer of settled, used to validate
// genesis files offline.
func Initializer() settle.Initializer {
	return app.ChainInitializers(&escrow.Initializer{})
}
