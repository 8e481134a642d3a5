/*
Package settled links together all the various components
to construct the settled app.
*/
package settled

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/app"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/store/iavl"
	"github.com/theconstruct/settle/x"
	"github.com/theconstruct/settle/x/escrow"
	"github.com/theconstruct/settle/x/sigs"
	"github.com/theconstruct/settle/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle recovery, logging,
// authentication and atomic writes.
//
// Unsigned transactions pass the signature check, as releasing an escrow
// is open to anyone. Creation still requires the owner signature.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		sigs.NewDecorator().AllowMissingSigs(),
		// on DeliverTx, a failed request leaves no trace in the state
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the escrow handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	escrow.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a query router serving "/escrows",
// "/escrows/beneficiary", "/escrows/payer" and "/escrows/state".
func QueryRouter() settle.QueryRouter {
	r := settle.NewQueryRouter()
	r.RegisterAll(escrow.RegisterQuery)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() settle.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h settle.Handler, tx settle.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (settle.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// goleveldb adds the ".db" suffix itself
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
