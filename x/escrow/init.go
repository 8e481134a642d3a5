package escrow

import (
	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ settle.Initializer = (*Initializer)(nil)

// genesisEscrow is the genesis representation of a preloaded escrow.
type genesisEscrow struct {
	ID          string           `json:"id"`
	Payer       settle.Principal `json:"payer"`
	Beneficiary settle.Principal `json:"beneficiary"`
	Funds       coin.Coins       `json:"funds"`
	Maturity    settle.UnixTime  `json:"maturity"`
	Released    bool             `json:"released"`
}

// FromGenesis stores the AdminConfig found under conf.escrow and all escrows
// listed under escrow.
func (*Initializer) FromGenesis(ctx settle.Context, opts settle.Options, db settle.KVStore) error {
	conf := AdminConfig{MinLockSeconds: DefaultMinLock}
	if err := gconf.InitConfig(db, opts, ConfigPkg, &conf); err != nil {
		return errors.Wrap(err, "init escrow configuration")
	}
	settle.GetLogger(ctx).Info("escrow configured",
		"method", "instantiate",
		"owner", conf.Owner,
		"min_lock", conf.MinLockSeconds)

	var escrows []genesisEscrow
	if err := opts.ReadOptions("escrow", &escrows); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	ledger := NewLedger()
	for i, g := range escrows {
		e := &Escrow{
			Id:          g.ID,
			Payer:       g.Payer.String(),
			Beneficiary: g.Beneficiary.String(),
			Funds:       g.Funds,
			Maturity:    int64(g.Maturity),
			Released:    g.Released,
		}
		if err := e.Validate(); err != nil {
			return errors.Wrapf(err, "escrow %d", i)
		}
		exists, err := ledger.Exists(db, e.Id)
		if err != nil {
			return err
		}
		if exists {
			return errors.Wrapf(ErrAlreadyExists, "escrow %d: %q", i, e.Id)
		}
		if err := ledger.Put(db, e); err != nil {
			return errors.Wrapf(err, "escrow %d", i)
		}
	}
	return nil
}
