package server

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle/errors"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagLogLevel = "log_level"

	defaultBind = "tcp://localhost:26658"
)

type startOptions struct {
	bind     string
	debug    bool
	logLevel string
}

func parseStartFlags(args []string) (startOptions, error) {
	var opts startOptions
	fl := flag.NewFlagSet("start", flag.ContinueOnError)
	fl.StringVar(&opts.bind, flagBind, defaultBind, "address server listens on")
	fl.BoolVar(&opts.debug, flagDebug, false, "call stack returned on error")
	fl.StringVar(&opts.logLevel, flagLogLevel, "info", "minimal log level: debug, info, error or none")
	if err := fl.Parse(args); err != nil {
		return opts, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if fl.NArg() != 0 {
		return opts, errors.Wrapf(errors.ErrInvalidInput, "unexpected arguments: %v", fl.Args())
	}
	return opts, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd builds the application and serves it over the ABCI socket
// until the process receives an interrupt or terminate signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseStartFlags(args)
	if err != nil {
		return err
	}
	level, err := log.AllowLevel(opts.logLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	logger = log.NewFilter(logger, level)

	app, err := gen(home, logger, opts.debug)
	if err != nil {
		return errors.Wrap(err, "cannot create application")
	}

	logger.Info("Starting ABCI app", "bind", opts.bind)

	svr, err := server.NewServer(opts.bind, "socket", app)
	if err != nil {
		return errors.Wrap(errors.ErrNetwork, err.Error())
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "cannot listen on %s: %s", opts.bind, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Stopping ABCI app", "signal", s.String())
	if err := svr.Stop(); err != nil {
		return errors.Wrap(errors.ErrNetwork, err.Error())
	}
	return nil
}
