package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/cmd/settled/client"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/x/escrow"
	"golang.org/x/crypto/ed25519"
)

func cmdCreateEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Lock funds for a beneficiary until the maturity time. The transaction is
signed with the owner key and the creation receipt is printed when it is
committed.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl  = fl.String("tm", defaultNodeAddr(), "Tendermint node RPC address. You can use SETTLECLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(), "Path to the owner private key file.")
		idFl      = fl.String("id", "", "Unique identifier of the escrow.")
		benefFl   = fl.String("beneficiary", "", "Principal that receives the funds on release.")
		matFl     = flTime(fl, "maturity", "", "Time after which the escrow can be released, as unix seconds or RFC3339.")
		lockFl    = fl.Duration("lock", 0, "Lock the funds for given duration from now. Ignored when -maturity is set.")
		fundsFl   = flCoins(fl, "funds", "Funds to lock, for example 100usd,5eur. Can be repeated.")
	)
	fl.Parse(args)

	maturity := *matFl
	if maturity.IsZero() {
		if *lockFl <= 0 {
			return errors.Wrap(errors.ErrInvalidInput, "either -maturity or -lock must be set")
		}
		maturity = settle.AsUnixTime(now().Add(*lockFl))
	}

	key, err := client.LoadKey(*keyPathFl)
	if err != nil {
		return err
	}
	msg := &escrow.CreateEscrowMsg{
		Id:          *idFl,
		Beneficiary: *benefFl,
		Maturity:    int64(maturity),
		Funds:       *fundsFl,
	}
	receipt, err := dial(*tmAddrFl).CreateEscrow(key, msg)
	if err != nil {
		return err
	}
	return writeJSON(output, receipt)
}

// maxReleaseAttempts limits how many times release -wait tries again after
// sleeping until maturity. The node clock may be behind the local one.
const maxReleaseAttempts = 5

func cmdReleasePayment(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Release a matured escrow to its beneficiary and print the settlement
directives. Anyone may release an escrow, so signing is optional.

An escrow that did not mature yet is reported with exit code 3. Use -wait to
sleep until maturity and try again instead.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl  = fl.String("tm", defaultNodeAddr(), "Tendermint node RPC address. You can use SETTLECLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", "", "Optional path to a private key file the transaction is signed with.")
		idFl      = fl.String("id", "", "Identifier of the escrow to release.")
		waitFl    = fl.Bool("wait", false, "Wait for the escrow to mature instead of failing.")
	)
	fl.Parse(args)

	var key ed25519.PrivateKey
	if *keyPathFl != "" {
		k, err := client.LoadKey(*keyPathFl)
		if err != nil {
			return err
		}
		key = k
	}

	c := dial(*tmAddrFl)
	for attempt := 1; ; attempt++ {
		receipt, err := c.ReleasePayment(key, *idFl)
		if err == nil {
			return writeJSON(output, receipt)
		}
		if !*waitFl || !escrow.IsTemporary(err) || attempt == maxReleaseAttempts {
			return err
		}
		res, err := c.GetEscrow(*idFl)
		if err != nil {
			return err
		}
		wait := res.Escrow.MaturityTime().Time().Sub(now())
		if wait < time.Second {
			wait = time.Second
		}
		sleep(wait)
	}
}

func cmdGetEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the escrow with given identifier, as stored at the latest height.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(), "Tendermint node RPC address. You can use SETTLECLI_TM_ADDR environment variable to set it.")
		idFl     = fl.String("id", "", "Identifier of the escrow.")
	)
	fl.Parse(args)

	res, err := dial(*tmAddrFl).GetEscrow(*idFl)
	if err != nil {
		return err
	}
	return writeJSON(output, escrowView{Escrow: res.Escrow, Height: res.Height})
}

type escrowView struct {
	Escrow *escrow.Escrow `json:"escrow"`
	Height int64          `json:"height"`
}

func cmdListEscrows(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List all escrows paying to a beneficiary or funded by a payer. Exactly one of
-beneficiary and -payer must be given.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(), "Tendermint node RPC address. You can use SETTLECLI_TM_ADDR environment variable to set it.")
		benefFl  = fl.String("beneficiary", "", "Principal receiving the funds.")
		payerFl  = fl.String("payer", "", "Principal that created the escrows.")
	)
	fl.Parse(args)

	var (
		list []*escrow.Escrow
		err  error
	)
	c := dial(*tmAddrFl)
	switch {
	case *benefFl != "" && *payerFl != "":
		return errors.Wrap(errors.ErrInvalidInput, "-beneficiary and -payer cannot be used together")
	case *benefFl != "":
		list, err = c.EscrowsByBeneficiary(settle.Principal(*benefFl))
	case *payerFl != "":
		list, err = c.EscrowsByPayer(settle.Principal(*payerFl))
	default:
		return errors.Wrap(errors.ErrInvalidInput, "-beneficiary or -payer is required")
	}
	if err != nil {
		return err
	}
	return writeJSON(output, list)
}

func cmdState(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the administrative configuration of the escrow extension.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultNodeAddr(), "Tendermint node RPC address. You can use SETTLECLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	conf, err := dial(*tmAddrFl).GetState()
	if err != nil {
		return err
	}
	return writeJSON(output, conf)
}
