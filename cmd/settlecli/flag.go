package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/coin"
)

// flCoins returns a list of coins that is filled from a command line
// argument. The flag can be repeated and each value may hold several coins
// separated by a comma, for example "-funds 100usd,5eur".
func flCoins(fl *flag.FlagSet, name, usage string) *coin.Coins {
	var cs coinsFlag
	fl.Var(&cs, name, usage)
	return (*coin.Coins)(&cs)
}

type coinsFlag coin.Coins

func (cs coinsFlag) String() string {
	return coin.Coins(cs).String()
}

func (cs *coinsFlag) Set(raw string) error {
	parsed, err := coin.ParseCoins(raw)
	if err != nil {
		return err
	}
	*cs = append(*cs, parsed...)
	return nil
}

// flTime returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. Both
// unix seconds and RFC3339 are accepted. If given default value cannot be
// parsed, process is terminated.
func flTime(fl *flag.FlagSet, name, defaultVal, usage string) *settle.UnixTime {
	var t unixTimeFlag
	if defaultVal != "" {
		if err := t.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q time flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&t, name, usage)
	return (*settle.UnixTime)(&t)
}

type unixTimeFlag settle.UnixTime

func (t unixTimeFlag) String() string {
	if t == 0 {
		return ""
	}
	return settle.UnixTime(t).Time().Format(time.RFC3339)
}

func (t *unixTimeFlag) Set(raw string) error {
	parsed, err := settle.ParseUnixTime(raw)
	if err != nil {
		return err
	}
	*t = unixTimeFlag(parsed)
	return nil
}
