package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/theconstruct/settle/cmd/settled/client"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key and print the principal it signs as.

When successful a new file with the hex encoded private key is created. This
command fails if the private key file already exists, unless -force is given.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use SETTLECLI_PRIV_KEY environment variable to set it.")
		forceFl = fl.Bool("force", false, "Overwrite an existing private key file.")
	)
	fl.Parse(args)

	key, err := client.GenPrivateKey()
	if err != nil {
		return err
	}
	if err := client.SaveKey(key, *keyPathFl, *forceFl); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, client.KeyPrincipal(key))
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the principal associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use SETTLECLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := client.LoadKey(*keyPathFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, client.KeyPrincipal(key))
	return err
}
