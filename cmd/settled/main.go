package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/theconstruct/settle"
	settled "github.com/theconstruct/settle/cmd/settled/app"
	"github.com/theconstruct/settle/commands"
	"github.com/theconstruct/settle/commands/server"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".settle")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("settled")
	fmt.Println("          Time locked escrow settlement node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file: [owner] [min_lock]")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files: <genesis.json>...")
	fmt.Println("testgen   Write example encodings into a directory")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.settle")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "settle")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(settled.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(settled.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(settled.Initializer(), rest)
	case "testgen":
		err = commands.TestGenCmd(settled.Examples(), rest)
	case "version":
		fmt.Println(settle.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
