package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/x/escrow"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program name and the command name. It parses the arguments
// with the flag package and writes its result, as JSON, to the output only.
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"create":  cmdCreateEscrow,
	"escrow":  cmdGetEscrow,
	"escrows": cmdListEscrows,
	"keyaddr": cmdKeyaddr,
	"keygen":  cmdKeygen,
	"release": cmdReleasePayment,
	"state":   cmdState,
	"version": cmdVersion,
}

// exitTemporary is the exit code of a request that failed only because it
// was sent too early. Running the same command later may succeed.
const exitTemporary = 3

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the settled application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if escrow.IsTemporary(err) {
			fmt.Fprintln(os.Stderr, "The request can be retried later.")
			os.Exit(exitTemporary)
		}
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, settle.Version())
	return err
}
