// Command evotsp evolves open-path tours through random cities.
//
//	evotsp run   [flags]   one evolution, status lines on stdout
//	evotsp batch [flags]   repeated independent evolutions, summary report
//	evotsp view  [flags]   one evolution drawn live in the terminal
//
// Every command accepts -config file.yaml; explicit flags override it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:], stdout)
	case "batch":
		return runBatch(ctx, args[1:], stdout)
	case "view":
		return runView(ctx, args[1:])
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

const usage = "usage: evotsp <run|batch|view> [flags]"

func usageError(msg string) error {
	return fmt.Errorf("%s\n%s", msg, usage)
}
