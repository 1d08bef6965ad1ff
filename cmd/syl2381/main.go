// cmd/syl2381/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

const usage = `usage: syl2381 [-config path] <command> [args]

commands:
  dump                 print every parameter
  get <PARAM>          print one parameter
  set <PARAM> <VALUE>  write one parameter and print it back
  run                  poll and publish until interrupted
`

func main() {
	// bootstrap logger until config is loaded
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	fs := flag.NewFlagSet("syl2381", flag.ExitOnError)
	cfgPath := fs.String("config", "syl2381.yaml", "path to the YAML config")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd := args[0]; cmd {
	case "run":
		err = runBridge(ctx, *cfgPath)
	case "dump", "get", "set":
		err = runTool(*cfgPath, cmd, args[1:])
	default:
		fs.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("failed")
	}
}

func runBridge(ctx context.Context, path string) error {
	b, cleanup, err := initBridge(path)
	if err != nil {
		return err
	}
	defer cleanup()

	return b.Run(ctx)
}

func runTool(path, cmd string, args []string) error {
	want := map[string]int{"dump": 0, "get": 1, "set": 2}[cmd]
	if len(args) != want {
		return fmt.Errorf("%s: want %d argument(s), got %d", cmd, want, len(args))
	}

	t, cleanup, err := initTool(path)
	if err != nil {
		return err
	}
	defer cleanup()

	switch cmd {
	case "dump":
		return dump(os.Stdout, t.Dev)
	case "get":
		return get(os.Stdout, t.Dev, args[0])
	default:
		return set(os.Stdout, t.Dev, args[0], args[1])
	}
}
