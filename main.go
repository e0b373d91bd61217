package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"odnorazka/internal/accounts"
	"odnorazka/internal/commands"
	"odnorazka/internal/config"
	"odnorazka/internal/otp"
	"odnorazka/internal/storage"
)

const usage = `Usage: odnorazka <command> [flags]

Commands:
  add [-digits N] [-period S] [-algo SHA1|SHA256|SHA512] <name>
        add an account (prompts for the base32 secret)
  delete <name>
        remove an account
  list [-once]
        show live codes for all accounts (q to quit)
`

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return err
	}

	store, err := accounts.Open(backend)
	if err != nil {
		_ = backend.Close()
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	switch args[0] {
	case "add":
		flags := flag.NewFlagSet("add", flag.ContinueOnError)
		digits := flags.Int("digits", otp.DefaultDigits, "code length (6-8)")
		period := flags.Int("period", otp.DefaultPeriod, "code lifetime in seconds")
		algo := flags.String("algo", string(otp.SHA1), "HMAC hash: SHA1, SHA256 or SHA512")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		if flags.NArg() != 1 {
			return errors.New("usage: odnorazka add [flags] <name>")
		}
		algorithm, err := otp.ParseAlgorithm(*algo)
		if err != nil {
			return err
		}
		params := otp.Params{Digits: *digits, Period: *period, Algorithm: algorithm}
		return commands.Add(store, flags.Arg(0), params, os.Stdout)

	case "delete":
		if len(args) != 2 {
			return errors.New("usage: odnorazka delete <name>")
		}
		return commands.Delete(store, args[1], os.Stdout)

	case "list":
		flags := flag.NewFlagSet("list", flag.ContinueOnError)
		once := flags.Bool("once", false, "print one frame and exit")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		if *once {
			return commands.ListOnce(store, os.Stdout, time.Now())
		}
		return commands.List(ctx, store, os.Stdout)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func openBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendBbolt:
		return storage.NewBoltBackend(cfg.StorePath)
	default:
		return storage.NewFileBackend(cfg.StorePath), nil
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Error: %v", err)
	}
}
