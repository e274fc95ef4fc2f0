package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thurmanmarka/natalglide"
	"github.com/thurmanmarka/natalglide/internal/config"
	"github.com/thurmanmarka/natalglide/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "natalglide: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "natalglide: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries what every subcommand needs. Output goes to out; logs and
// usage go to errOut.
type app struct {
	cfg  *config.Config
	calc *natalglide.Calculator
	log  *logrus.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) (*app, error) {
	calc, err := natalglide.NewCalculator(natalglide.WithPolarLimit(cfg.PolarLimit))
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg, errOut)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		calc:   calc,
		log:    logger,
		in:     in,
		out:    out,
		errOut: errOut,
	}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		a.usage()
		return errors.New("missing subcommand")
	}

	var err error
	switch args[0] {
	case "chart":
		err = a.runChart(args[1:])
	case "batch":
		err = a.runBatch(ctx, args[1:])
	case "ingress":
		err = a.runIngress(args[1:])
	case "help":
		a.usage()
		return nil
	default:
		fmt.Fprintf(a.errOut, "unknown subcommand %q\n\n", args[0])
		a.usage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}

	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		a.log.WithError(err).
			WithField("command", args[0]).
			WithField("code", natalglide.ErrorCode(err)).
			Error("command failed")
	}
	return err
}

func (a *app) usage() {
	fmt.Fprint(a.errOut, `natalglide – natal chart engine

Usage:
  natalglide chart [flags]     # Sun, Moon, Ascendant and planets for one birth
  natalglide batch [flags]     # charts for a CSV of births
  natalglide ingress [flags]   # next sign change of a body

Environment:
  NATAL_POLAR_LIMIT    |latitude| past which the Ascendant is undefined (default 66.5)
  NATAL_BATCH_WORKERS  concurrent charts in batch mode (default 4)
  LOG_LEVEL            debug, info, warn or error (default info)
  LOG_FORMAT           text or json (default text)

Run "natalglide <command> -h" for command flags.
`)
}

// errorOutput is the JSON shape of a failed request.
type errorOutput struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportJSON writes err in the JSON error shape and returns it unchanged.
func (a *app) reportJSON(err error) error {
	if werr := writeJSON(a.out, errorOutput{Error: natalglide.ErrorCode(err), Message: err.Error()}); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}
