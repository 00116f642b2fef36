// cmd/vfrcalc/main.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// vfrcalc is a command-line front end to the flight planning calculators:
// wind triangle and leg planning, takeoff performance, and takeoff
// performance for every runway at an airport.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vfrkit/vfrkit/log"
	"github.com/vfrkit/vfrkit/nav"

	"github.com/labstack/gommon/color"
)

var errUsage = errors.New("usage")

// options are the flags shared by all of the subcommands.
type options struct {
	logLevel string
	logDir   string
	json     bool
	dump     bool
	noColor  bool
	varconv  string
	navlog   string

	lg *log.Logger
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.logLevel, "loglevel", "info", "Logging level: debug, info, warn, error")
	fs.StringVar(&o.logDir, "logdir", "", "Log file directory")
	fs.BoolVar(&o.json, "json", false, "Write results as JSON")
	fs.BoolVar(&o.dump, "dump", false, "Dump the inputs and results")
	fs.BoolVar(&o.noColor, "nocolor", false, "Don't use color in the output")
	fs.StringVar(&o.varconv, "varconv", "wmm", "Sign convention of -var: wmm (east positive) or legacy (east negative)")
	fs.StringVar(&o.navlog, "navlog", "", "Trace categories to print (navlog builds only): all or wind,phase,heading,waypoint")
}

func (o *options) init() error {
	switch o.varconv {
	case "wmm", "legacy":
	default:
		return fmt.Errorf("-varconv %q: must be wmm or legacy", o.varconv)
	}

	o.lg = log.New(o.logLevel, o.logDir)
	nav.InitNavLog(o.navlog != "", o.navlog)
	if o.noColor {
		color.Disable()
	}
	return nil
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string, w io.Writer) error
}

var commands = []command{
	{"leg", "wind triangle, headings, time and fuel for a leg", runLeg},
	{"takeoff", "takeoff performance", runTakeoff},
	{"runways", "takeoff performance for each runway at an airport", runRunways},
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: vfrcalc <command> [flags]\nwhere <command> is one of:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "Run \"vfrcalc <command> -h\" for the command's flags.\n")
}

func run(ctx context.Context, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	for _, c := range commands {
		if strings.EqualFold(args[0], c.name) {
			return c.run(ctx, args[1:], w)
		}
	}
	return errUsage
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		usage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "vfrcalc: %v\n", err)
		os.Exit(1)
	}
}
