// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// hostapdctl drives the hostapd service controller against a local
// property snapshot. There is no platform broker to talk to off
// device, so the tool loads a snapshot file, applies one operation
// and writes the snapshot back, leaving any issued control write
// visible in the file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"

	"github.com/juju/wifisystem/hostapd"
	"github.com/juju/wifisystem/properties"
)

const usageDoc = `usage: hostapdctl [options] start|stop|status

hostapdctl loads the property snapshot named by --store, runs a
single service control operation against it and writes the snapshot
back. "status" prints the service state recorded in the snapshot and
leaves the file untouched.
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		storePath string
		service   string
		debug     bool
		logConfig string
	)
	f := gnuflag.NewFlagSet("hostapdctl", gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.StringVar(&storePath, "store", "", "path to the property snapshot file")
	f.StringVar(&service, "service", hostapd.ServiceName, "name of the service to control")
	f.BoolVar(&debug, "debug", false, "equivalent to --logging-config=<root>=DEBUG")
	f.StringVar(&logConfig, "logging-config", "", "loggo configuration string")
	if err := f.Parse(true, args); err != nil {
		if err == gnuflag.ErrHelp {
			fmt.Fprint(stdout, usageDoc)
			return nil
		}
		return errors.Trace(err)
	}

	if debug {
		logConfig = "<root>=DEBUG"
	}
	if logConfig != "" {
		if err := loggo.ConfigureLoggers(logConfig); err != nil {
			return errors.Trace(err)
		}
	}

	if len(f.Args()) != 1 {
		return errors.Errorf("expected exactly one of start, stop or status")
	}
	op := f.Args()[0]
	// start and stop have to write the snapshot back; status can
	// read a missing snapshot as an empty store.
	if storePath == "" && op != "status" {
		return errors.Errorf("--store is required")
	}

	store, err := properties.Load(storePath)
	if err != nil {
		return errors.Trace(err)
	}
	config := hostapd.DefaultConfig()
	config.ServiceName = service
	manager, err := hostapd.NewManager(config, store)
	if err != nil {
		return errors.Trace(err)
	}

	switch op {
	case "status":
		printStatus(stdout, manager.Status())
		return nil
	case "start":
		if err := manager.Start(); err != nil {
			return errors.Trace(err)
		}
	case "stop":
		if err := manager.Stop(); err != nil {
			return errors.Trace(err)
		}
	default:
		return errors.Errorf("unknown command %q", op)
	}
	return errors.Trace(store.Write(storePath))
}

func printStatus(stdout io.Writer, status string) {
	switch {
	case status == "":
		fmt.Fprintln(stdout, "unset")
	case hostapd.KnownStatus(status):
		fmt.Fprintln(stdout, status)
	default:
		fmt.Fprintf(stdout, "%s (transitioning)\n", status)
	}
}
