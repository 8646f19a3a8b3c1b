// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command lambent inspects Lambent programs.
//
// Usage:
//
//	lambent [global flags] tokens FILE     print the token stream
//	lambent [global flags] ast FILE        print the syntax tree
//	lambent [global flags] fmt FILE        print canonical source
//	lambent [global flags] dump FILE       print the Go representation of the tree
//	lambent [global flags] check FILE...   report syntax errors in many files
//	lambent [global flags] dumpconfig      print the effective configuration
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"
)

const version = "0.1.0"

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	recoverFlag = cli.BoolFlag{
		Name:  "recover",
		Usage: "Keep parsing after a syntax error and report every broken statement",
	}
	maxErrorsFlag = cli.IntFlag{
		Name:  "maxerrors",
		Usage: "Stop after this many errors per file in recovery mode (0 = no limit)",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Number of files parsed concurrently by check (0 = one per CPU)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Number of parsed programs kept in memory (0 = disabled)",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lambent"
	app.Usage = "the Lambent language front end"
	app.Version = version
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		recoverFlag,
		maxErrorsFlag,
		workersFlag,
		cacheFlag,
		noColorFlag,
	}
	app.Commands = []cli.Command{
		tokensCommand,
		astCommand,
		fmtCommand,
		dumpCommand,
		checkCommand,
		dumpConfigCommand,
		versionCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log, errWriter(ctx))
		return nil
	}
	return app
}

// errWriter returns the writer for diagnostics and logs.
func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

// fatalf formats a message to standard error and exits the program.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatalf("%v", err)
	}
}
