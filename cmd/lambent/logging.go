// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	log "gopkg.in/inconshreveable/log15.v2"
)

// isTerminal reports whether w is a terminal (or a Cygwin pty).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// useColor reports whether colored output should go to w.
func useColor(cfg logConfig, w io.Writer) bool {
	return cfg.Color && isTerminal(w)
}

// logLevel maps a verbosity in [0, 5] to a log15 level. log15 has no trace
// level, so 5 behaves like 4.
func logLevel(verbosity int) log.Lvl {
	if verbosity > int(log.LvlDebug) {
		return log.LvlDebug
	}
	return log.Lvl(verbosity)
}

// setupLogging installs the root log handler writing to w.
func setupLogging(cfg logConfig, w io.Writer) {
	format := log.LogfmtFormat()
	if useColor(cfg, w) {
		w = colorable.NewColorable(w.(*os.File))
		format = log.TerminalFormat()
	}
	log.Root().SetHandler(log.LvlFilterHandler(logLevel(cfg.Verbosity), log.StreamHandler(w, format)))
}
