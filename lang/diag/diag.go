// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag renders lexical and syntax errors as source excerpts with a
// caret under the offending column:
//
//	PARSE ERROR in main.lam at 3:4: expected ";", found EOF
//
//	   2 | let x = (f a)
//	   3 |   b
//	     |    ^
//
// At most one line of context is shown on either side. Line and column are
// clamped to the source so malformed positions never break rendering.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/probechain/lambent/lang/lexer"
	"github.com/probechain/lambent/lang/parser"
	"github.com/probechain/lambent/lang/token"
)

// Options controls rendering.
type Options struct {
	// Color highlights the header and caret with ANSI escapes.
	Color bool
}

// located is implemented by *lexer.Error and *parser.Error.
type located interface {
	error
	Position() token.Position
	Message() string
}

// Render writes a diagnostic for every error in err to w. A
// *multierror.Error is expanded into its members; errors that carry no
// source position are written as "error: <msg>".
func Render(w io.Writer, err error, src string, opts Options) error {
	if err == nil {
		return nil
	}
	var list []error
	if merr, ok := err.(*multierror.Error); ok {
		list = merr.Errors
	} else {
		list = []error{err}
	}
	var b strings.Builder
	for i, e := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		render(&b, e, src, opts)
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

// Sprint returns the uncolored diagnostics for err.
func Sprint(err error, src string) string {
	var b strings.Builder
	Render(&b, err, src, Options{})
	return b.String()
}

func render(b *strings.Builder, err error, src string, opts Options) {
	header, loc := classify(err)
	if loc == nil {
		fmt.Fprintf(b, "%s %s\n", paint(opts, color.FgRed, "error:"), err)
		return
	}
	pos := loc.Position()

	lines := strings.Split(src, "\n")
	line := pos.Line
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := strings.TrimSuffix(lines[line-1], "\r")
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if limit := utf8.RuneCountInString(lineTxt) + 1; col > limit {
		col = limit
	}

	title := header
	if pos.File != "" {
		title += " in " + pos.File
	}
	title = fmt.Sprintf("%s at %d:%d:", title, line, col)
	fmt.Fprintf(b, "%s %s\n\n", paint(opts, color.FgRed, title), loc.Message())

	if line > 1 {
		fmt.Fprintf(b, "%4d | %s\n", line-1, strings.TrimSuffix(lines[line-2], "\r"))
	}
	fmt.Fprintf(b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(b, "     | %s%s\n", caretPad(lineTxt, col), paint(opts, color.FgGreen, "^"))
	if line < len(lines) {
		fmt.Fprintf(b, "%4d | %s\n", line+1, strings.TrimSuffix(lines[line], "\r"))
	}
}

// classify picks the header for err and returns its position carrier, or
// nil when err has no source position.
func classify(err error) (string, located) {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return "LEXICAL ERROR", lerr
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		return "PARSE ERROR", perr
	}
	return "", nil
}

// caretPad returns the padding that puts a caret under column col of line.
// Tabs are kept so the caret lines up with tab-indented source.
func caretPad(line string, col int) string {
	var pad strings.Builder
	n := 1
	for _, r := range line {
		if n >= col {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		n++
	}
	for ; n < col; n++ {
		pad.WriteByte(' ')
	}
	return pad.String()
}

func paint(opts Options, attr color.Attribute, s string) string {
	if !opts.Color {
		return s
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(s)
}
