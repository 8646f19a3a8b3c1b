// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	log "gopkg.in/inconshreveable/log15.v2"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/lambent/lang/ast"
	"github.com/probechain/lambent/lang/diag"
	"github.com/probechain/lambent/lang/lexer"
	"github.com/probechain/lambent/lang/loader"
	"github.com/probechain/lambent/lang/printer"
	"github.com/probechain/lambent/lang/token"
)

// errSyntax is returned by commands after they printed diagnostics.
var errSyntax = errors.New("syntax errors")

var (
	tokensCommand = cli.Command{
		Action:      showTokens,
		Name:        "tokens",
		Usage:       "Print the token stream of a source file",
		ArgsUsage:   "FILE",
		Category:    "INSPECTION COMMANDS",
		Description: `The tokens command prints one row per token with its line, column, kind and literal.`,
	}
	astCommand = cli.Command{
		Action:      showTree,
		Name:        "ast",
		Usage:       "Print the syntax tree of a source file",
		ArgsUsage:   "FILE",
		Category:    "INSPECTION COMMANDS",
		Description: `The ast command prints the parsed program as an indented tree.`,
	}
	fmtCommand = cli.Command{
		Action:    formatSource,
		Name:      "fmt",
		Usage:     "Print a source file in canonical form",
		ArgsUsage: "FILE",
		Category:  "INSPECTION COMMANDS",
		Description: `The fmt command prints the program with every application and function
parenthesised, one statement per line. The output parses back to the same tree.`,
	}
	dumpCommand = cli.Command{
		Action:      dumpTree,
		Name:        "dump",
		Usage:       "Dump the Go representation of the syntax tree",
		ArgsUsage:   "FILE",
		Category:    "INSPECTION COMMANDS",
		Description: `The dump command prints every AST node with its fields, including token positions.`,
	}
	checkCommand = cli.Command{
		Action:    checkFiles,
		Name:      "check",
		Usage:     "Report syntax errors in source files",
		ArgsUsage: "FILE...",
		Category:  "INSPECTION COMMANDS",
		Description: `The check command parses all files concurrently and prints a diagnostic for
each error. It exits with status 1 if any file fails to parse.`,
	}
	versionCommand = cli.Command{
		Action:    printVersion,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Category:  "MISCELLANEOUS COMMANDS",
	}
)

// readSource returns the name and content of the single FILE argument.
func readSource(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() != 1 {
		return "", "", fmt.Errorf("usage: %s %s FILE", ctx.App.Name, ctx.Command.Name)
	}
	path := ctx.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return path, string(src), nil
}

// report renders err against src on the error writer and returns
// errSyntax.
func report(ctx *cli.Context, cfg lambentConfig, err error, src string) error {
	w := errWriter(ctx)
	if rerr := diag.Render(w, err, src, diag.Options{Color: useColor(cfg.Log, w)}); rerr != nil {
		return rerr
	}
	return errSyntax
}

// parseSource reads the FILE argument and parses it with the configured
// loader. Diagnostics are printed before returning errSyntax.
func parseSource(ctx *cli.Context) (*ast.Program, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return nil, err
	}
	name, src, err := readSource(ctx)
	if err != nil {
		return nil, err
	}
	l, err := loader.New(cfg.Loader, &cfg.Parser)
	if err != nil {
		return nil, err
	}
	prog, err := l.ParseSource(name, src)
	if err != nil {
		return nil, report(ctx, cfg, err, src)
	}
	return prog, nil
}

func showTokens(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	name, src, err := readSource(ctx)
	if err != nil {
		return err
	}
	toks, lexErr := lexer.New(name, src).Tokenize()

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Line", "Column", "Kind", "Literal"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, tok := range toks {
		table.Append([]string{
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			tok.Type.String(),
			displayLiteral(tok),
		})
	}
	table.Render()

	if lexErr != nil {
		return report(ctx, cfg, lexErr, src)
	}
	return nil
}

// displayLiteral shows string literals in source form so that whitespace
// inside them stays visible.
func displayLiteral(tok token.Token) string {
	if tok.Type == token.STRING {
		return strconv.Quote(tok.Literal)
	}
	return tok.Literal
}

func showTree(ctx *cli.Context) error {
	prog, err := parseSource(ctx)
	if err != nil {
		return err
	}
	return printer.Fprint(ctx.App.Writer, prog)
}

func formatSource(ctx *cli.Context) error {
	prog, err := parseSource(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(ctx.App.Writer, prog.String())
	return err
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func dumpTree(ctx *cli.Context) error {
	prog, err := parseSource(ctx)
	if err != nil {
		return err
	}
	spewConfig.Fdump(ctx.App.Writer, prog)
	return nil
}

func checkFiles(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	paths := []string(ctx.Args())
	if len(paths) == 0 {
		return fmt.Errorf("usage: %s %s FILE...", ctx.App.Name, ctx.Command.Name)
	}
	l, err := loader.New(cfg.Loader, &cfg.Parser)
	if err != nil {
		return err
	}
	results, err := l.ParseFiles(context.Background(), paths)
	if err != nil {
		return err
	}

	var failed int
	for _, res := range results {
		if res.Err == nil {
			log.Debug("File is well-formed", "file", res.Path, "statements", len(res.Program.Statements))
			continue
		}
		failed++
		if rerr := report(ctx, cfg, res.Err, res.Source); rerr != errSyntax {
			return rerr
		}
	}
	log.Info("Checked source files", "files", len(results), "failed", failed)
	fmt.Fprintf(ctx.App.Writer, "%d files checked, %d with errors\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errSyntax, failed, len(results))
	}
	return nil
}

func printVersion(ctx *cli.Context) error {
	fmt.Fprintln(ctx.App.Writer, ctx.App.Name)
	fmt.Fprintln(ctx.App.Writer, "Version:", ctx.App.Version)
	return nil
}
