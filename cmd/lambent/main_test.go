// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	log "gopkg.in/inconshreveable/log15.v2"

	"github.com/probechain/lambent/lang/loader"
	"github.com/probechain/lambent/lang/parser"
)

// runApp runs the lambent command line with args and returns what it wrote
// to standard output and standard error.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"lambent"}, args...))
	return stdout.String(), stderr.String(), err
}

// writeFile creates a file with the given content in a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sample = "let id = x => x;\n#print id 5;\n"

func TestFmt(t *testing.T) {
	path := writeFile(t, "id.lam", sample)
	stdout, _, err := runApp(t, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "let id = (x => x);\n#print (id 5);\n", stdout)
}

func TestAst(t *testing.T) {
	path := writeFile(t, "id.lam", sample)
	stdout, _, err := runApp(t, "ast", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Program(statements=2)\n [0]\n  LetStmt(name=id)\n"), stdout)
	assert.Contains(t, stdout, "CommandStmt(name=print, expr)")
}

func TestAstSyntaxError(t *testing.T) {
	path := writeFile(t, "bad.lam", "let x = (f a;\n")
	stdout, stderr, err := runApp(t, "ast", path)
	assert.True(t, errors.Is(err, errSyntax), "got %v", err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "PARSE ERROR in "+path+" at 1:13: expected \")\", found \";\"")
	assert.Contains(t, stderr, "   1 | let x = (f a;")
}

func TestTokens(t *testing.T) {
	path := writeFile(t, "id.lam", `#print "done";`)
	stdout, _, err := runApp(t, "tokens", path)
	require.NoError(t, err)
	for _, want := range []string{"LINE", "COLUMN", "KIND", "LITERAL", "COMMAND", "print", "STRING", `"done"`, "EOF"} {
		assert.Contains(t, stdout, want)
	}
}

func TestTokensLexError(t *testing.T) {
	path := writeFile(t, "bad.lam", "x @")
	stdout, stderr, err := runApp(t, "tokens", path)
	assert.True(t, errors.Is(err, errSyntax))
	assert.Contains(t, stdout, "IDENT")
	assert.NotContains(t, stdout, "EOF")
	assert.Contains(t, stderr, "LEXICAL ERROR in "+path+" at 1:3: unexpected character '@'")
}

func TestDump(t *testing.T) {
	path := writeFile(t, "id.lam", sample)
	stdout, _, err := runApp(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ast.LetStmt")
	assert.Contains(t, stdout, `"id"`)
	assert.Contains(t, stdout, "ast.Function")
}

func TestCheck(t *testing.T) {
	good1 := writeFile(t, "a.lam", sample)
	good2 := writeFile(t, "b.lam", "f a b;")
	bad := writeFile(t, "c.lam", "let = 1;\n#print;\n")

	stdout, stderr, err := runApp(t, "--verbosity", "0", "check", good1, bad, good2)
	assert.True(t, errors.Is(err, errSyntax), "got %v", err)
	assert.Equal(t, "3 files checked, 1 with errors\n", stdout)
	assert.Equal(t, 1, strings.Count(stderr, "PARSE ERROR"), stderr)
	assert.Contains(t, stderr, "PARSE ERROR in "+bad+" at 1:5")

	stdout, _, err = runApp(t, "check", good1, good2)
	require.NoError(t, err)
	assert.Equal(t, "2 files checked, 0 with errors\n", stdout)
}

func TestCheckRecover(t *testing.T) {
	bad := writeFile(t, "c.lam", "let = 1;\nok;\n#print;\n")

	_, stderr, err := runApp(t, "--verbosity", "0", "--recover", "check", bad)
	assert.True(t, errors.Is(err, errSyntax))
	assert.Equal(t, 2, strings.Count(stderr, "PARSE ERROR"), stderr)

	_, stderr, err = runApp(t, "--verbosity", "0", "--recover", "--maxerrors", "1", "check", bad)
	assert.True(t, errors.Is(err, errSyntax))
	assert.Equal(t, 1, strings.Count(stderr, "PARSE ERROR"), stderr)
}

func TestCheckMissingFile(t *testing.T) {
	_, _, err := runApp(t, "check", filepath.Join(t.TempDir(), "nope.lam"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckLogs(t *testing.T) {
	path := writeFile(t, "a.lam", sample)
	_, stderr, err := runApp(t, "--verbosity", "4", "check", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Checked source files")
	assert.Contains(t, stderr, "files=1")
	assert.Contains(t, stderr, "Parsed source")

	_, stderr, err = runApp(t, "--verbosity", "1", "check", path)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestUsageErrors(t *testing.T) {
	for _, cmd := range []string{"tokens", "ast", "fmt", "dump", "check"} {
		_, _, err := runApp(t, cmd)
		require.Error(t, err, cmd)
		assert.Contains(t, err.Error(), "usage: lambent "+cmd, cmd)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lambent\nVersion: "+version+"\n", stdout)
}

func TestDumpConfigRoundTrip(t *testing.T) {
	stdout, _, err := runApp(t, "--recover", "--maxerrors", "7", "--workers", "2", "--nocolor", "dumpconfig")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[Parser]")
	assert.Contains(t, stdout, "[Loader]")
	assert.Contains(t, stdout, "[Log]")

	want := lambentConfig{
		Parser: parser.Config{Recover: true, MaxErrors: 7},
		Loader: loader.Config{CacheSize: loader.DefaultConfig.CacheSize, Workers: 2},
		Log:    logConfig{Verbosity: 3, Color: false},
	}
	got := defaultConfig()
	require.NoError(t, loadConfig(writeFile(t, "dump.toml", stdout), &got))
	assert.Equal(t, want, got)

	// The same configuration written to a file.
	out := filepath.Join(t.TempDir(), "out.toml")
	_, _, err = runApp(t, "--recover", "--maxerrors", "7", "--workers", "2", "--nocolor", "dumpconfig", out)
	require.NoError(t, err)
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(written))
}

func TestConfigFilePrecedence(t *testing.T) {
	file := writeFile(t, "lambent.toml", "[Parser]\nRecover = true\nMaxErrors = 3\n\n[Loader]\nCacheSize = 5\n")

	stdout, _, err := runApp(t, "--config", file, "--maxerrors", "9", "dumpconfig")
	require.NoError(t, err)

	got := defaultConfig()
	require.NoError(t, loadConfig(writeFile(t, "dump.toml", stdout), &got))
	assert.True(t, got.Parser.Recover, "from file")
	assert.Equal(t, 9, got.Parser.MaxErrors, "flag beats file")
	assert.Equal(t, 5, got.Loader.CacheSize, "from file")
	assert.Equal(t, 3, got.Log.Verbosity, "default")
}

func TestConfigUnknownField(t *testing.T) {
	file := writeFile(t, "lambent.toml", "[Parser]\nBogus = 1\n")
	cfg := defaultConfig()
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bogus")

	_, _, err = runApp(t, "--config", file, "version")
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	_, _, err := runApp(t, "--verbosity", "9", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbosity 9")

	_, _, err = runApp(t, "--maxerrors", "-1", "version")
	require.Error(t, err)

	_, _, err = runApp(t, "--cache", "-1", "fmt", writeFile(t, "a.lam", sample))
	assert.ErrorIs(t, err, loader.ErrInvalidConfig)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.LvlCrit, logLevel(0))
	assert.Equal(t, log.LvlInfo, logLevel(3))
	assert.Equal(t, log.LvlDebug, logLevel(4))
	assert.Equal(t, log.LvlDebug, logLevel(5))
}

func TestNoColorWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, useColor(logConfig{Color: true}, &buf))
	assert.False(t, isTerminal(&buf))
}
