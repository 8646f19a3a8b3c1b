// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/lambent/lang/loader"
	"github.com/probechain/lambent/lang/parser"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[FILE]",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows the effective configuration as TOML.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Verbosity int  // 0 = crit ... 4 = debug, 5 = everything
	Color     bool // colored output when writing to a terminal
}

type lambentConfig struct {
	Parser parser.Config
	Loader loader.Config
	Log    logConfig
}

func defaultConfig() lambentConfig {
	return lambentConfig{
		Loader: loader.DefaultConfig,
		Log: logConfig{
			Verbosity: 3,
			Color:     true,
		},
	}
}

func loadConfig(file string, cfg *lambentConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig assembles the configuration: defaults, then the config file,
// then command line flags.
func makeConfig(ctx *cli.Context) (lambentConfig, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(recoverFlag.Name) {
		cfg.Parser.Recover = ctx.GlobalBool(recoverFlag.Name)
	}
	if ctx.GlobalIsSet(maxErrorsFlag.Name) {
		cfg.Parser.MaxErrors = ctx.GlobalInt(maxErrorsFlag.Name)
	}
	if ctx.GlobalIsSet(workersFlag.Name) {
		cfg.Loader.Workers = ctx.GlobalInt(workersFlag.Name)
	}
	if ctx.GlobalIsSet(cacheFlag.Name) {
		cfg.Loader.CacheSize = ctx.GlobalInt(cacheFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Log.Color = false
	}

	if cfg.Log.Verbosity < 0 || cfg.Log.Verbosity > 5 {
		return cfg, fmt.Errorf("verbosity %d out of range [0, 5]", cfg.Log.Verbosity)
	}
	if cfg.Parser.MaxErrors < 0 {
		return cfg, fmt.Errorf("negative error limit %d", cfg.Parser.MaxErrors)
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	var dump io.Writer = ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
