// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package loader reads Lambent sources from disk and parses them, caching
// the resulting trees and fanning out over many files at once.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"
	log "gopkg.in/inconshreveable/log15.v2"

	"github.com/probechain/lambent/lang/ast"
	"github.com/probechain/lambent/lang/parser"
)

// ErrInvalidConfig is returned by New for unusable settings.
var ErrInvalidConfig = errors.New("invalid loader config")

// Config contains the loader's tunables.
type Config struct {
	CacheSize int // number of parsed programs kept; 0 disables the cache
	Workers   int // files parsed at once by ParseFiles; 0 means one per CPU
}

// DefaultConfig contains the default settings used by the lambent tool.
var DefaultConfig = Config{
	CacheSize: 128,
	Workers:   0,
}

// Result is the outcome of parsing one file in a batch.
type Result struct {
	Path    string
	Source  string
	Program *ast.Program // nil when Err is set
	Err     error        // lexical or syntax error(s)
}

// Loader parses sources and remembers the successful parses. It is safe
// for concurrent use.
type Loader struct {
	cache   *lru.ARCCache // cacheKey -> *ast.Program, nil when disabled
	workers int
	parser  parser.Config
	log     log.Logger
}

// New creates a loader. pcfg configures every parse; nil selects the
// parser defaults.
func New(cfg Config, pcfg *parser.Config) (*Loader, error) {
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("%w: negative cache size %d", ErrInvalidConfig, cfg.CacheSize)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, cfg.Workers)
	}
	l := &Loader{
		workers: cfg.Workers,
		log:     log.New("module", "loader"),
	}
	if l.workers == 0 {
		l.workers = runtime.NumCPU()
	}
	if pcfg != nil {
		l.parser = *pcfg
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.NewARC(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		l.cache = cache
	}
	return l, nil
}

// cacheKey identifies a source by name and content. The name is part of
// the key because it is recorded in every token position.
type cacheKey [32]byte

func newCacheKey(name, src string) cacheKey {
	var key cacheKey
	hasher := sha3.New256()
	hasher.Write([]byte(name))
	hasher.Write([]byte{0})
	hasher.Write([]byte(src))
	hasher.Sum(key[:0])
	return key
}

// ParseSource parses src, reporting positions against name. Repeated calls
// with the same name and source return the same tree while it is cached.
func (l *Loader) ParseSource(name, src string) (*ast.Program, error) {
	start := time.Now()
	key := newCacheKey(name, src)
	if l.cache != nil {
		if v, ok := l.cache.Get(key); ok {
			prog := v.(*ast.Program)
			l.log.Debug("Parsed source", "file", name, "statements", len(prog.Statements), "cached", true, "elapsed", time.Since(start))
			return prog, nil
		}
	}
	cfg := l.parser
	prog, err := parser.Parse(name, src, &cfg)
	if err != nil {
		l.log.Debug("Failed to parse source", "file", name, "err", err, "elapsed", time.Since(start))
		return nil, err
	}
	if l.cache != nil {
		l.cache.Add(key, prog)
	}
	l.log.Debug("Parsed source", "file", name, "statements", len(prog.Statements), "cached", false, "elapsed", time.Since(start))
	return prog, nil
}

// ParseFile reads and parses the file at path.
func (l *Loader) ParseFile(path string) (*ast.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.ParseSource(path, string(src))
}

// ParseFiles parses all paths concurrently, returning one Result per path
// in input order. Syntax errors are reported per file in Result.Err; a file
// that cannot be read or a cancelled context fails the whole batch.
func (l *Loader) ParseFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			src := string(data)
			prog, err := l.ParseSource(path, src)
			results[i] = Result{Path: path, Source: src, Program: prog, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Len returns the number of cached programs.
func (l *Loader) Len() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}
