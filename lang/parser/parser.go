// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for the Lambent
// language.
//
// Design overview:
//
//   - One token of lookahead. The next token is pulled from the lexer only
//     when a production needs to look at it, so errors surface in source
//     order.
//   - Application is left-associative: juxtaposed atoms fold into a chain of
//     binary Application nodes.
//   - x => body is recognised when an identifier is followed by =>. The body
//     is a full expression, so a function extends as far right as possible.
//   - By default the first error stops the parse. With Config.Recover set the
//     parser skips past the next ';' and keeps going, collecting errors.
//   - A Program is only returned when the whole input parsed cleanly.
package parser

import (
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/probechain/lambent/lang/ast"
	"github.com/probechain/lambent/lang/lexer"
	"github.com/probechain/lambent/lang/token"
)

// Config tunes error handling. The zero value is fail-fast.
type Config struct {
	// Recover makes the parser resynchronise after an error and report
	// every broken statement instead of only the first.
	Recover bool

	// MaxErrors bounds the number of errors collected in recovery mode.
	// Zero means no limit.
	MaxErrors int
}

// Parser holds the mutable state for a single parse run.
type Parser struct {
	lex  *lexer.Lexer
	cfg  Config
	tok  token.Token // lookahead, valid when have is set
	have bool
}

// New creates a parser reading from lex. A nil cfg selects the defaults.
func New(lex *lexer.Lexer, cfg *Config) *Parser {
	p := &Parser{lex: lex}
	if cfg != nil {
		p.cfg = *cfg
	}
	return p
}

// Parse is the public entry point. It parses source into a Program or
// returns the error that stopped it. In recovery mode the error is a
// *multierror.Error listing every problem in source order.
func Parse(filename, source string, cfg *Config) (*ast.Program, error) {
	return New(lexer.New(filename, source), cfg).ParseProgram()
}

// ParseString parses an unnamed source with the default configuration.
func ParseString(source string) (*ast.Program, error) {
	return Parse("", source, nil)
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// peek returns the lookahead token, pulling it from the lexer if needed.
func (p *Parser) peek() (token.Token, error) {
	if !p.have {
		tok, err := p.lex.NextToken()
		if err != nil {
			return token.Token{}, err
		}
		p.tok, p.have = tok, true
	}
	return p.tok, nil
}

// next consumes the lookahead token.
func (p *Parser) next() {
	p.have = false
}

// expect consumes the lookahead token if it has the given type. Otherwise
// it returns ErrMissingToken and leaves the token in place.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	tok, err := p.peek()
	if err != nil {
		return tok, err
	}
	if tok.Type != typ {
		return tok, &Error{
			Kind:     ErrMissingToken,
			Found:    tok.Type,
			Expected: typ,
			Literal:  tok.Literal,
			Pos:      tok.Pos,
		}
	}
	p.next()
	return tok, nil
}

func unexpected(tok token.Token) error {
	return &Error{Kind: ErrUnexpectedToken, Found: tok.Type, Literal: tok.Literal, Pos: tok.Pos}
}

// skipStatement discards tokens up to and including the next ';' or until
// EOF. Lexical errors met on the way are reported to record; it returns
// false once record asks to stop.
func (p *Parser) skipStatement(record func(error) bool) bool {
	for {
		tok, err := p.peek()
		if err != nil {
			if !record(err) {
				return false
			}
			continue
		}
		if tok.Type == token.EOF {
			return true
		}
		p.next()
		if tok.Type == token.SEMICOLON {
			return true
		}
	}
}

// ---------------------------------------------------------------------------
// Program & statements
// ---------------------------------------------------------------------------

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var errs *multierror.Error
	// record adds err to the list and reports whether parsing may go on.
	record := func(err error) bool {
		errs = multierror.Append(errs, err)
		return p.cfg.MaxErrors <= 0 || len(errs.Errors) < p.cfg.MaxErrors
	}

	prog := &ast.Program{Statements: []ast.Statement{}}
	for {
		tok, err := p.peek()
		if err == nil && tok.Type == token.EOF {
			break
		}
		var stmt ast.Statement
		if err == nil {
			stmt, err = p.parseStatement()
		}
		if err != nil {
			if !p.cfg.Recover {
				return nil, err
			}
			if !record(err) || !p.skipStatement(record) {
				break
			}
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	if errs != nil {
		return nil, errs
	}
	return prog, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.LET:
		return p.parseLetStmt()
	case token.COMMAND:
		return p.parseCommandStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseLetStmt parses: let IDENT = Expression ;
func (p *Parser) parseLetStmt() (*ast.LetStmt, error) {
	letTok, _ := p.peek()
	p.next()

	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Token: letTok, Name: name.Literal, Value: value}, nil
}

// parseCommandStmt parses: COMMAND (STRING | Expression) ;
func (p *Parser) parseCommandStmt() (*ast.CommandStmt, error) {
	cmdTok, _ := p.peek()
	p.next()

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var arg ast.CommandArg
	if tok.Type == token.STRING {
		p.next()
		arg = &ast.StringLiteral{Token: tok, Value: tok.Literal}
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		arg = expr
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.CommandStmt{Token: cmdTok, Name: cmdTok.Literal, Arg: arg}, nil
}

// parseExprStmt parses: Expression ;
func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// parseExpression parses an application chain: Atom Atom*
func (p *Parser) parseExpression() (ast.Expression, error) {
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !tok.Type.CanStartAtom() {
			return left, nil
		}
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = &ast.Application{Token: start, Func: left, Arg: arg}
	}
}

// parseAtom parses: IDENT ("=>" Expression)? | NUMBER | "(" Expression ")"
func (p *Parser) parseAtom() (ast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.IDENT:
		p.next()
		after, err := p.peek()
		if err != nil {
			return nil, err
		}
		if after.Type != token.FATARROW {
			return &ast.Variable{Token: tok, Name: tok.Literal}, nil
		}
		p.next()
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Function{Token: tok, Param: tok.Literal, Body: body}, nil

	case token.NUMBER:
		p.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &Error{Kind: ErrNumberOverflow, Found: tok.Type, Literal: tok.Literal, Pos: tok.Pos}
		}
		return &ast.Numeral{Token: tok, Value: v}, nil

	case token.LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, unexpected(tok)
}
