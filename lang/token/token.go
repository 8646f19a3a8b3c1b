// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the Lambent language.
//
// The token set covers grouping parentheses, the statement terminator, the
// binding arrows = and =>, literals, identifiers, #commands and the single
// reserved word let.
package token

import "fmt"

// Token represents a lexical token. Literal is owned by the token and does
// not alias the lexer's input buffer.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// Position tracks source location. Line and Column are 1-based, Offset is
// the 0-based byte offset of the first character.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool { return p.Line > 0 }

// Type is the set of lexical token types.
type Type int

const (
	EOF Type = iota

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;

	// Binding arrows
	ASSIGN   // =
	FATARROW // =>

	// Literals
	NUMBER  // 42
	STRING  // "hello"
	IDENT   // x, result, div_2
	COMMAND // #print

	keywordStart
	LET // let
	keywordEnd
)

var tokenNames = [...]string{
	EOF: "EOF",

	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",

	ASSIGN:   "=",
	FATARROW: "=>",

	NUMBER:  "NUMBER",
	STRING:  "STRING",
	IDENT:   "IDENT",
	COMMAND: "COMMAND",

	LET: "let",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsKeyword returns true if the token is a reserved word.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token carries literal text.
func (t Type) IsLiteral() bool {
	return t >= NUMBER && t <= COMMAND
}

// CanStartAtom reports whether a token of this type can begin an atom, and
// therefore extend an application chain.
func (t Type) CanStartAtom() bool {
	return t == IDENT || t == NUMBER || t == LPAREN
}

var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
