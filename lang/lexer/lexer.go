// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, pull-based lexer for the Lambent
// language.
//
// Design principles:
//   - One token per NextToken call; all state lives in the Lexer value, so
//     independent lexers never interfere.
//   - Positions are captured before the first character of a token is
//     consumed. Columns count characters, not bytes.
//   - Lexical failures are returned as *Error values, never as tokens.
//   - // line comments are skipped, not emitted.
//   - String literals decode only \" and \\; any other backslash pair is
//     kept verbatim.
package lexer

import (
	"unicode/utf8"

	"github.com/probechain/lambent/lang/token"
)

// Lexer holds the state for a single tokenization run.
type Lexer struct {
	filename string
	input    []byte

	off  int  // byte offset of ch
	line int  // 1-based line of ch
	col  int  // 1-based column of ch
	ch   byte // current character; meaningless when eof is set
	eof  bool
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []byte(input),
		line:     1,
		col:      1,
	}
	if len(l.input) == 0 {
		l.eof = true
	} else {
		l.ch = l.input[0]
	}
	return l
}

// advance moves to the next byte in the input, updating line/column tracking.
func (l *Lexer) advance() {
	if l.eof {
		return
	}
	prev := l.ch
	l.off++
	if l.off >= len(l.input) {
		l.off = len(l.input)
		l.eof = true
		l.ch = 0
	} else {
		l.ch = l.input[l.off]
	}
	switch {
	case prev == '\n':
		l.line++
		l.col = 1
	case l.eof || !isContinuation(l.ch):
		l.col++
	}
}

// peek returns the byte after the current character without consuming it.
// Returns 0 if there is none.
func (l *Lexer) peek() byte {
	if l.off+1 >= len(l.input) {
		return 0
	}
	return l.input[l.off+1]
}

// currentPos returns a token.Position capturing the lexer's state right now.
// Call this before consuming the first character of a token.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
		Offset: l.off,
	}
}

func makeToken(typ token.Type, literal string, pos token.Position) token.Token {
	return token.Token{Type: typ, Literal: literal, Pos: pos}
}

// skipWhitespace consumes space, tab, carriage return, newline characters and
// // line comments. The newline ending a comment is left for the whitespace
// loop so line accounting stays in one place.
func (l *Lexer) skipWhitespace() {
	for !l.eof {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for !l.eof && l.ch != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken scans and returns the next token from the input. After EOF is
// reached, subsequent calls continue returning EOF tokens.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.eof {
		return makeToken(token.EOF, "", pos), nil
	}

	ch := l.ch
	switch {
	case isIdentStart(ch):
		lit := l.readRun(isIdentContinue)
		return makeToken(token.LookupIdent(lit), lit, pos), nil

	case isDigit(ch):
		return makeToken(token.NUMBER, l.readRun(isDigit), pos), nil

	case ch == '"':
		return l.readString(pos)

	case ch == '#':
		l.advance() // consume '#'
		if l.eof || !isIdentContinue(l.ch) {
			return token.Token{}, &Error{Kind: ErrUnexpectedChar, Char: '#', Pos: pos}
		}
		return makeToken(token.COMMAND, l.readRun(isIdentContinue), pos), nil
	}

	switch ch {
	case '(':
		l.advance()
		return makeToken(token.LPAREN, "(", pos), nil
	case ')':
		l.advance()
		return makeToken(token.RPAREN, ")", pos), nil
	case ';':
		l.advance()
		return makeToken(token.SEMICOLON, ";", pos), nil
	case '=':
		l.advance()
		if !l.eof && l.ch == '>' {
			l.advance()
			return makeToken(token.FATARROW, "=>", pos), nil
		}
		return makeToken(token.ASSIGN, "=", pos), nil
	}

	// Anything else is an error. Consume the whole character so a caller
	// that keeps going resumes at the next one.
	r, size := utf8.DecodeRune(l.input[l.off:])
	for i := 0; i < size; i++ {
		l.advance()
	}
	return token.Token{}, &Error{Kind: ErrUnexpectedChar, Char: r, Pos: pos}
}

// Tokenize returns all tokens up to and including the final EOF. It stops at
// the first lexical error and returns the tokens scanned before it.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// readRun consumes the current character and every following character
// accepted by pred, returning them as a fresh string.
func (l *Lexer) readRun(pred func(byte) bool) string {
	start := l.off
	l.advance()
	for !l.eof && pred(l.ch) {
		l.advance()
	}
	return string(l.input[start:l.off])
}

// readString reads a string literal starting at the opening quote. The
// literal excludes both quotes.
func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	l.advance() // consume opening '"'

	var buf []byte
	for {
		if l.eof {
			return token.Token{}, &Error{Kind: ErrUnterminatedString, Pos: pos}
		}
		switch l.ch {
		case '"':
			l.advance() // consume closing '"'
			return makeToken(token.STRING, string(buf), pos), nil
		case '\\':
			l.advance()
			if l.eof {
				return token.Token{}, &Error{Kind: ErrUnterminatedString, Pos: pos}
			}
			if l.ch != '"' && l.ch != '\\' {
				buf = append(buf, '\\')
			}
			buf = append(buf, l.ch)
			l.advance()
		default:
			buf = append(buf, l.ch)
			l.advance()
		}
	}
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isContinuation reports whether ch is a UTF-8 continuation byte.
func isContinuation(ch byte) bool {
	return ch&0xC0 == 0x80
}
