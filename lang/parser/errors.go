// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/probechain/lambent/lang/token"
)

var (
	// ErrUnexpectedToken is returned when a token cannot begin the construct
	// the parser is looking at.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrMissingToken is returned when a specific token was required but a
	// different one was found.
	ErrMissingToken = errors.New("missing expected token")

	// ErrNumberOverflow is returned for a numeral that does not fit in int64.
	ErrNumberOverflow = errors.New("number out of range")
)

// Error is a syntax error. Kind is one of the sentinel errors above.
type Error struct {
	Kind     error
	Found    token.Type // kind of the offending token
	Expected token.Type // ErrMissingToken only
	Literal  string     // literal of the offending token
	Pos      token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message returns the error text without the position prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return "unexpected " + describeToken(e.Found, e.Literal)
	case ErrMissingToken:
		return fmt.Sprintf("expected %s, found %s", describeType(e.Expected), describeToken(e.Found, e.Literal))
	case ErrNumberOverflow:
		return fmt.Sprintf("number %s does not fit in 64 bits", e.Literal)
	}
	return e.Kind.Error()
}

// Position returns where the error was detected.
func (e *Error) Position() token.Position { return e.Pos }

func (e *Error) Unwrap() error { return e.Kind }

// describeType names a token kind for an error message: punctuation and
// keywords are quoted, token classes are not.
func describeType(typ token.Type) string {
	if typ == token.EOF || typ.IsLiteral() {
		return typ.String()
	}
	return strconv.Quote(typ.String())
}

// describeToken is describeType plus the literal for token classes.
func describeToken(typ token.Type, literal string) string {
	if typ.IsLiteral() {
		return typ.String() + " " + strconv.Quote(literal)
	}
	return describeType(typ)
}
