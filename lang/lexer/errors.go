// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"errors"
	"fmt"

	"github.com/probechain/lambent/lang/token"
)

var (
	// ErrUnexpectedChar is returned for a character that cannot start any token.
	ErrUnexpectedChar = errors.New("unexpected character")

	// ErrUnterminatedString is returned when input ends inside a string literal.
	ErrUnterminatedString = errors.New("unterminated string")
)

// Error is a lexical error. Kind is one of the sentinel errors above and is
// exposed through Unwrap so callers can use errors.Is.
type Error struct {
	Kind error
	Char rune           // offending character, ErrUnexpectedChar only
	Pos  token.Position // for strings, the opening quote
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message returns the error text without the position prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case ErrUnterminatedString:
		return "unterminated string literal"
	}
	return e.Kind.Error()
}

// Position returns where the error was detected.
func (e *Error) Position() token.Position { return e.Pos }

func (e *Error) Unwrap() error { return e.Kind }
