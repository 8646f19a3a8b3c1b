// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the Lambent language.
//
// Design overview:
//
//   - All AST nodes implement the Node interface via TokenLiteral, Pos and
//     String.
//   - Expressions and Statements each have a marker interface that embeds
//     Node to enable type-safe dispatch. A type switch over the concrete
//     node types is exhaustive.
//   - Application is strictly binary; f a b is Application(Application(f, a), b).
//   - String renders canonical source that parses back to the same tree.
//   - Trees are never mutated after the parser returns them, so a Program
//     may be shared between goroutines.
package ast

import (
	"strconv"
	"strings"

	"github.com/probechain/lambent/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// TokenLiteral returns the literal value of the token that originated this
	// node.
	TokenLiteral() string

	// Pos returns the source position of the node's first token.
	Pos() token.Position

	// String returns the canonical source form of the node.
	String() string
}

// Expression is a marker interface for all expression nodes. Every
// Expression is also a CommandArg.
type Expression interface {
	Node
	expressionNode()
	commandArgNode()
}

// Statement is a marker interface for all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// CommandArg is the argument of a command statement: either a
// *StringLiteral or any Expression.
type CommandArg interface {
	Node
	commandArgNode()
}

// ---------------------------------------------------------------------------
// Program
// ---------------------------------------------------------------------------

// Program is the root of every parse tree. Statements keep source order.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

// String returns the program's canonical source, one statement per line.
func (p *Program) String() string {
	var out strings.Builder
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteByte('\n')
	}
	return out.String()
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Variable is a reference to a name.
type Variable struct {
	Token token.Token // the IDENT token
	Name  string
}

func (e *Variable) expressionNode()      {}
func (e *Variable) commandArgNode()      {}
func (e *Variable) TokenLiteral() string { return e.Token.Literal }
func (e *Variable) Pos() token.Position  { return e.Token.Pos }
func (e *Variable) String() string       { return e.Name }

// Function is a single-parameter abstraction: param => body.
type Function struct {
	Token token.Token // the parameter IDENT token
	Param string
	Body  Expression
}

func (e *Function) expressionNode()      {}
func (e *Function) commandArgNode()      {}
func (e *Function) TokenLiteral() string { return e.Token.Literal }
func (e *Function) Pos() token.Position  { return e.Token.Pos }
func (e *Function) String() string {
	return "(" + e.Param + " => " + e.Body.String() + ")"
}

// Application applies Func to a single Arg.
type Application struct {
	Token token.Token // first token of Func
	Func  Expression
	Arg   Expression
}

func (e *Application) expressionNode()      {}
func (e *Application) commandArgNode()      {}
func (e *Application) TokenLiteral() string { return e.Token.Literal }
func (e *Application) Pos() token.Position  { return e.Token.Pos }
func (e *Application) String() string {
	return "(" + e.Func.String() + " " + e.Arg.String() + ")"
}

// Numeral is a non-negative integer literal.
type Numeral struct {
	Token token.Token // the NUMBER token
	Value int64
}

func (e *Numeral) expressionNode()      {}
func (e *Numeral) commandArgNode()      {}
func (e *Numeral) TokenLiteral() string { return e.Token.Literal }
func (e *Numeral) Pos() token.Position  { return e.Token.Pos }
func (e *Numeral) String() string       { return strconv.FormatInt(e.Value, 10) }

// StringLiteral is the text argument of a command. It is not an expression.
type StringLiteral struct {
	Token token.Token // the STRING token
	Value string
}

func (s *StringLiteral) commandArgNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return Quote(s.Value) }

// Quote renders v as a string literal the lexer reads back as v. Only the
// quote and the backslash are escaped.
func Quote(v string) string {
	var out strings.Builder
	out.Grow(len(v) + 2)
	out.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if c := v[i]; c == '"' || c == '\\' {
			out.WriteByte('\\')
		}
		out.WriteByte(v[i])
	}
	out.WriteByte('"')
	return out.String()
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ExprStmt is an expression evaluated for its effect: E;
type ExprStmt struct {
	Expr Expression
}

func (s *ExprStmt) statementNode()       {}
func (s *ExprStmt) TokenLiteral() string { return s.Expr.TokenLiteral() }
func (s *ExprStmt) Pos() token.Position  { return s.Expr.Pos() }
func (s *ExprStmt) String() string       { return s.Expr.String() + ";" }

// LetStmt binds Name to Value: let name = E;
type LetStmt struct {
	Token token.Token // the 'let' token
	Name  string
	Value Expression
}

func (s *LetStmt) statementNode()       {}
func (s *LetStmt) TokenLiteral() string { return s.Token.Literal }
func (s *LetStmt) Pos() token.Position  { return s.Token.Pos }
func (s *LetStmt) String() string {
	return "let " + s.Name + " = " + s.Value.String() + ";"
}

// CommandStmt is a directive such as #print "done"; or #print x;
type CommandStmt struct {
	Token token.Token // the COMMAND token
	Name  string      // without the leading '#'
	Arg   CommandArg
}

func (s *CommandStmt) statementNode()       {}
func (s *CommandStmt) TokenLiteral() string { return s.Token.Literal }
func (s *CommandStmt) Pos() token.Position  { return s.Token.Pos }
func (s *CommandStmt) String() string {
	return "#" + s.Name + " " + s.Arg.String() + ";"
}
