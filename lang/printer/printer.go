// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package printer renders a Lambent AST as an indented tree for humans.
// The layout is meant for debugging and may change between releases; use
// Program.String for machine-readable output.
package printer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/probechain/lambent/lang/ast"
)

// ErrNilProgram is returned when asked to print a nil program.
var ErrNilProgram = errors.New("printer: nil program")

type printer struct {
	w   io.Writer
	err error // first write error, sticky
}

func (p *printer) line(level int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, strings.Repeat(" ", level)); err != nil {
		p.err = err
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// Fprint writes the tree for prog to w.
func Fprint(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return ErrNilProgram
	}
	p := &printer{w: w}
	p.line(0, "Program(statements=%d)", len(prog.Statements))
	for i, stmt := range prog.Statements {
		p.line(1, "[%d]", i)
		p.statement(stmt, 2)
	}
	return p.err
}

// Sprint returns the tree for prog as a string. A nil program yields "".
func Sprint(prog *ast.Program) string {
	var buf bytes.Buffer
	if err := Fprint(&buf, prog); err != nil {
		return ""
	}
	return buf.String()
}

func (p *printer) statement(stmt ast.Statement, level int) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		p.line(level, "ExprStmt")
		p.expression(s.Expr, level+2)
	case *ast.LetStmt:
		p.line(level, "LetStmt(name=%s)", s.Name)
		p.expression(s.Value, level+2)
	case *ast.CommandStmt:
		if lit, ok := s.Arg.(*ast.StringLiteral); ok {
			p.line(level, "CommandStmt(name=%s, str=%s)", s.Name, ast.Quote(lit.Value))
			return
		}
		expr, _ := s.Arg.(ast.Expression)
		p.line(level, "CommandStmt(name=%s, expr)", s.Name)
		p.expression(expr, level+2)
	default:
		p.line(level, "%T", stmt)
	}
}

func (p *printer) expression(expr ast.Expression, level int) {
	switch e := expr.(type) {
	case *ast.Variable:
		p.line(level, "Variable(%s)", e.Name)
	case *ast.Numeral:
		p.line(level, "Numeral(%d)", e.Value)
	case *ast.Function:
		p.line(level, "Function(param=%s)", e.Param)
		p.expression(e.Body, level+2)
	case *ast.Application:
		p.line(level, "Application")
		p.line(level+2, "Func:")
		p.expression(e.Func, level+4)
		p.line(level+2, "Arg:")
		p.expression(e.Arg, level+4)
	default:
		p.line(level, "%T", expr)
	}
}
