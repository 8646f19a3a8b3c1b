// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"testing"
)

// FuzzParse checks that arbitrary input never panics, that parsing is
// deterministic, and that accepted programs survive a render/parse cycle.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"let id = x => x;\n#print id 5;",
		"let result = div 5 2; // Comment\n#print result;",
		`#print "done";`,
		`#print "a \"b\" \\";`,
		"f (x => x y) 2;",
		"(((",
		"let = ;",
		"\"unterminated",
		"# x;",
		"99999999999999999999999;",
		"x => y => z => x z (y z);",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		prog, err := ParseString(src)
		prog2, err2 := ParseString(src)
		if (err == nil) != (err2 == nil) {
			t.Fatalf("non-deterministic result for %q: %v vs %v", src, err, err2)
		}
		if err != nil {
			if err.Error() != err2.Error() {
				t.Fatalf("non-deterministic error for %q: %v vs %v", src, err, err2)
			}
			if prog != nil {
				t.Fatalf("program returned together with error for %q", src)
			}
			return
		}
		text := prog.String()
		if text != prog2.String() {
			t.Fatalf("non-deterministic tree for %q", src)
		}
		again, err := ParseString(text)
		if err != nil {
			t.Fatalf("canonical form %q of %q does not parse: %v", text, src, err)
		}
		if again.String() != text {
			t.Fatalf("rendering is not a fixed point:\n%q\n%q", text, again.String())
		}
		// Recovery mode must agree with fail-fast mode on clean input.
		rec, err := Parse("", src, &Config{Recover: true})
		if err != nil || rec.String() != text {
			t.Fatalf("recovery mode disagrees on %q: %v", src, err)
		}
	})
}
