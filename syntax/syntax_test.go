package syntax

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighlightLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "declaration",
			input: "int x = 5;",
			expected: []Token{
				{"int", Keyword},
				{" ", Plain},
				{"x", Plain},
				{" ", Plain},
				{"=", Operator},
				{" ", Plain},
				{"5", Number},
				{";", Punctuation},
			},
		},
		{
			name:  "function call with string",
			input: `print("hi")`,
			expected: []Token{
				{"print", Function},
				{"(", Punctuation},
				{`"hi"`, String},
				{")", Punctuation},
			},
		},
		{
			name:  "trailing comment",
			input: "x++ // bump",
			expected: []Token{
				{"x", Plain},
				{"++", Operator},
				{" ", Plain},
				{"// bump", Comment},
			},
		},
		{
			name:  "comment marker inside string",
			input: `s = "http://example.com"`,
			expected: []Token{
				{"s", Plain},
				{" ", Plain},
				{"=", Operator},
				{" ", Plain},
				{`"http://example.com"`, String},
			},
		},
		{
			name:  "preprocessor",
			input: "#include <stdio.h>",
			expected: []Token{
				{"#include", Preprocessor},
				{" ", Plain},
				{"<", Operator},
				{"stdio", Plain},
				{".", Punctuation},
				{"h", Plain},
				{">", Operator},
			},
		},
		{
			name:  "shell comment",
			input: "ls # list",
			expected: []Token{
				{"ls", Plain},
				{" ", Plain},
				{"# list", Comment},
			},
		},
		{
			name:  "numbers",
			input: "0xFF 0b101 0o17 3.14e-2f 0x",
			expected: []Token{
				{"0xFF", Number},
				{" ", Plain},
				{"0b101", Number},
				{" ", Plain},
				{"0o17", Number},
				{" ", Plain},
				{"3.14e-2f", Number},
				{" ", Plain},
				{"0", Number},
				{"x", Plain},
			},
		},
		{
			name:  "types constants and variables",
			input: "String Foo NULL $bar",
			expected: []Token{
				{"String", Type},
				{" ", Plain},
				{"Foo", Type},
				{" ", Plain},
				{"NULL", Constant},
				{" ", Plain},
				{"$bar", Variable},
			},
		},
		{
			name:  "longest operator wins",
			input: "a===b",
			expected: []Token{
				{"a", Plain},
				{"===", Operator},
				{"b", Plain},
			},
		},
		{
			name:  "unterminated string",
			input: `x = 'abc`,
			expected: []Token{
				{"x", Plain},
				{" ", Plain},
				{"=", Operator},
				{" ", Plain},
				{"'abc", String},
			},
		},
		{
			name:  "escaped quote in literal",
			input: `"a\"b"`,
			expected: []Token{
				{`"a\"b"`, String},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HighlightLine(tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("HighlightLine(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

// The quote-parity scan that guards comment markers does not understand
// escapes. An escaped quote before a marker flips the parity, so the marker is
// taken to be inside a string and no comment is found.
func TestCommentParityIgnoresEscapes(t *testing.T) {
	line := `s = "a\"" // note`
	toks := HighlightLine(line)
	for _, tok := range toks {
		if tok.Kind == Comment {
			t.Fatalf("expected no comment token, got %q", tok.Text)
		}
	}
	if got := joinTokens(toks); got != line {
		t.Errorf("Expected: %s Actual: %s", line, got)
	}
}

func TestHighlightCoverage(t *testing.T) {
	inputs := []string{
		"",
		"func main() {\n\tfmt.Println(\"héllo, 世界\") // greet\n}",
		"SELECT * FROM t -- all rows",
		"if (a >= 0x1F && b != 'c') { return a...b; }",
		"/* block */ x",
		"weird ¿ ☃ input ``` `",
		"#!/bin/sh\necho $HOME",
		"x = \"\xff\"",
		"\xfe\xff // \xc3",
		"caf\xc3 := 1",
	}
	for _, in := range inputs {
		if got := joinTokens(Highlight(in)); got != in {
			t.Errorf("Expected: %q Actual: %q", in, got)
		}
	}
}

func TestHighlightKeepsNewlines(t *testing.T) {
	toks := Highlight("a\nb")
	expected := []Token{{"a", Plain}, {"\n", Plain}, {"b", Plain}}
	if diff := cmp.Diff(expected, toks); diff != "" {
		t.Errorf("Highlight mismatch (-want +got):\n%s", diff)
	}
}

func TestKindBold(t *testing.T) {
	for _, k := range []Kind{Keyword, Type, Function} {
		if !k.Bold() {
			t.Errorf("%s should be bold", k)
		}
	}
	for _, k := range []Kind{Plain, String, Number, Comment, Operator} {
		if k.Bold() {
			t.Errorf("%s should not be bold", k)
		}
	}
}

func joinTokens(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}
