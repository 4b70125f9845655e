// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestLex(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []TokenType
	}{
		{"empty", "", []TokenType{TokEOF}},
		{"list", "(+ 1 2)", []TokenType{TokListStart, TokSymbol, TokNumber, TokNumber, TokListEnd, TokEOF}},
		{"hash", "{:a 1}", []TokenType{TokHashStart, TokKeyword, TokNumber, TokHashEnd, TokEOF}},
		{"nil and bools", "nil true false", []TokenType{TokNil, TokBoolean, TokBoolean, TokEOF}},
		{"string", `"hello \"world\""`, []TokenType{TokString, TokEOF}},
		{"negative number", "-3.5", []TokenType{TokNumber, TokEOF}},
		{"splice before unquote", "~@x ~y", []TokenType{TokSpliceUnquote, TokSymbol, TokUnquote, TokSymbol, TokEOF}},
		{"comment skipped", "1 ; a comment\n2", []TokenType{TokNumber, TokNumber, TokEOF}},
		{"bang and star symbols", "def! fn* try* list?", []TokenType{TokSymbol, TokSymbol, TokSymbol, TokSymbol, TokEOF}},
		{"rest marker", "(fn* (a & rest) a)", []TokenType{
			TokListStart, TokSymbol, TokListStart, TokSymbol, TokArgsSpread, TokSymbol, TokListEnd, TokSymbol, TokListEnd, TokEOF,
		}},
		{"unrecognized run", "@@@", []TokenType{TokError, TokEOF}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := tokenTypes(Lex(c.src))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestLexSymbolText(t *testing.T) {
	tokens := Lex("quasi-quote-expand")
	assert.Equal(t, TokSymbol, tokens[0].Type)
	assert.Equal(t, "quasi-quote-expand", tokens[0].Text)
}
