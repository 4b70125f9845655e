// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import "regexp"

// TokenType identifies the kind of a lexer Token (spec.md §4.1).
type TokenType int

const (
	TokListStart TokenType = iota
	TokListEnd
	TokHashStart
	TokHashEnd
	TokQuote
	TokQuasiQuote
	TokUnquote
	TokSpliceUnquote
	TokArgsSpread
	TokNil
	TokBoolean
	TokNumber
	TokString
	TokKeyword
	TokSymbol
	TokError
	TokEOF
)

func (t TokenType) String() string {
	switch t {
	case TokListStart:
		return "ListStart"
	case TokListEnd:
		return "ListEnd"
	case TokHashStart:
		return "HashStart"
	case TokHashEnd:
		return "HashEnd"
	case TokQuote:
		return "Quote"
	case TokQuasiQuote:
		return "QuasiQuote"
	case TokUnquote:
		return "Unquote"
	case TokSpliceUnquote:
		return "SpliceUnquote"
	case TokArgsSpread:
		return "ArgsSpread"
	case TokNil:
		return "Nil"
	case TokBoolean:
		return "Boolean"
	case TokNumber:
		return "Number"
	case TokString:
		return "String"
	case TokKeyword:
		return "Keyword"
	case TokSymbol:
		return "Symbol"
	case TokError:
		return "Error"
	case TokEOF:
		return "EOF"
	default:
		return "?"
	}
}

// Token is a single lexical unit produced by Lex.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// rule pairs a token type with the regular expression that recognizes
// it at the current scan position. Order matters: rules are tried in
// sequence and the first match wins (spec.md §4.1's precedence note
// that numbers beat symbols is encoded by trying the number rule
// first).
type rule struct {
	typ TokenType
	re  *regexp.Regexp
}

var (
	reSkip      = regexp.MustCompile(`^([ \t\r\n,]+|;[^\n]*)`)
	reSpliceUnq = regexp.MustCompile(`^~@`)
	reString    = regexp.MustCompile(`^"(\\.|[^"\\])*"`)
	reNumber    = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
	reKeyword   = regexp.MustCompile(`^:[A-Za-z0-9_][A-Za-z0-9_\-!@#$+?~*=]*`)
	reSymbol    = regexp.MustCompile(`^[A-Za-z_+\-*/$&#=][A-Za-z0-9_\-!@#$+?~*=]*`)
)

var punctRules = []rule{
	{TokListStart, regexp.MustCompile(`^\(`)},
	{TokListEnd, regexp.MustCompile(`^\)`)},
	{TokHashStart, regexp.MustCompile(`^\{`)},
	{TokHashEnd, regexp.MustCompile(`^\}`)},
	{TokQuote, regexp.MustCompile(`^'`)},
	{TokQuasiQuote, regexp.MustCompile("^`")},
	{TokArgsSpread, regexp.MustCompile(`^&`)},
}

// Lex tokenizes source text into a flat token stream, skipping
// whitespace/commas and line comments. Unrecognized runs surface as a
// single Error token so the reader can reject them with one READ_ERROR
// instead of a flood of single-character ones.
func Lex(src string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(src) {
		rest := src[pos:]

		if m := reSkip.FindString(rest); m != "" {
			pos += len(m)
			continue
		}

		if m := reSpliceUnq.FindString(rest); m != "" {
			tokens = append(tokens, Token{TokSpliceUnquote, m, pos})
			pos += len(m)
			continue
		}
		if rest[0] == '~' {
			tokens = append(tokens, Token{TokUnquote, "~", pos})
			pos++
			continue
		}

		matched := false
		for _, r := range punctRules {
			if m := r.re.FindString(rest); m != "" {
				tokens = append(tokens, Token{r.typ, m, pos})
				pos += len(m)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if m := reString.FindString(rest); m != "" {
			tokens = append(tokens, Token{TokString, m, pos})
			pos += len(m)
			continue
		}

		if m := reNumber.FindString(rest); m != "" {
			tokens = append(tokens, Token{TokNumber, m, pos})
			pos += len(m)
			continue
		}

		if m := reKeyword.FindString(rest); m != "" {
			tokens = append(tokens, Token{TokKeyword, m, pos})
			pos += len(m)
			continue
		}

		if m := reSymbol.FindString(rest); m != "" {
			switch m {
			case "nil":
				tokens = append(tokens, Token{TokNil, m, pos})
			case "true", "false":
				tokens = append(tokens, Token{TokBoolean, m, pos})
			default:
				tokens = append(tokens, Token{TokSymbol, m, pos})
			}
			pos += len(m)
			continue
		}

		// Nothing matched: consume a maximal run up to the next
		// whitespace or recognized punctuation as a single Error token.
		end := pos + 1
		for end < len(src) && !isBreak(src[end]) {
			end++
		}
		tokens = append(tokens, Token{TokError, src[pos:end], pos})
		pos = end
	}
	tokens = append(tokens, Token{TokEOF, "", pos})
	return tokens
}

func isBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', ',', '(', ')', '{', '}', ';':
		return true
	default:
		return false
	}
}
