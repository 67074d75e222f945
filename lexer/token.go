// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package lexer tokenizes YARA rule source into the flat token sequence
// the parser consumes. The tokenizer is an "external collaborator" per
// spec.md §1 (out of the PEG core's own scope) but is implemented here,
// in the teacher's own lexer-package idiom, so the core can be exercised
// and tested end to end on real YARA source.
package lexer

import "github.com/mdhender/yarapeg/token"

// Span is a half-open byte range into the source buffer, plus the
// 1-based line/column of its start, for diagnostic rendering.
type Span struct {
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
	Line  int // 1-based
	Col   int // 1-based, in bytes
}

// Len reports the span's width in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is one lexeme: an ID (see token.ID) and the span of source text
// it covers. Trivia tokens (whitespace, comments) are emitted inline in
// the same stream as non-trivia tokens; the parser's TokenStream adapter
// is responsible for skipping them where the grammar doesn't care.
type Token struct {
	ID   token.ID
	Span Span
}

// Text returns the literal source text the token covers.
func (t Token) Text(src []byte) string {
	return string(src[t.Span.Start:t.Span.End])
}

// IsTrivia reports whether t is whitespace or a comment.
func (t Token) IsTrivia() bool {
	switch t.ID {
	case token.IDWhitespace, token.IDLineComment, token.IDBlockComment:
		return true
	default:
		return false
	}
}

// IsEOF reports whether t is the synthetic end-of-file token every
// tokenizer run ends with.
func (t Token) IsEOF() bool {
	return t.ID == token.IDEOF
}
