// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package parser implements the PEG combinator core described by the
// grammar: a bookmarkable token view, an event buffer, a diagnostics
// aggregator, the combinator engine built on top of them, the YARA
// grammar expressed with those combinators, and the streaming driver
// that exposes the whole thing as an iterator of Event.
package parser

import (
	"github.com/mdhender/yarapeg/lexer"
	"github.com/mdhender/yarapeg/token"
)

// Tokenizer is the external collaborator contract (spec.md §6): lexical
// scanning, mode switching, and source access. lexer.Lexer implements
// it; tests substitute smaller fakes.
type Tokenizer interface {
	Next() lexer.Token
	EnterHexPatternMode()
	EnterHexJumpMode()
	Source() []byte
}

// Bookmark is a saved TokenStream position. It is cheap to copy: it is
// just an index into the stream's own append-only history buffer.
type Bookmark int

// TokenStream is a bookmarkable, lookahead-capable view over a
// Tokenizer (spec.md §4.1). It materializes tokens into an internal
// history buffer on demand, which is what makes rewinding on
// bookmark-restore possible even though the underlying Tokenizer only
// exposes Next.
type TokenStream struct {
	tz          Tokenizer
	buf         []lexer.Token // every token pulled from tz so far, consumed or not
	pos         int           // index into buf of the next token to consume
	outstanding int           // bookmarks acquired but not yet Remove'd
}

// NewTokenStream wraps tz.
func NewTokenStream(tz Tokenizer) *TokenStream {
	return &TokenStream{tz: tz}
}

// Source returns the underlying source bytes, borrowed from the
// tokenizer.
func (s *TokenStream) Source() []byte {
	return s.tz.Source()
}

func (s *TokenStream) fill(upto int) {
	for len(s.buf) <= upto {
		s.buf = append(s.buf, s.tz.Next())
	}
}

// Peek returns the k-th upcoming token (0 = next) without consuming it.
func (s *TokenStream) Peek(k int) lexer.Token {
	s.fill(s.pos + k)
	return s.buf[s.pos+k]
}

// Next consumes and returns the next token.
func (s *TokenStream) Next() lexer.Token {
	t := s.Peek(0)
	s.pos++
	return t
}

// CurrentIndex is the absolute count of tokens consumed (accounting for
// any bookmark restore). It is the key used by the failure cache.
func (s *TokenStream) CurrentIndex() int {
	return s.pos
}

// Bookmark captures the current position. Every Bookmark must
// eventually be paired with exactly one Remove call (directly, or via
// one or more Restore calls followed by a final Remove), so that
// Outstanding can detect a combinator that acquired a bookmark and
// never released it (spec.md §3 "Lifecycles", §5 "Resource ownership").
func (s *TokenStream) Bookmark() Bookmark {
	s.outstanding++
	return Bookmark(s.pos)
}

// Restore rewinds to a previously captured bookmark. It may be called
// any number of times against the same still-open bookmark (e.g. alt
// rewinding to its shared entry point after each failed alternative);
// it does not by itself close the bookmark — only Remove does.
func (s *TokenStream) Restore(b Bookmark) {
	s.pos = int(b)
}

// Remove closes a bookmark, whether or not it was ever Restore'd,
// marking it no longer outstanding.
func (s *TokenStream) Remove(_ Bookmark) {
	s.outstanding--
}

// Outstanding reports how many acquired bookmarks have not yet been
// closed via Remove. A nonzero count at a top-level-item boundary
// means some combinator returned without releasing a bookmark it took.
func (s *TokenStream) Outstanding() int {
	return s.outstanding
}

// EnterHexPatternMode switches the tokenizer into hex-pattern scanning.
// Must only be called immediately after consuming the token that
// introduces the mode, with no outstanding lookahead past it (spec.md
// §4.1, §9).
func (s *TokenStream) EnterHexPatternMode() {
	s.tz.EnterHexPatternMode()
}

// EnterHexJumpMode switches the tokenizer into hex-jump scanning, under
// the same no-stale-lookahead constraint as EnterHexPatternMode.
func (s *TokenStream) EnterHexJumpMode() {
	s.tz.EnterHexJumpMode()
}

// PeekNonTrivia returns the first non-trivia token at or after the
// current position, without consuming anything (including the trivia
// it skips over).
func (s *TokenStream) PeekNonTrivia() lexer.Token {
	for i := 0; ; i++ {
		t := s.Peek(i)
		if !t.IsTrivia() || t.ID == token.IDEOF {
			return t
		}
	}
}
