// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import (
	"testing"

	"github.com/mdhender/yarapeg/lexer"
	"github.com/mdhender/yarapeg/token"
)

// fakeTokenizer replays a fixed token slice, appending an EOF token
// forever once exhausted, and records mode-switch calls.
type fakeTokenizer struct {
	src  []byte
	toks []lexer.Token
	pos  int

	hexPatternCalls int
	hexJumpCalls    int
}

func (f *fakeTokenizer) Source() []byte { return f.src }

func (f *fakeTokenizer) Next() lexer.Token {
	if f.pos >= len(f.toks) {
		return lexer.Token{ID: token.IDEOF}
	}
	t := f.toks[f.pos]
	f.pos++
	return t
}

func (f *fakeTokenizer) EnterHexPatternMode() { f.hexPatternCalls++ }
func (f *fakeTokenizer) EnterHexJumpMode()    { f.hexJumpCalls++ }

func newFixture(ids ...token.ID) *fakeTokenizer {
	tz := &fakeTokenizer{src: []byte("fixture")}
	for _, id := range ids {
		tz.toks = append(tz.toks, lexer.Token{ID: id})
	}
	return tz
}

func TestTokenStreamPeekDoesNotAdvance(t *testing.T) {
	t.Parallel()
	s := NewTokenStream(newFixture(token.IDRuleKw, token.IDIdent))
	if got := s.Peek(0).ID; got != token.IDRuleKw {
		t.Fatalf("Peek(0) = %v, want IDRuleKw", got)
	}
	if got := s.Peek(0).ID; got != token.IDRuleKw {
		t.Fatalf("second Peek(0) = %v, want IDRuleKw (unchanged)", got)
	}
	if got := s.Peek(1).ID; got != token.IDIdent {
		t.Fatalf("Peek(1) = %v, want IDIdent", got)
	}
	if got := s.CurrentIndex(); got != 0 {
		t.Fatalf("CurrentIndex() = %d, want 0 (Peek must not consume)", got)
	}
}

func TestTokenStreamNextAdvances(t *testing.T) {
	t.Parallel()
	s := NewTokenStream(newFixture(token.IDRuleKw, token.IDIdent))
	if got := s.Next().ID; got != token.IDRuleKw {
		t.Fatalf("Next() = %v, want IDRuleKw", got)
	}
	if got := s.CurrentIndex(); got != 1 {
		t.Fatalf("CurrentIndex() = %d, want 1", got)
	}
	if got := s.Next().ID; got != token.IDIdent {
		t.Fatalf("Next() = %v, want IDIdent", got)
	}
}

func TestTokenStreamBookmarkRestore(t *testing.T) {
	t.Parallel()
	s := NewTokenStream(newFixture(token.IDRuleKw, token.IDIdent, token.IDLBrace))
	b := s.Bookmark()
	s.Next()
	s.Next()
	if got := s.CurrentIndex(); got != 2 {
		t.Fatalf("CurrentIndex() = %d, want 2", got)
	}
	s.Restore(b)
	if got := s.CurrentIndex(); got != 0 {
		t.Fatalf("CurrentIndex() after Restore = %d, want 0", got)
	}
	if got := s.Next().ID; got != token.IDRuleKw {
		t.Fatalf("Next() after Restore = %v, want IDRuleKw", got)
	}
}

func TestTokenStreamEOFIsStable(t *testing.T) {
	t.Parallel()
	s := NewTokenStream(newFixture(token.IDRuleKw))
	s.Next()
	for i := 0; i < 3; i++ {
		if got := s.Next().ID; got != token.IDEOF {
			t.Fatalf("Next() past end = %v, want IDEOF", got)
		}
	}
}

func TestTokenStreamPeekNonTriviaSkipsTrivia(t *testing.T) {
	t.Parallel()
	tz := &fakeTokenizer{src: []byte("x")}
	tz.toks = []lexer.Token{
		{ID: token.IDWhitespace},
		{ID: token.IDLineComment},
		{ID: token.IDRuleKw},
	}
	s := NewTokenStream(tz)
	if got := s.PeekNonTrivia().ID; got != token.IDRuleKw {
		t.Fatalf("PeekNonTrivia() = %v, want IDRuleKw", got)
	}
	// PeekNonTrivia must not consume anything, including the trivia it
	// skipped over.
	if got := s.CurrentIndex(); got != 0 {
		t.Fatalf("CurrentIndex() after PeekNonTrivia = %d, want 0", got)
	}
	if got := s.Next().ID; got != token.IDWhitespace {
		t.Fatalf("Next() after PeekNonTrivia = %v, want IDWhitespace", got)
	}
}

func TestTokenStreamOutstandingTracksBookmarkLifecycle(t *testing.T) {
	t.Parallel()
	s := NewTokenStream(newFixture(token.IDRuleKw, token.IDIdent))
	if got := s.Outstanding(); got != 0 {
		t.Fatalf("Outstanding() before any Bookmark = %d, want 0", got)
	}
	b := s.Bookmark()
	if got := s.Outstanding(); got != 1 {
		t.Fatalf("Outstanding() after Bookmark = %d, want 1", got)
	}
	s.Next()
	s.Restore(b)
	if got := s.Outstanding(); got != 1 {
		t.Fatalf("Restore alone must not close the bookmark: Outstanding() = %d, want 1", got)
	}
	s.Remove(b)
	if got := s.Outstanding(); got != 0 {
		t.Fatalf("Outstanding() after Remove = %d, want 0", got)
	}
}

func TestTokenStreamModeSwitchForwarded(t *testing.T) {
	t.Parallel()
	tz := newFixture(token.IDLBrace)
	s := NewTokenStream(tz)
	s.EnterHexPatternMode()
	s.EnterHexJumpMode()
	if tz.hexPatternCalls != 1 || tz.hexJumpCalls != 1 {
		t.Fatalf("mode switches not forwarded: pattern=%d jump=%d", tz.hexPatternCalls, tz.hexJumpCalls)
	}
}
