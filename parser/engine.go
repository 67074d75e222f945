// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import (
	"log"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mdhender/yarapeg/cerrs"
	"github.com/mdhender/yarapeg/token"
)

// State is the parser's finite state (spec.md §3).
type State int

const (
	StateStartOfInput State = iota
	StateOK
	StateFailure
	StateOutOfFuel
	StateEndOfInput
)

func (s State) String() string {
	switch s {
	case StateStartOfInput:
		return "StartOfInput"
	case StateOK:
		return "OK"
	case StateFailure:
		return "Failure"
	case StateOutOfFuel:
		return "OutOfFuel"
	case StateEndOfInput:
		return "EndOfInput"
	default:
		return "!unknown-state"
	}
}

// defaultFuel matches the Rust original's literal (spec.md says "≈
// 10^8"; original_source/parser/src/parser/mod.rs fixes it at exactly
// 100_000_000).
const defaultFuel = 100_000_000

// cacheKey is the failure-memoization key: (token index at entry, kind).
type cacheKey struct {
	idx  int
	kind token.Kind
}

// Parser is the combinator core (component 5). It owns the token
// stream, the event buffer, and the diagnostics aggregator, and
// threads state/fuel/opt_depth/not_depth through every combinator.
type Parser struct {
	tokens *TokenStream
	output *SyntaxStream
	diags  *Diagnostics

	state    State
	optDepth int
	notDepth int
	depth    int // indentation depth, logging only

	fuel  uint64
	cache *lru.Cache[cacheKey, struct{}]

	logger *log.Logger
	corrID string
}

// begin consumes leading trivia, opens a child node of kind, and
// decrements fuel. Unlike most combinators, begin always runs even when
// the parser is already failing, so that every begin has a matching end
// and the tree stays well-nested (spec.md §4.3, §8 invariant 2).
func (p *Parser) begin(kind token.Kind) {
	p.consumeTrivia()
	pos := p.tokens.Peek(0).Span.Start
	p.output.Begin(kind, pos)

	p.depth++
	p.logf("begin %s depth=%d fuel=%s", kind, p.depth, humanize.Comma(int64(p.fuel)))

	if p.fuel == 0 {
		p.state = StateOutOfFuel
		return
	}
	p.fuel--
	if p.fuel == 0 {
		p.logf("fuel exhausted at %s", kind)
		p.state = StateOutOfFuel
	}
}

// end closes the current node: normally if state is OK, or with an
// error marker if state is Failure/OutOfFuel. Like begin, it always
// runs.
func (p *Parser) end() {
	p.depth--
	if p.state == StateFailure || p.state == StateOutOfFuel {
		p.output.EndWithError()
	} else {
		p.output.End()
	}
}

// endWithRecovery implements spec.md §4.3.1. recovery is the set of
// terminals that resynchronize parsing after a syntax error in a
// structurally significant production. A production that parsed cleanly
// (state OK) is closed normally without skipping anything, and so is
// any production at end of input. When skipping reaches end of input
// instead of a recovery token, the state stays Failure, so enclosing
// productions do not report end of file a second time.
func (p *Parser) endWithRecovery(recovery token.Set, desc string) {
	next := p.tokens.PeekNonTrivia()
	if _, ok := recovery.Contains(next.ID); ok {
		p.end()
		if p.state == StateFailure {
			p.state = StateOK
		}
		return
	}
	if p.state == StateOK || next.ID == token.IDEOF {
		p.end()
		return
	}

	p.consumeTrivia()
	offending := p.tokens.Next()
	p.output.PushToken(errorLeafKind, Span{offending.Span.Start, offending.Span.End})
	if p.state != StateOutOfFuel {
		p.state = StateFailure
	}

	hadPending := len(p.diags.pending) > 0
	if !hadPending {
		p.diags.SynthesizeExpected(Span{offending.Span.Start, offending.Span.End}, offending.ID, desc)
	}
	p.diags.FlushAll(p.output)

	for {
		t := p.tokens.PeekNonTrivia()
		if t.ID == token.IDEOF {
			break
		}
		if _, ok := recovery.Contains(t.ID); ok {
			break
		}
		p.consumeTrivia()
		skipped := p.tokens.Next()
		p.output.PushToken(errorLeafKind, Span{skipped.Span.Start, skipped.Span.End})
	}

	p.end()
	if p.state == StateFailure && p.tokens.PeekNonTrivia().ID != token.IDEOF {
		p.state = StateOK
	}
}

// errorLeafKind tags tokens consumed while skipping to a recovery point;
// they still appear as leaves (losslessness) inside the ERROR-marked
// node, just without a meaningful grammar role.
const errorLeafKind = token.ERROR

// expect is expectD with no description override.
func (p *Parser) expect(set token.Set) {
	p.expectD(set, "")
}

// expectD looks at the next non-trivia token and matches it against
// set, per spec.md §4.3 / §4.4.
func (p *Parser) expectD(set token.Set, desc string) {
	if p.state == StateFailure || p.state == StateOutOfFuel {
		return
	}

	next := p.tokens.PeekNonTrivia()
	sp := Span{next.Span.Start, next.Span.End}
	kind, matched := set.Contains(next.ID)

	if p.notDepth > 0 {
		if matched {
			p.diags.RecordUnexpected(sp)
		} else if p.state != StateOutOfFuel {
			p.state = StateFailure
		}
		return
	}

	if !matched {
		d := desc
		if d == "" {
			d = set.Describe()
		}
		p.diags.RecordExpected(sp, next.ID, d)
		if p.state != StateOutOfFuel {
			p.state = StateFailure
		}
		p.diags.HandleErrors(p.optDepth)
		return
	}

	p.consumeTrivia()
	consumed := p.tokens.Next()
	commitSp := Span{consumed.Span.Start, consumed.Span.End}
	p.output.PushToken(kind, commitSp)
	if p.optDepth == 0 {
		p.diags.FlushAll(p.output)
	}
}

// opt runs fn speculatively: on failure, state resets to OK and both
// streams rewind; on success, the bookmark is committed. Expected-token
// errors observed inside fn remain recorded regardless of outcome.
func (p *Parser) opt(fn func()) {
	if p.state == StateFailure || p.state == StateOutOfFuel {
		return
	}
	tb := p.tokens.Bookmark()
	sb := p.output.bookmark()
	p.optDepth++
	fn()
	p.optDepth--
	if p.state == StateFailure {
		p.state = StateOK
		p.tokens.Restore(tb)
		p.output.truncate(sb)
	}
	p.tokens.Remove(tb)
}

// not runs fn as a pure predicate: always rewinds, and inverts OK/Failure
// (OutOfFuel is left untouched, since it is sticky).
func (p *Parser) not(fn func()) {
	if p.state == StateFailure || p.state == StateOutOfFuel {
		return
	}
	tb := p.tokens.Bookmark()
	sb := p.output.bookmark()
	p.notDepth++
	fn()
	p.notDepth--
	switch p.state {
	case StateOK:
		p.state = StateFailure
	case StateFailure:
		p.state = StateOK
	}
	p.tokens.Restore(tb)
	p.output.truncate(sb)
	p.tokens.Remove(tb)
}

// ifNext runs fn only if the next non-trivia token is in set; otherwise
// it records an expected-token error without entering Failure.
func (p *Parser) ifNext(set token.Set, fn func()) {
	if p.state == StateFailure || p.state == StateOutOfFuel {
		return
	}
	next := p.tokens.PeekNonTrivia()
	if _, ok := set.Contains(next.ID); ok {
		p.consumeTrivia()
		fn()
		return
	}
	p.diags.RecordExpected(Span{next.Span.Start, next.Span.End}, next.ID, set.Describe())
}

// cond is ifNext that also consumes the predicate token itself.
func (p *Parser) cond(set token.Set, fn func()) {
	p.ifNext(set, func() {
		p.expect(set)
		fn()
	})
}

// zeroOrMore and oneOrMore are the n=0 and n=1 instances of nOrMore.
func (p *Parser) zeroOrMore(fn func()) { p.nOrMore(0, fn) }
func (p *Parser) oneOrMore(fn func())  { p.nOrMore(1, fn) }

// nOrMore runs fn n times strictly, then speculatively until the first
// failure, rewinding past that last, failed attempt.
func (p *Parser) nOrMore(n int, fn func()) {
	for i := 0; i < n; i++ {
		if p.state != StateOK {
			return
		}
		fn()
	}
	for {
		if p.state != StateOK {
			return
		}
		tb := p.tokens.Bookmark()
		sb := p.output.bookmark()
		p.optDepth++
		fn()
		p.optDepth--
		switch p.state {
		case StateFailure:
			p.state = StateOK
			p.tokens.Restore(tb)
			p.output.truncate(sb)
			p.tokens.Remove(tb)
			return
		case StateOutOfFuel:
			p.tokens.Remove(tb)
			return
		default:
			p.tokens.Remove(tb)
		}
	}
}

// alt is the ordered-choice combinator. begin_alt/alt/end_alt is
// modeled as a single value returned by beginAlt, with Alt/End methods.
type alt struct {
	p       *Parser
	tb      Bookmark
	sb      sseBookmark
	matched bool
}

func (p *Parser) beginAlt() *alt {
	return &alt{p: p, tb: p.tokens.Bookmark(), sb: p.output.bookmark()}
}

// Alt tries fn as the next ordered alternative. Once one alternative has
// matched, later ones are never tried — that's PEG ordered choice.
func (a *alt) Alt(fn func()) *alt {
	p := a.p
	if a.matched || p.state == StateFailure || p.state == StateOutOfFuel {
		return a
	}
	p.optDepth++
	fn()
	p.optDepth--
	switch p.state {
	case StateOK:
		a.matched = true
	case StateFailure:
		p.state = StateOK
		p.tokens.Restore(a.tb)
		p.output.truncate(a.sb)
	}
	return a
}

// End closes the alternation: Failure with accumulated diagnostics if
// nothing matched, otherwise commits as OK.
func (a *alt) End() {
	p := a.p
	if a.matched {
		p.tokens.Remove(a.tb)
		return
	}
	if p.state != StateOutOfFuel {
		p.state = StateFailure
		p.diags.HandleErrors(p.optDepth)
	}
	p.tokens.Remove(a.tb)
}

// cached wraps fn with packrat failure memoization keyed by
// (current_token_index, kind) at entry (spec.md §4.3, §9).
func (p *Parser) cached(kind token.Kind, fn func()) {
	if p.state == StateFailure || p.state == StateOutOfFuel {
		return
	}
	key := cacheKey{idx: p.tokens.CurrentIndex(), kind: kind}
	if _, hit := p.cache.Get(key); hit {
		p.state = StateFailure
		return
	}
	fn()
	if p.state == StateFailure {
		p.cache.Add(key, struct{}{})
	}
}

// consumeTrivia drains and emits leading trivia as leaves, without
// touching parser state.
func (p *Parser) consumeTrivia() {
	for {
		t := p.tokens.Peek(0)
		if !t.IsTrivia() {
			return
		}
		p.tokens.Next()
		p.output.PushToken(trivialKind(t.ID), Span{t.Span.Start, t.Span.End})
	}
}

func trivialKind(id token.ID) token.Kind {
	switch id {
	case token.IDLineComment:
		return token.LINE_COMMENT
	case token.IDBlockComment:
		return token.BLOCK_COMMENT
	default:
		return token.WHITESPACE
	}
}

// checkInvariants panics with the corresponding cerrs sentinel if a
// combinator acquired a TokenStream bookmark and never Remove'd it, or
// left a begin without a matching end. Both indicate a broken
// combinator, not an ordinary parse failure — correct code never
// triggers either, so this is checked at every top-level-item boundary
// rather than threaded through every call site (spec.md §3
// "Lifecycles", §5 "Resource ownership").
func (p *Parser) checkInvariants() {
	if p.tokens.Outstanding() != 0 {
		panic(cerrs.ErrBookmarkLeaked)
	}
	if p.output.OpenDepth() != 0 {
		panic(cerrs.ErrUnclosedNode)
	}
}

func (p *Parser) logf(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Printf("[%s] "+format, append([]any{p.corrID}, args...)...)
}
