// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/google/uuid"

	"github.com/mdhender/yarapeg/lexer"
	"github.com/mdhender/yarapeg/token"
)

// failureCacheSize bounds the packrat failure cache so pathologically
// deep expression nesting can't exhaust memory even though fuel already
// bounds time (spec.md §2 component 5 "failure cache"; sizing choice is
// this port's own, grounded on the teacher's use of
// hashicorp/golang-lru/v2 elsewhere in its dependency family).
const failureCacheSize = 4096

// Driver is the streaming/lazy façade (component 7): an iterator of
// Event that parses one top-level item per pull, per spec.md §4.5.
type Driver struct {
	p       *Parser
	srcLen  int
	started bool
}

// New constructs a Driver over source. source is borrowed for the
// Driver's lifetime, matching spec.md §1 ("The parser does not own
// source bytes").
func New(source []byte, opts ...Option) *Driver {
	tz := lexer.New(source)
	cache, _ := lru.New[cacheKey, struct{}](failureCacheSize)

	p := &Parser{
		tokens: NewTokenStream(tz),
		output: NewSyntaxStream(),
		diags:  NewDiagnostics(source),
		state:  StateStartOfInput,
		fuel:   defaultFuel,
		cache:  cache,
		corrID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return &Driver{p: p, srcLen: len(source)}
}

// Next pulls the next Event, or (Event{}, false) once the stream is
// exhausted (spec.md §4.5).
func (d *Driver) Next() (Event, bool) {
	p := d.p

	if p.state == StateStartOfInput {
		p.state = StateOK
		p.output.BeginSourceFile(Span{0, d.srcLen})
		return p.output.Pop()
	}
	if p.state == StateEndOfInput {
		return Event{}, false
	}

	for {
		if e, ok := p.output.Pop(); ok {
			return e, true
		}

		if p.state == StateOutOfFuel {
			p.output.EndSourceFile(Span{0, d.srcLen})
			p.state = StateEndOfInput
			continue
		}

		next := p.tokens.PeekNonTrivia()
		if next.ID == token.IDEOF {
			p.diags.FlushAll(p.output)
			if e, ok := p.output.Pop(); ok {
				return e, true
			}
			p.output.EndSourceFile(Span{0, d.srcLen})
			p.state = StateEndOfInput
			continue
		}

		parseTopLevelItem(p)
		p.checkInvariants()
		p.diags.FlushAll(p.output)
		p.cache.Purge()
		p.diags.ResetForNextItem()
		if p.state != StateOutOfFuel {
			p.state = StateOK
		}
	}
}

// All drains the Driver to completion and returns every Event in order.
// A convenience for tests and for cst.Build, not part of spec.md's
// streaming contract itself.
func (d *Driver) All() []Event {
	var events []Event
	for {
		e, ok := d.Next()
		if !ok {
			return events
		}
		events = append(events, e)
	}
}
