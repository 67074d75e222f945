// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mdhender/yarapeg/token"
)

// expectedEntry accumulates, for one span, the actual token found there
// and the ordered, deduplicated set of description strings of what was
// expected instead (spec.md §4.4).
type expectedEntry struct {
	actual token.ID
	descs  []string
	seen   map[string]bool
}

func (e *expectedEntry) add(desc string) {
	if e.seen == nil {
		e.seen = map[string]bool{}
	}
	if desc == "" || e.seen[desc] {
		return
	}
	e.seen[desc] = true
	e.descs = append(e.descs, desc)
}

// PendingError is a resolved, not-yet-flushed diagnostic.
type PendingError struct {
	Span    Span
	Message string
}

// Diagnostics is the per-parse aggregator described in spec.md §4.4: an
// expected-token map, an unexpected-token set, and a pending-error
// queue, all of which survive speculative rollback. The evidence maps
// are cleared by a resolving HandleErrors call, by flush operations, and
// at a top-level-item boundary; the queue only by flush operations.
type Diagnostics struct {
	src        []byte
	expected   map[Span]*expectedEntry
	unexpected map[Span]bool
	pending    []PendingError
}

// NewDiagnostics returns an aggregator over src, used to slice the
// source text of offending spans into messages.
func NewDiagnostics(src []byte) *Diagnostics {
	return &Diagnostics{
		src:        src,
		expected:   map[Span]*expectedEntry{},
		unexpected: map[Span]bool{},
	}
}

// RecordExpected records that, at sp, actual was found when desc (one
// of possibly several productions' expectations) was wanted instead.
func (d *Diagnostics) RecordExpected(sp Span, actual token.ID, desc string) {
	e, ok := d.expected[sp]
	if !ok {
		e = &expectedEntry{actual: actual}
		d.expected[sp] = e
	}
	e.add(desc)
}

// RecordUnexpected records that a positive match occurred at sp inside
// a negation (`not`).
func (d *Diagnostics) RecordUnexpected(sp Span) {
	d.unexpected[sp] = true
}

// HandleErrors resolves the rightmost outstanding evidence into a
// pending error, per spec.md §4.4. It is a no-op when optDepth > 0
// (inside an optional or alternative branch) or when there is no
// evidence at all. Like the original's `expected_token_errors.drain()`
// /`unexpected_token_errors.drain()`, every resolving call empties both
// maps entirely, not just the winning entry — stale evidence from
// superseded alternatives must not survive to be picked up by a later
// resolution before the next flush point.
func (d *Diagnostics) HandleErrors(optDepth int) {
	if optDepth > 0 {
		return
	}

	var expSpan Span
	var exp *expectedEntry
	haveExp := false
	for sp, e := range d.expected {
		if !haveExp || sp.Start > expSpan.Start {
			expSpan, exp, haveExp = sp, e, true
		}
	}

	var unexpSpan Span
	haveUnexp := false
	for sp := range d.unexpected {
		if !haveUnexp || sp.Start > unexpSpan.Start {
			unexpSpan, haveUnexp = sp, true
		}
	}

	d.expected = map[Span]*expectedEntry{}
	d.unexpected = map[Span]bool{}

	switch {
	case haveExp && haveUnexp:
		if unexpSpan.Start > expSpan.Start {
			d.resolveUnexpected(unexpSpan)
		} else {
			d.resolveExpected(expSpan, exp)
		}
	case haveExp:
		d.resolveExpected(expSpan, exp)
	case haveUnexp:
		d.resolveUnexpected(unexpSpan)
	}
}

func (d *Diagnostics) resolveExpected(sp Span, e *expectedEntry) {
	msg := d.formatExpected(sp, e.actual, e.descs)
	d.push(sp, msg)
}

func (d *Diagnostics) resolveUnexpected(sp Span) {
	msg := d.formatUnexpected(sp)
	d.push(sp, msg)
}

// push appends a resolved diagnostic unless one already exists at the
// exact same span (dedup).
func (d *Diagnostics) push(sp Span, msg string) {
	for _, p := range d.pending {
		if p.Span == sp {
			return
		}
	}
	d.pending = append(d.pending, PendingError{Span: sp, Message: msg})
}

// SynthesizeExpected is used by end_with_recovery when no pending
// errors exist: it merges desc into whatever expected-token evidence
// already exists at sp — the same un-consumed lookahead token a just-
// rewound failed alternative may already have recorded evidence
// against — then resolves through the normal HandleErrors path, so a
// failure deep in a tried alternative still contributes to the
// eventual combined message (spec.md §9) instead of being silently
// dropped in favor of only the recovery set's own description.
func (d *Diagnostics) SynthesizeExpected(sp Span, actual token.ID, desc string) {
	d.RecordExpected(sp, actual, desc)
	d.HandleErrors(0)
}

func joinDescs(descs []string) string {
	switch len(descs) {
	case 0:
		return ""
	case 1:
		return descs[0]
	case 2:
		return descs[0] + " or " + descs[1]
	default:
		return strings.Join(descs[:len(descs)-1], ", ") + ", or " + descs[len(descs)-1]
	}
}

func (d *Diagnostics) text(sp Span) string {
	if sp.Start < 0 || sp.End > len(d.src) || sp.Start > sp.End {
		return ""
	}
	return string(d.src[sp.Start:sp.End])
}

// formatExpected implements the bit-exact message-formatting cascade of
// spec.md §4.4.
func (d *Diagnostics) formatExpected(sp Span, actual token.ID, descs []string) string {
	txt := d.text(sp)

	if actual == token.IDUnknown {
		switch {
		case strings.HasPrefix(txt, "/*"):
			return "unclosed comment"
		case strings.HasPrefix(txt, `"`):
			return "unclosed literal string"
		case strings.HasPrefix(txt, "/"):
			return "unclosed regular expression"
		}
	}

	if !utf8.Valid([]byte(txt)) {
		return "invalid UTF-8 character"
	}

	list := joinDescs(descs)

	if sp.Start == sp.End {
		if list == "" {
			return "expecting end of file"
		}
		return "expecting " + list + ", found end of file"
	}

	if sp.End-sp.Start > 15 {
		if list == "" {
			return "unexpected token"
		}
		return "expecting " + list
	}

	if list == "" {
		return "unexpected `" + txt + "`"
	}
	return "expecting " + list + ", found `" + txt + "`"
}

func (d *Diagnostics) formatUnexpected(sp Span) string {
	txt := d.text(sp)
	if !utf8.Valid([]byte(txt)) {
		return "invalid UTF-8 character"
	}
	if txt == "" {
		return "unexpected end of file"
	}
	return "unexpected `" + txt + "`"
}

// FlushAll drains every pending error into out, in span order, and
// clears the expected/unexpected evidence maps outright. This mirrors
// the original's flush_errors: it is unconditional, never filtered by
// position. It runs after a successful non-optional `expect` (once a
// token commits, the parser can never backtrack to its left, so
// whatever evidence was gathered to get there is moot), in
// end_with_recovery's no-new-error branch, and at the end of every
// top-level item and of the input.
func (d *Diagnostics) FlushAll(out *SyntaxStream) {
	flushing := d.pending
	d.pending = nil
	sort.Slice(flushing, func(i, j int) bool { return flushing[i].Span.Start < flushing[j].Span.Start })
	for _, p := range flushing {
		out.PushError(p.Message, p.Span)
	}
	d.expected = map[Span]*expectedEntry{}
	d.unexpected = map[Span]bool{}
}

// ResetForNextItem is an alias for FlushAll's evidence-clearing half,
// kept separate for call sites (top-level-item boundaries) that want to
// guard against leftover speculative evidence even when FlushAll has
// already run and left nothing pending.
func (d *Diagnostics) ResetForNextItem() {
	d.expected = map[Span]*expectedEntry{}
	d.unexpected = map[Span]bool{}
}
