// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mdhender/yarapeg/token"
)

// errors returns every Error event in events, in order.
func errors(events []Event) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == EventError {
			out = append(out, e)
		}
	}
	return out
}

// beginKinds returns the Syntax kind of every Begin event in events, in
// order, which is a cheap way to assert tree shape without comparing
// full spans.
func beginKinds(events []Event) []token.Kind {
	var out []token.Kind
	for _, e := range events {
		if e.Kind == EventBegin {
			out = append(out, e.Syntax)
		}
	}
	return out
}

func hasKind(ks []token.Kind, want token.Kind) bool {
	for _, k := range ks {
		if k == want {
			return true
		}
	}
	return false
}

func TestDriverSimpleConditionTrue(t *testing.T) {
	t.Parallel()
	src := `rule t { condition: true }`
	events := New([]byte(src)).All()
	if errs := errors(events); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	ks := beginKinds(events)
	for _, want := range []token.Kind{token.SOURCE_FILE, token.RULE_DECL, token.CONDITION_BLK, token.BOOLEAN_EXPR, token.BOOLEAN_TERM} {
		if !hasKind(ks, want) {
			t.Errorf("missing %s node in %v", want, ks)
		}
	}
}

func TestDriverArithmeticComparison(t *testing.T) {
	t.Parallel()
	src := `rule t { condition: 1 + 2 == 3 }`
	events := New([]byte(src)).All()
	if errs := errors(events); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	ks := beginKinds(events)
	for _, want := range []token.Kind{token.EXPR, token.TERM, token.PRIMARY_EXPR} {
		if !hasKind(ks, want) {
			t.Errorf("missing %s node in %v", want, ks)
		}
	}
}

func TestDriverEmptyConditionReportsExpectingExpression(t *testing.T) {
	t.Parallel()
	src := `rule t { condition: }`
	events := New([]byte(src)).All()
	errs := errors(events)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(errs), errs)
	}
	want := "expecting expression, found `}`"
	if errs[0].Message != want {
		t.Fatalf("got %q, want %q", errs[0].Message, want)
	}
	var sawErrorNode bool
	for _, e := range events {
		if e.Kind == EventBegin && e.Error {
			sawErrorNode = true
		}
	}
	if !sawErrorNode {
		t.Error("expected an error-flagged node for the empty condition")
	}
}

func TestDriverPatternDefinitionAndReference(t *testing.T) {
	t.Parallel()
	src := `rule t { strings: $a = "x" condition: $a }`
	events := New([]byte(src)).All()
	if errs := errors(events); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	ks := beginKinds(events)
	for _, want := range []token.Kind{token.PATTERNS_BLK, token.PATTERN_DEF, token.CONDITION_BLK} {
		if !hasKind(ks, want) {
			t.Errorf("missing %s node in %v", want, ks)
		}
	}
}

func TestDriverUnrecognizedTopLevelItemRecovers(t *testing.T) {
	t.Parallel()
	src := `import "m" rule a { condition: true } xxx rule b { condition: false }`
	events := New([]byte(src)).All()
	errs := errors(events)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(errs), errs)
	}
	want := "expecting import statement or rule definition"
	if errs[0].Message != want {
		t.Fatalf("got %q, want %q", errs[0].Message, want)
	}

	var ruleDecls int
	for _, e := range events {
		if e.Kind == EventBegin && e.Syntax == token.RULE_DECL {
			ruleDecls++
		}
	}
	if ruleDecls != 2 {
		t.Fatalf("got %d RULE_DECL nodes, want 2", ruleDecls)
	}
	if !hasKind(beginKinds(events), token.ERROR) {
		t.Error("expected an ERROR node covering \"xxx\"")
	}
}

func TestDriverUnclosedCommentRecoversToEndOfInput(t *testing.T) {
	t.Parallel()
	src := "rule t { condition: /* unterminated"
	events := New([]byte(src)).All()
	errs := errors(events)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(errs), errs)
	}
	if errs[0].Message != "unclosed comment" {
		t.Fatalf("got %q, want %q", errs[0].Message, "unclosed comment")
	}
	if !hasKind(beginKinds(events), token.RULE_DECL) {
		t.Error("expected RULE_DECL despite recovery to end of input")
	}
}

func TestDriverUnclosedStringLiteral(t *testing.T) {
	t.Parallel()
	src := `rule t { condition: "abc`
	events := New([]byte(src)).All()
	errs := errors(events)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(errs), errs)
	}
	if errs[0].Message != "unclosed literal string" {
		t.Fatalf("got %q, want %q", errs[0].Message, "unclosed literal string")
	}
}

// reconstruct concatenates the byte spans of every leaf-bearing event
// (Token and the skipped-material leaves pushed inside ERROR nodes,
// which are also Token events tagged token.ERROR) in source order,
// checking the Lossless invariant (spec.md §8 invariant 1).
func reconstruct(src []byte, events []Event) string {
	var b strings.Builder
	for _, e := range events {
		if e.Kind != EventToken {
			continue
		}
		b.Write(src[e.Span.Start:e.Span.End])
	}
	return b.String()
}

func TestDriverLosslessReconstruction(t *testing.T) {
	t.Parallel()
	srcs := []string{
		`rule t { condition: true }`,
		`rule t { condition: 1 + 2 == 3 }`,
		`rule t { strings: $a = "x" condition: $a }`,
		`import "m" rule a { condition: true } xxx rule b { condition: false }`,
	}
	for _, src := range srcs {
		events := New([]byte(src)).All()
		if got := reconstruct([]byte(src), events); got != src {
			t.Errorf("lossless reconstruction mismatch:\n got: %q\nwant: %q", got, src)
		}
	}
}

// TestDriverWellNested checks that every Begin has exactly one matching
// End with the same Syntax kind, via a simple stack walk (spec.md §8
// invariant 2).
func TestDriverWellNested(t *testing.T) {
	t.Parallel()
	src := `rule t { strings: $a = "x" condition: $a at 0 }`
	events := New([]byte(src)).All()
	var stack []token.Kind
	for _, e := range events {
		switch e.Kind {
		case EventBegin:
			stack = append(stack, e.Syntax)
		case EventEnd:
			if len(stack) == 0 {
				t.Fatalf("End with no matching Begin: %+v", e)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top != e.Syntax {
				t.Fatalf("End kind %s does not match innermost Begin %s", e.Syntax, top)
			}
		}
	}
	if len(stack) != 0 {
		t.Fatalf("%d unclosed Begin events remain: %v", len(stack), stack)
	}
}

// TestDriverIdempotentReparse checks that parsing the same input twice
// yields identical event sequences (spec.md §8 invariant 4).
func TestDriverIdempotentReparse(t *testing.T) {
	t.Parallel()
	src := `rule t { condition: for any of them : ($a) }`
	a := New([]byte(src)).All()
	b := New([]byte(src)).All()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("reparse produced a different event stream (-first +second):\n%s", diff)
	}
}
