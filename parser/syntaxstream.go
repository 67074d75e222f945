// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import "github.com/mdhender/yarapeg/token"

// EventKind tags the four shapes an Event can take.
type EventKind int

const (
	EventBegin EventKind = iota
	EventEnd
	EventToken
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventBegin:
		return "Begin"
	case EventEnd:
		return "End"
	case EventToken:
		return "Token"
	case EventError:
		return "Error"
	default:
		return "!unknown-event"
	}
}

// Span is a half-open byte range into the source, per spec.md §6
// ("start == end indicates a zero-width position").
type Span struct {
	Start int
	End   int
}

// Event is a tagged CST-construction record: Begin{kind,span},
// End{kind,span}, Token{kind,span}, or Error{message,span} (spec.md §3).
type Event struct {
	Kind    EventKind
	Syntax  token.Kind // valid for Begin/End/Token
	Span    Span
	Message string // valid for Error
	Error   bool   // true if this Begin/End closed a node via end_with_error
}

// sseBookmark is the SyntaxStream half of a combinator Bookmark: the
// buffer length at acquisition time, so truncate can discard everything
// speculatively appended since.
type sseBookmark int

// SyntaxStream is an append-only, bookmarkable event log (spec.md §4.2).
// It also tracks an open-node stack so Begin/End spans can be computed
// from their children's spans as described in §4.2.
type SyntaxStream struct {
	events []Event
	open   []openNode
}

type openNode struct {
	index     int // index into events of this node's Begin
	firstSpan *Span
	lastSpan  *Span
}

// NewSyntaxStream returns an empty event log.
func NewSyntaxStream() *SyntaxStream {
	return &SyntaxStream{}
}

// bookmark captures the current length for later truncation.
func (s *SyntaxStream) bookmark() sseBookmark {
	return sseBookmark(len(s.events))
}

// truncate drops every event appended after b.
func (s *SyntaxStream) truncate(b sseBookmark) {
	s.events = s.events[:int(b)]
}

// Begin opens a child node of kind at insertionPos (used for the
// zero-width span of an empty node until a child updates it).
func (s *SyntaxStream) Begin(kind token.Kind, insertionPos int) {
	idx := len(s.events)
	s.events = append(s.events, Event{Kind: EventBegin, Syntax: kind, Span: Span{Start: insertionPos, End: insertionPos}})
	s.open = append(s.open, openNode{index: idx})
	s.noteChildSpan(Span{Start: insertionPos, End: insertionPos})
}

// noteChildSpan widens the currently-open parent's recorded span (if
// any) to cover a just-emitted child span; called by every leaf/close
// operation, and skipped for the outermost SOURCE_FILE which has no
// parent on the open stack.
func (s *SyntaxStream) noteChildSpan(sp Span) {
	if len(s.open) == 0 {
		return
	}
	top := &s.open[len(s.open)-1]
	if top.firstSpan == nil {
		first := sp
		top.firstSpan = &first
	}
	last := sp
	top.lastSpan = &last
}

func (s *SyntaxStream) closeSpan() Span {
	top := s.open[len(s.open)-1]
	if top.firstSpan == nil {
		// empty node: zero-width at the Begin's recorded insertion point
		return s.events[top.index].Span
	}
	return Span{Start: top.firstSpan.Start, End: top.lastSpan.End}
}

// End closes the current node normally, computing its span from its
// children (or a zero-width span at the insertion point if it has none).
func (s *SyntaxStream) End() {
	sp := s.closeSpan()
	top := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	s.events[top.index].Span = sp
	kind := s.events[top.index].Syntax
	s.events = append(s.events, Event{Kind: EventEnd, Syntax: kind, Span: sp})
	s.noteChildSpan(sp)
}

// EndWithError closes the current node marking that it encountered a
// failure: the Begin/End pair is flagged Error so a consumer can
// identify error nodes without losing the original Syntax kind.
func (s *SyntaxStream) EndWithError() {
	sp := s.closeSpan()
	top := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	s.events[top.index].Span = sp
	s.events[top.index].Error = true
	kind := s.events[top.index].Syntax
	s.events = append(s.events, Event{Kind: EventEnd, Syntax: kind, Span: sp, Error: true})
	s.noteChildSpan(sp)
}

// PushToken emits a leaf token event.
func (s *SyntaxStream) PushToken(kind token.Kind, sp Span) {
	s.events = append(s.events, Event{Kind: EventToken, Syntax: kind, Span: sp})
	s.noteChildSpan(sp)
}

// PushError emits a diagnostic event. It does not affect the
// open-node span computation.
func (s *SyntaxStream) PushError(msg string, sp Span) {
	s.events = append(s.events, Event{Kind: EventError, Span: sp, Message: msg})
}

// Len reports how many events are buffered.
func (s *SyntaxStream) Len() int {
	return len(s.events)
}

// OpenDepth reports how many Begin events have no matching End yet. A
// nonzero count at a top-level-item boundary means some combinator's
// begin was never paired with an end.
func (s *SyntaxStream) OpenDepth() int {
	return len(s.open)
}

// Pop removes and returns the oldest buffered event, driver-facing. It
// is only ever called between top-level items, when the open-node stack
// is empty, so the absolute event indices recorded by Begin/End for the
// item just parsed never outlive this call.
func (s *SyntaxStream) Pop() (Event, bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e, true
}

// BeginSourceFile and EndSourceFile emit the document-level bracket
// events directly, bypassing the open-node stack used by Begin/End.
// The driver (not the combinator engine) owns SOURCE_FILE's lifetime,
// since it spans the whole streaming parse rather than one top-level
// item, and the open-node stack is reset to empty between items.
func (s *SyntaxStream) BeginSourceFile(sp Span) {
	s.events = append(s.events, Event{Kind: EventBegin, Syntax: token.SOURCE_FILE, Span: sp})
}

func (s *SyntaxStream) EndSourceFile(sp Span) {
	s.events = append(s.events, Event{Kind: EventEnd, Syntax: token.SOURCE_FILE, Span: sp})
}
