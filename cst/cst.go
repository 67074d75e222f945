// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package cst builds a navigable Concrete Syntax Tree from the event
// stream produced by package parser, preserving every lexical detail
// including punctuation and whitespace, and recovering from errors by
// capturing malformed constructs in ERROR-kind nodes. This is the
// "Conversion" half of spec.md §6: the core's own scope stops at the
// event stream; consuming it into either this navigable tree or an AST
// is a separate concern, and only the CST side of that is implemented
// here (spec.md §1 keeps the AST builder explicitly out of scope).
package cst

import (
	"unicode/utf8"

	"github.com/mdhender/yarapeg/cerrs"
	"github.com/mdhender/yarapeg/parser"
	"github.com/mdhender/yarapeg/token"
)

// Span mirrors parser.Span: a half-open byte range into the source.
type Span = parser.Span

// Node is anything that can appear in the tree: a Tree (non-leaf) or a
// Leaf (a single token).
type Node interface {
	Span() Span
	Kind() token.Kind
}

// Leaf is a single token, carrying the literal source text it covers.
type Leaf struct {
	span Span
	kind token.Kind
	text string
}

func (l *Leaf) Span() Span      { return l.span }
func (l *Leaf) Kind() token.Kind { return l.kind }
func (l *Leaf) Text() string    { return l.text }

// Tree is a non-leaf node: a grammar production (or ERROR) with
// children in source order. Unlike the teacher's domain-specific
// Header/BadTopLevel records, Tree is generic because the YARA CST must
// represent arbitrary grammar shapes, not one fixed record per node
// kind.
type Tree struct {
	span     Span
	kind     token.Kind
	errored  bool
	Children []Node
}

func (t *Tree) Span() Span      { return t.span }
func (t *Tree) Kind() token.Kind { return t.kind }

// Errored reports whether this node was closed via end_with_error (its
// Kind may still be its original grammar kind, not ERROR, per spec.md
// §3's "implementation choice" between substituting ERROR and attaching
// an error flag — this port attaches the flag and keeps the kind).
func (t *Tree) Errored() bool { return t.errored }

// Diagnostic is a resolved parse diagnostic, carried alongside the tree
// rather than embedded in it, so callers can render/filter them
// independent of tree shape (spec.md §6 "Diagnostics format").
type Diagnostic struct {
	Span    Span
	Message string
}

// File is the CST root: SOURCE_FILE's children plus every Diagnostic
// emitted during the parse, in the order the driver resolved them.
type File struct {
	Root        *Tree
	Diagnostics []Diagnostic
}

// Build consumes a finished event stream (e.g. from (*parser.Driver).All)
// over src and constructs a navigable tree. It requires src to be valid
// UTF-8, per spec.md §6 ("Conversion ... yields ... a full CST
// (tree built from the event stream, requiring the source to be valid
// UTF-8)").
func Build(events []parser.Event, src []byte) (*File, error) {
	if !utf8.Valid(src) {
		return nil, cerrs.ErrInvalidUTF8Source
	}
	b := &builder{src: src}
	for _, e := range events {
		if err := b.apply(e); err != nil {
			return nil, err
		}
	}
	if len(b.stack) != 0 {
		return nil, cerrs.ErrEventStreamTruncated
	}
	return &File{Root: b.root, Diagnostics: b.diags}, nil
}

type builder struct {
	src   []byte
	stack []*Tree
	root  *Tree
	diags []Diagnostic
}

func (b *builder) apply(e parser.Event) error {
	switch e.Kind {
	case parser.EventBegin:
		t := &Tree{span: e.Span, kind: e.Syntax}
		if len(b.stack) > 0 {
			top := b.stack[len(b.stack)-1]
			top.Children = append(top.Children, t)
		}
		b.stack = append(b.stack, t)

	case parser.EventEnd:
		if len(b.stack) == 0 {
			return cerrs.ErrUnexpectedEnd
		}
		top := b.stack[len(b.stack)-1]
		top.span = e.Span
		top.errored = e.Error
		b.stack = b.stack[:len(b.stack)-1]
		if len(b.stack) == 0 {
			b.root = top
		}

	case parser.EventToken:
		l := &Leaf{span: e.Span, kind: e.Syntax, text: string(b.src[e.Span.Start:e.Span.End])}
		if len(b.stack) > 0 {
			top := b.stack[len(b.stack)-1]
			top.Children = append(top.Children, l)
		}

	case parser.EventError:
		b.diags = append(b.diags, Diagnostic{Span: e.Span, Message: e.Message})
	}
	return nil
}
