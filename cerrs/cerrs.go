// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package cerrs

// Error defines a constant error
type Error string

// Error implements the error interface
func (e Error) Error() string { return string(e) }

const (
	// ErrBookmarkLeaked means a combinator acquired a TokenStream
	// bookmark and returned without ever closing it via Remove,
	// detected by Parser.checkInvariants at a top-level-item boundary
	// (spec.md §3 "Lifecycles", §5 "Resource ownership").
	ErrBookmarkLeaked = Error("bookmark leaked")

	// ErrUnclosedNode means a top-level item finished parsing with an
	// open node still on the SyntaxStream's stack — every begin must
	// have a matching end before the item boundary, detected by
	// Parser.checkInvariants (spec.md §4.2).
	ErrUnclosedNode = Error("unclosed node at end of stream")

	// ErrInvalidUTF8Source means cst.Build was asked to convert an
	// event stream over source bytes that are not valid UTF-8; CST
	// construction requires valid UTF-8 (spec.md §6 "Conversion").
	ErrInvalidUTF8Source = Error("source is not valid UTF-8")

	// ErrEventStreamTruncated means cst.Build encountered a Begin event
	// with no matching End before the event slice ran out.
	ErrEventStreamTruncated = Error("event stream ended with an open node")

	// ErrUnexpectedEnd means cst.Build encountered an End event with no
	// matching Begin on its stack.
	ErrUnexpectedEnd = Error("end event with no matching begin")
)
