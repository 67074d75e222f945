// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package diagview renders cst.Diagnostic values as human-readable
// text. It is a library concern, not a CLI (spec.md §6 "No CLI"): it
// formats into an io.Writer the caller supplies and decides on ANSI
// coloring only when that writer is backed by a real terminal.
package diagview

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mdhender/yarapeg/cst"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Renderer writes diagnostics against a known source buffer, computing
// line/column positions from byte offsets on demand.
type Renderer struct {
	src   []byte
	color bool
}

// New returns a Renderer for src. Color defaults to whether w looks
// like a real terminal, per UseColorFor.
func New(src []byte, w io.Writer) *Renderer {
	return &Renderer{src: src, color: UseColorFor(w)}
}

// UseColorFor reports whether w is a file descriptor isatty considers a
// terminal (and therefore safe to decorate with ANSI escapes).
func UseColorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WithColor forces color on or off, overriding the terminal detection.
func (r *Renderer) WithColor(on bool) *Renderer {
	r.color = on
	return r
}

// lineCol converts a byte offset into a 1-based line and column.
func (r *Renderer) lineCol(offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(r.src); i++ {
		if r.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Render writes one diagnostic to w in the form "line:col: error: message".
func (r *Renderer) Render(w io.Writer, d cst.Diagnostic) {
	line, col := r.lineCol(d.Span.Start)
	if r.color {
		fmt.Fprintf(w, "%s%d:%d:%s %s%serror:%s %s\n", ansiBold, line, col, ansiReset, ansiBold, ansiRed, ansiReset, d.Message)
		return
	}
	fmt.Fprintf(w, "%d:%d: error: %s\n", line, col, d.Message)
}

// RenderAll writes every diagnostic in ds to w, one per line.
func (r *Renderer) RenderAll(w io.Writer, ds []cst.Diagnostic) {
	for _, d := range ds {
		r.Render(w, d)
	}
}
