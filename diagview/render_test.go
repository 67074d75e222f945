// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package diagview

import (
	"bytes"
	"testing"

	"github.com/mdhender/yarapeg/cst"
)

func TestRenderPlain(t *testing.T) {
	t.Parallel()
	src := []byte("rule t {\n  condition: }")
	r := New(src, &bytes.Buffer{}).WithColor(false)
	var buf bytes.Buffer
	r.Render(&buf, cst.Diagnostic{Span: cst.Span{Start: 22, End: 23}, Message: "expecting expression, found `}`"})
	want := "2:14: error: expecting expression, found `}`\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderColor(t *testing.T) {
	t.Parallel()
	src := []byte("x")
	r := New(src, &bytes.Buffer{}).WithColor(true)
	var buf bytes.Buffer
	r.Render(&buf, cst.Diagnostic{Span: cst.Span{Start: 0, End: 0}, Message: "boom"})
	got := buf.String()
	if !bytes.Contains([]byte(got), []byte("boom")) {
		t.Fatalf("rendered output missing message: %q", got)
	}
	if !bytes.Contains([]byte(got), []byte(ansiRed)) {
		t.Fatalf("expected ANSI color codes in output: %q", got)
	}
}

func TestRenderAllMultipleDiagnostics(t *testing.T) {
	t.Parallel()
	src := []byte("ab\ncd\nef")
	r := New(src, &bytes.Buffer{}).WithColor(false)
	ds := []cst.Diagnostic{
		{Span: cst.Span{Start: 0, End: 1}, Message: "first"},
		{Span: cst.Span{Start: 3, End: 4}, Message: "second"},
	}
	var buf bytes.Buffer
	r.RenderAll(&buf, ds)
	want := "1:1: error: first\n2:1: error: second\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestUseColorForNonFile(t *testing.T) {
	t.Parallel()
	if UseColorFor(&bytes.Buffer{}) {
		t.Fatal("expected UseColorFor to report false for a non-*os.File writer")
	}
}
