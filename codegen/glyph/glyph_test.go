package glyph

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fontbake/fontbake/codegen/pix"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBytesHeaderOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.glyph")
	defer teardown()
	//
	g := &Glyph{Char: ' ', Advance: 4}
	out, err := g.Bytes(4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{0, 0, 4, 0, 0}) {
		t.Errorf("zero-area glyph should serialize to the bare header, got %v", out)
	}
}

func TestBytesHeaderPlusPixels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.glyph")
	defer teardown()
	//
	g := &Glyph{
		Char: 'x', Width: 3, Rows: 1,
		Advance: 4, BearingX: 1, BearingY: 1,
		Buf: []byte{0xF0, 0x00, 0xA0},
	}
	out, err := g.Bytes(4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, []byte{3, 1, 4, 1, 1, 0x0F, 0x0A}) {
		t.Errorf("unexpected serialization %v", out)
	}
	packed, _ := pix.Pack(g.Buf, 4, 3, 1)
	if len(out) != 5+len(packed) {
		t.Errorf("expected 5 header bytes plus %d packed bytes, got %d total",
			len(packed), len(out))
	}
}

func TestBytesInverseColors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.glyph")
	defer teardown()
	//
	buf := []byte{0x00, 0x80, 0xFF, 0x3C}
	g := &Glyph{
		Char: '?', Width: 2, Rows: 2,
		Advance: 3, BearingX: 0, BearingY: 2,
		Buf: buf, InverseColors: true,
	}
	for _, bpp := range []int{1, 2, 4, 8} {
		out, err := g.Bytes(bpp)
		if err != nil {
			t.Fatal(err)
		}
		inverted := make([]byte, len(buf))
		for i, px := range buf {
			inverted[i] = px ^ 0xFF
		}
		want, _ := pix.Pack(inverted, bpp, 2, 2)
		if !bytes.Equal(out[5:], want) {
			t.Errorf("%d bpp: pixel region should pack the inverted buffer, got %v", bpp, out[5:])
		}
	}
}

func TestBytesPropagatesPackError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.glyph")
	defer teardown()
	//
	g := &Glyph{Char: 'x', Width: 1, Rows: 1, Advance: 2, Buf: []byte{0xFF}}
	_, err := g.Bytes(5)
	if err == nil {
		t.Fatal("expected 5 bpp to fail, hasn't")
	}
	var perr *pix.PackError
	if !errors.As(err, &perr) {
		t.Errorf("expected the PackError to propagate unchanged, got %T", err)
	}
}
