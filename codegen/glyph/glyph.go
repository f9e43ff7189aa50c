package glyph

import (
	"github.com/fontbake/fontbake/codegen/pix"
)

// Glyph is one character's bitmap together with its normalized horizontal
// metrics. All metric fields are in whole pixels and fit into a single
// byte. A Glyph is immutable once extracted.
type Glyph struct {
	Char          rune
	Width, Rows   int    // bitmap dimensions
	Advance       int    // horizontal pen advance
	BearingX      int    // pen origin to left bitmap edge; never negative
	BearingY      int    // baseline to top bitmap edge; never negative
	Buf           []byte // row-major 8-bit grayscale pixels, len = Width*Rows
	NumGrays      int    // grayscale level count, diagnostic only
	InverseColors bool   // invert pixels at serialization time
}

// Bytes serializes the glyph for a given bit depth: the 5-byte metric
// header, then the packed pixel data. For glyphs with InverseColors set,
// every pixel is bit-inverted before packing, so that padding bits in the
// packed representation stay zero.
func (g *Glyph) Bytes(bpp int) ([]byte, error) {
	header := []byte{
		byte(g.Width),
		byte(g.Rows),
		byte(g.Advance),
		byte(g.BearingX),
		byte(g.BearingY),
	}
	if len(g.Buf) == 0 {
		return header, nil
	}
	buf := g.Buf
	if g.InverseColors {
		buf = make([]byte, len(g.Buf))
		for i, px := range g.Buf {
			buf[i] = px ^ 0xFF
		}
	}
	data, err := pix.Pack(buf, bpp, g.Width, g.Rows)
	if err != nil {
		return nil, err
	}
	return append(header, data...), nil
}

// LogMetrics dumps the glyph's dimensions and metrics to the trace.
func (g *Glyph) LogMetrics() {
	tracer().Infof("loaded glyph %q ... %d x %d @ %d grays (%d bytes, metrics: %d, %d, %d)",
		g.Char, g.Width, g.Rows, g.NumGrays, len(g.Buf),
		g.Advance, g.BearingX, g.BearingY)
}
