/*
Package glyph normalizes rasterized glyph metrics and serializes glyphs
into the fixed byte layout consumed by firmware font tables.

A serialized glyph starts with a 5-byte header

	[width, rows, advance, bearingX, bearingY]

followed by the glyph's pixels, packed to the table's bit depth (see
package pix). Zero-area glyphs, e.g. the space character, serialize to the
bare header.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package glyph

import "github.com/npillmayer/schuko/tracing"

// tracer traces to tracing key 'fontbake.glyph'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.glyph")
}
