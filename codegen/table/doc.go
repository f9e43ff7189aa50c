/*
Package table assembles per-font glyph tables for embedded displays.

A font table holds the serialized glyphs for the printable ASCII range, a
reserved "nonprintable" fallback glyph, optional per-language supplementary
glyphs and the whole-font vertical metrics. Two variants exist: "normal"
(all characters) and "upper-only" (lowercase letters remapped to their
uppercase glyphs, to save table space on tiny displays).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package table

import "github.com/npillmayer/schuko/tracing"

// tracer traces to tracing key 'fontbake.table'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.table")
}
