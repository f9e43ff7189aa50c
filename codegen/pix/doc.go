/*
Package pix packs 8-bit grayscale pixel buffers into dense 1-, 2-, 4- or
8-bit-per-pixel representations, as consumed by firmware blitting code.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pix

import "github.com/npillmayer/schuko/tracing"

// tracer traces to tracing key 'fontbake.pix'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.pix")
}
