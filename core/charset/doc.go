/*
Package charset provides per-language supplementary character sets.

Font tables for embedded targets carry the printable ASCII range plus, per
supported UI language, a small ordered set of additional characters. The
sets preserve their curated order and every character is normalized to
Unicode NFKC form, so that one character always occupies exactly one code
point.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package charset

import "github.com/npillmayer/schuko/tracing"

// tracer traces to tracing key 'fontbake.charset'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.charset")
}
