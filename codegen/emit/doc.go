/*
Package emit renders compiled font tables into target syntaxes.

Emitters are pure writers: they take an immutable table.FontTable and
stream C sources, C headers or JSON files. The C output instantiates the
firmware's font_info_t structure; the JSON output feeds translation blobs
and layout tooling.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package emit

import "github.com/npillmayer/schuko/tracing"

// tracer traces to tracing key 'fontbake.emit'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.emit")
}
