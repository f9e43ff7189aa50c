/*
Package resources locates and loads font resources for a build.

As resource loading may be a time-consuming task, some functions in this
package work in an async/await fashion by returning a promise. Functions
named

   Resolve…(…)

return a resource-specific promise type, which the client calls later to
receive the loaded resource. The call to the promise-function then blocks
until loading has completed.

Fonts are resolved along a fixed chain: the in-process registry, the
project's font directory, locally installed system fonts, the fontconfig
database, and finally the Google Fonts service (downloads are cached in the
user's cache directory).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontbake.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontbake.resources")
}
