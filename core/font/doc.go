/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc. An example is "Helvetica regular".

* A "typecase" is a font scaled to a fixed pixel size, ready to rasterize
glyphs for a raster device. An example is "Helvetica regular at 21px".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package font

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontbake.font'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.font")
}
