package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fontbake/fontbake/codegen/table"
)

// fontname is the lower-cased "<name>_<style>_<size>" identifier used in
// file names; symbol names keep the original casing via FullName.
func fontname(cfg table.FaceConfig) string {
	return fmt.Sprintf("%s_%s_%d", strings.ToLower(cfg.Name), strings.ToLower(cfg.Style), cfg.Size)
}

// CSourceName returns the file name for the C source of a table.
func CSourceName(cfg table.FaceConfig) string {
	return "font_" + fontname(cfg) + ".c"
}

// CHeaderName returns the file name for the C header of a table.
func CHeaderName(cfg table.FaceConfig) string {
	return "font_" + fontname(cfg) + ".h"
}

// WriteCSource streams the C source for a compiled table: one static byte
// array per glyph, the per-variant glyph pointer arrays and the font_info_t
// instances.
func WriteCSource(w io.Writer, t *table.FontTable) error {
	name := t.Config.FullName()
	ew := &errWriter{w: w}
	ew.printf("// This file is generated by fontbake\n\n")
	ew.printf("#include <stdint.h>\n")
	ew.printf("#include \"fonts.h\"\n\n")
	ew.printf("// clang-format off\n\n")
	ew.printf("// - the first two bytes are width and height of the glyph\n")
	ew.printf("// - the third, fourth and fifth bytes are advance, bearingX and bearingY of the horizontal metrics of the glyph\n")
	ew.printf("// - the rest is packed %d-bit glyph data\n\n", t.Config.BPP)
	//
	for _, e := range t.ASCII {
		ew.printf("%s\n", glyphDefinition(name, e.Char, fmt.Sprint(e.Char), e.Data))
	}
	ew.printf("\n%s\n", glyphDefinition(name, '?', "nonprintable", t.Nonprintable))
	//
	if t.Config.GenNormal {
		ew.printf("\nstatic const uint8_t * const Font_%s[%d + 1 - %d] = {\n",
			name, table.MaxGlyph, table.MinGlyph)
		for c := table.MinGlyph; c <= table.MaxGlyph; c++ {
			ew.printf("    Font_%s_glyph_%d,\n", name, c)
		}
		ew.printf("};\n")
	}
	if t.Config.GenUpper {
		ew.printf("\nstatic const uint8_t * const Font_%s_upper[%d + 1 - %d] = {\n",
			name, table.MaxGlyph, table.MinGlyph)
		for c := table.MinGlyph; c <= table.MaxGlyph; c++ {
			if to, ok := t.UpperIndex[c]; ok {
				ew.printf("    Font_%s_glyph_%d,  // %c -> %c\n", name, to, c, to)
			} else {
				ew.printf("    Font_%s_glyph_%d,\n", name, c)
			}
		}
		ew.printf("};\n")
	}
	//
	if t.Config.GenNormal {
		writeFontInfo(ew, t, false)
	}
	if t.Config.GenUpper {
		writeFontInfo(ew, t, true)
	}
	if ew.err == nil {
		tracer().Infof("emitted C source for %s", name)
	}
	return ew.err
}

// WriteCHeader streams the matching C header: a bit-depth guard plus the
// extern declarations of the font_info_t instances.
func WriteCHeader(w io.Writer, t *table.FontTable) error {
	name := t.Config.FullName()
	ew := &errWriter{w: w}
	ew.printf("// This file is generated by fontbake\n\n")
	ew.printf("#include <stdint.h>\n")
	ew.printf("#include \"fonts.h\"\n\n")
	ew.printf("#if FONT_BPP != %d\n", t.Config.BPP)
	ew.printf("#error Wrong FONT_BPP (expected %d)\n", t.Config.BPP)
	ew.printf("#endif\n\n")
	if t.Config.GenNormal {
		ew.printf("extern const font_info_t Font_%s_info;\n", name)
	}
	if t.Config.GenUpper {
		ew.printf("extern const font_info_t Font_%s_upper_info;\n", name)
	}
	return ew.err
}

func glyphDefinition(name string, c rune, ident string, data []byte) string {
	numbers := make([]string, len(data))
	for i, b := range data {
		numbers[i] = fmt.Sprint(b)
	}
	return fmt.Sprintf("/* %c */ static const uint8_t Font_%s_glyph_%s[] = { %s };",
		c, name, ident, strings.Join(numbers, ", "))
}

func writeFontInfo(ew *errWriter, t *table.FontTable, upper bool) {
	name := t.Config.FullName()
	suffix := ""
	if upper {
		suffix = "_upper"
	}
	ew.printf("\nconst font_info_t Font_%s%s_info = {\n", name, suffix)
	ew.printf("    .height = %d,\n", t.Config.Size)
	ew.printf("    .max_height = %d,\n", t.MaxHeight())
	ew.printf("    .baseline = %d,\n", t.Baseline())
	ew.printf("    .glyph_data = Font_%s%s,\n", name, suffix)
	ew.printf("    .glyph_nonprintable = Font_%s_glyph_nonprintable,\n", name)
	ew.printf("};\n")
}

// errWriter folds write errors, letting the emitters print without checking
// every call.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, v ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, v...)
}
