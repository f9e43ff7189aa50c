package emit

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fontbake/fontbake/codegen/table"
)

// LangJSONName returns the file name for one language's glyph JSON.
func LangJSONName(cfg table.FaceConfig, lang string, upper bool) string {
	suffix := ""
	if upper {
		suffix = "_upper"
	}
	return fmt.Sprintf("font_%s%s_%s.json", fontname(cfg), suffix, lang)
}

// WriteLangJSON streams one language table as a JSON object mapping each
// character to its hex-encoded serialized glyph. Keys keep the character
// set's order, so the output is hand-assembled instead of marshaled from a
// Go map.
func WriteLangJSON(w io.Writer, lt table.LangTable) error {
	ew := &errWriter{w: w}
	ew.printf("{\n")
	for i, lg := range lt.Glyphs {
		key, err := json.Marshal(string(lg.From))
		if err != nil {
			return err
		}
		sep := ","
		if i == len(lt.Glyphs)-1 {
			sep = ""
		}
		ew.printf("  %s: \"%s\"%s\n", key, hex.EncodeToString(lg.Data), sep)
	}
	ew.printf("}\n")
	if ew.err == nil {
		tracer().Infof("emitted %d glyphs for language %q (upper=%v)",
			len(lt.Glyphs), lt.Lang, lt.Upper)
	}
	return ew.err
}

// WidthsJSONName returns the file name for a table's character width JSON.
func WidthsJSONName(cfg table.FaceConfig) string {
	return "font_widths_" + fontname(cfg) + ".json"
}

// WriteWidthsJSON streams the advance width of every compiled character as
// a JSON object, sorted by character. Advances are read back from the
// serialized glyphs, so the file always agrees with the emitted tables.
// Characters are keyed by their compiled form: an upper-cased language
// table contributes its uppercase characters.
func WriteWidthsJSON(w io.Writer, t *table.FontTable) error {
	widths := make(map[rune]int)
	for _, e := range t.ASCII {
		widths[e.Char] = int(e.Data[2])
	}
	for _, lt := range t.Langs {
		for _, lg := range lt.Glyphs {
			widths[lg.To] = int(lg.Data[2])
		}
	}
	chars := make([]rune, 0, len(widths))
	for c := range widths {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	//
	ew := &errWriter{w: w}
	ew.printf("{\n")
	for i, c := range chars {
		key, err := json.Marshal(string(c))
		if err != nil {
			return err
		}
		sep := ","
		if i == len(chars)-1 {
			sep = ""
		}
		ew.printf("  %s: %d%s\n", key, widths[c], sep)
	}
	ew.printf("}\n")
	return ew.err
}
