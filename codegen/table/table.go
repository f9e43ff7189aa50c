package table

// Printable ASCII range covered by every font table.
const (
	MinGlyph rune = ' '
	MaxGlyph rune = '~'
)

// GlyphEntry is one serialized ASCII glyph.
type GlyphEntry struct {
	Char rune
	Data []byte
}

// LangGlyph is one serialized supplementary glyph. From is the character a
// renderer looks up; To is the character whose glyph was actually compiled
// (they differ in upper-only tables, where lowercase input maps to the
// uppercase glyph).
type LangGlyph struct {
	From rune
	To   rune
	Data []byte
}

// LangTable holds the supplementary glyphs of one language for one table
// variant, in character-set order.
type LangTable struct {
	Lang   string
	Upper  bool
	Glyphs []LangGlyph
}

// FontTable is the compiled, immutable result for one face configuration.
// It is a language-agnostic in-memory representation; emitters turn it into
// C sources, JSON files or other target syntaxes.
type FontTable struct {
	Config       FaceConfig
	ASCII        []GlyphEntry  // ordered, lowercase omitted in upper-only tables
	Nonprintable []byte        // fallback glyph, built from '?' with inverted colors
	UpperIndex   map[rune]rune // lowercase -> uppercase remap, upper variant only
	Langs        []LangTable
	YMin, YMax   int // whole-font vertical extent, relative to the baseline

	index map[rune][]byte
}

// Baseline is the distance from the table's top-most pixel rows down to the
// baseline.
func (t *FontTable) Baseline() int {
	return -t.YMin
}

// MaxHeight is the whole-font vertical extent in pixel rows.
func (t *FontTable) MaxHeight() int {
	return t.YMax - t.YMin
}

// Glyph returns the serialized glyph for a character, falling back to the
// nonprintable glyph for characters absent from the table.
func (t *FontTable) Glyph(c rune) []byte {
	if data, ok := t.index[c]; ok {
		return data
	}
	return t.Nonprintable
}

// FontInfo carries the whole-font constants an emitter writes into the
// firmware's font_info structure for one variant.
type FontInfo struct {
	Variant   string // "normal" or "upper"
	BlobIdx   int    // translation blob index, opaque to the core
	Height    int    // the face's pixel size
	MaxHeight int
	Baseline  int
}

// FontInfo assembles the font_info constants for the normal or upper
// variant. It fails with a ConfigError if the variant was not generated or
// its identifier is unset.
func (t *FontTable) FontInfo(upper bool) (FontInfo, error) {
	variant, idx, enabled := "normal", t.Config.FontIdx, t.Config.GenNormal
	if upper {
		variant, idx, enabled = "upper", t.Config.FontIdxUpper, t.Config.GenUpper
	}
	if !enabled {
		return FontInfo{}, &ConfigError{
			Reason: "variant " + variant + " was not generated for " + t.Config.FullName(),
		}
	}
	if idx == 0 {
		return FontInfo{}, &ConfigError{
			Reason: "font index must be set for variant " + variant + " of " + t.Config.FullName(),
		}
	}
	return FontInfo{
		Variant:   variant,
		BlobIdx:   idx,
		Height:    t.Config.Size,
		MaxHeight: t.MaxHeight(),
		Baseline:  t.Baseline(),
	}, nil
}
