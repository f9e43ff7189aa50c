package table

import (
	"unicode"

	"github.com/fontbake/fontbake/codegen/glyph"
	"github.com/fontbake/fontbake/core/charset"
)

// extent folds the vertical extent over a table's glyphs. The zero value
// seeds both bounds at 0, so a font without descenders still reports 0.
type extent struct {
	yMin, yMax int
}

func (e extent) extend(g *glyph.Glyph) extent {
	yMin := g.BearingY - g.Rows
	yMax := yMin + g.Rows
	if yMin < e.yMin {
		e.yMin = yMin
	}
	if yMax > e.yMax {
		e.yMax = yMax
	}
	return e
}

// Build compiles a font table for one face configuration. Every character
// of the printable ASCII range plus every character of the given
// supplementary sets is rasterized, normalized and serialized at the
// configured bit depth. Any extraction failure aborts the whole build; no
// partial tables are produced.
//
// Build owns all of its accumulators: concurrent builds are safe as long as
// they use independent rasterizers.
func Build(ras glyph.Rasterizer, cfg FaceConfig, sets ...*charset.Set) (*FontTable, error) {
	if !cfg.GenNormal && !cfg.GenUpper {
		return nil, &ConfigError{
			Reason: "at least one of the normal or upper-only variants must be selected",
		}
	}
	tracer().Infof("processing ... %s at %d bpp", cfg.FullName(), cfg.BPP)
	t := &FontTable{
		Config: cfg,
		index:  make(map[rune][]byte),
	}
	ext := extent{}
	for c := MinGlyph; c <= MaxGlyph; c++ {
		if unicode.IsLower(c) && !cfg.GenNormal {
			// upper-only tables reference uppercase glyphs instead
			continue
		}
		g, err := glyph.FromRasterizer(ras, c, cfg.ShaveX, false)
		if err != nil {
			return nil, err
		}
		g.LogMetrics()
		data, err := g.Bytes(cfg.BPP)
		if err != nil {
			return nil, err
		}
		t.ASCII = append(t.ASCII, GlyphEntry{Char: c, Data: data})
		t.index[c] = data
		ext = ext.extend(g)
	}
	t.YMin, t.YMax = ext.yMin, ext.yMax
	//
	// the fallback glyph for characters absent from the table: '?' with
	// inverted colors, so it cannot be mistaken for a real glyph
	np, err := glyph.FromRasterizer(ras, '?', cfg.ShaveX, true)
	if err != nil {
		return nil, err
	}
	if t.Nonprintable, err = np.Bytes(cfg.BPP); err != nil {
		return nil, err
	}
	//
	if cfg.GenUpper {
		t.UpperIndex = make(map[rune]rune, 26)
		for c := 'a'; c <= 'z'; c++ {
			t.UpperIndex[c] = unicode.ToUpper(c)
		}
	}
	//
	for _, set := range sets {
		if cfg.GenNormal {
			lt, err := buildLangTable(ras, cfg, set, false)
			if err != nil {
				return nil, err
			}
			t.Langs = append(t.Langs, lt)
		}
		if cfg.GenUpper {
			lt, err := buildLangTable(ras, cfg, set, true)
			if err != nil {
				return nil, err
			}
			t.Langs = append(t.Langs, lt)
		}
	}
	tracer().Infof("font %s: baseline %d, max height %d",
		cfg.FullName(), t.Baseline(), t.MaxHeight())
	return t, nil
}

func buildLangTable(ras glyph.Rasterizer, cfg FaceConfig, set *charset.Set,
	upper bool) (LangTable, error) {
	//
	lt := LangTable{Lang: set.Lang(), Upper: upper}
	for _, from := range set.Runes() {
		c := from
		if upper && unicode.IsLower(c) {
			c = charset.ToUpper(c) // ß passes through unchanged
		}
		g, err := glyph.FromRasterizer(ras, c, cfg.ShaveX, false)
		if err != nil {
			return lt, err
		}
		g.LogMetrics()
		data, err := g.Bytes(cfg.BPP)
		if err != nil {
			return lt, err
		}
		lt.Glyphs = append(lt.Glyphs, LangGlyph{From: from, To: c, Data: data})
	}
	return lt, nil
}
