package table

import (
	"errors"
	"testing"

	"github.com/fontbake/fontbake/codegen/glyph"
	"github.com/fontbake/fontbake/core/charset"
	"github.com/fontbake/fontbake/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/math/fixed"
)

func stubRaster(w, h int, advance, bearingX, bearingY int) font.Raster {
	return font.Raster{
		Width:    w,
		Rows:     h,
		Pitch:    w,
		Buffer:   make([]byte, w*h),
		Advance:  fixed.I(advance),
		BearingX: fixed.I(bearingX),
		BearingY: fixed.I(bearingY),
		NumGrays: 256,
	}
}

// stubRasterizer answers with a fixed default raster, overridable per
// character, and counts its invocations.
type stubRasterizer struct {
	rasters map[rune]font.Raster
	calls   int
}

func (s *stubRasterizer) RasterizeGlyph(c rune) (font.Raster, error) {
	s.calls++
	if r, ok := s.rasters[c]; ok {
		return r, nil
	}
	return stubRaster(2, 3, 3, 0, 3), nil
}

func testConfig() FaceConfig {
	return FaceConfig{
		Name:      "Stub",
		Style:     "Regular",
		Size:      12,
		BPP:       4,
		GenNormal: true,
		FontIdx:   1,
	}
}

func TestBuildRejectsEmptyConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	ras := &stubRasterizer{}
	cfg := testConfig()
	cfg.GenNormal = false
	_, err := Build(ras, cfg)
	if err == nil {
		t.Fatal("expected a config without variants to be rejected, isn't")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("expected a ConfigError, got %T", err)
	}
	if ras.calls != 0 {
		t.Errorf("expected no rasterization before config validation, got %d calls", ras.calls)
	}
}

func TestBuildASCIIRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	tbl, err := Build(&stubRasterizer{}, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.ASCII) != 95 { // ' ' .. '~'
		t.Errorf("expected 95 ASCII glyphs, got %d", len(tbl.ASCII))
	}
	if tbl.ASCII[0].Char != ' ' || tbl.ASCII[94].Char != '~' {
		t.Errorf("expected the table to span ' '..'~', spans %q..%q",
			tbl.ASCII[0].Char, tbl.ASCII[94].Char)
	}
	if tbl.UpperIndex != nil {
		t.Errorf("normal-only tables must not carry an upper index")
	}
}

func TestBuildUpperOnlySkipsLowercase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	cfg := testConfig()
	cfg.GenNormal = false
	cfg.GenUpper = true
	cfg.FontIdxUpper = 2
	tbl, err := Build(&stubRasterizer{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.ASCII) != 95-26 {
		t.Errorf("expected lowercase letters skipped, got %d glyphs", len(tbl.ASCII))
	}
	for _, e := range tbl.ASCII {
		if e.Char >= 'a' && e.Char <= 'z' {
			t.Fatalf("lowercase %q present in an upper-only table", e.Char)
		}
	}
	if len(tbl.UpperIndex) != 26 || tbl.UpperIndex['a'] != 'A' {
		t.Errorf("unexpected upper index %v", tbl.UpperIndex)
	}
}

func TestBuildVerticalExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	ras := &stubRasterizer{rasters: map[rune]font.Raster{
		'g': stubRaster(2, 4, 3, 0, 2), // descends 2 rows below the baseline
	}}
	tbl, err := Build(ras, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if tbl.YMin != -2 || tbl.YMax != 3 {
		t.Errorf("expected extent [-2,3], got [%d,%d]", tbl.YMin, tbl.YMax)
	}
	if tbl.Baseline() != 2 || tbl.MaxHeight() != 5 {
		t.Errorf("expected baseline 2, max height 5, got %d, %d",
			tbl.Baseline(), tbl.MaxHeight())
	}
}

func TestBuildNonprintableFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	tbl, err := Build(&stubRasterizer{}, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Nonprintable) == 0 {
		t.Fatal("expected a nonprintable fallback glyph")
	}
	if len(tbl.Glyph('A')) == 0 {
		t.Errorf("expected a serialized glyph for 'A'")
	}
	if got := tbl.Glyph('€'); &got[0] != &tbl.Nonprintable[0] {
		t.Errorf("expected lookup of an absent character to fall back to the nonprintable glyph")
	}
	// the fallback must differ from a plain '?': its pixels are inverted
	if string(tbl.Nonprintable) == string(tbl.Glyph('?')) {
		t.Errorf("expected the nonprintable glyph to be inverted")
	}
}

func TestBuildLangTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	set := charset.New("de")
	if err := set.Add("äß"); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.GenUpper = true
	cfg.FontIdxUpper = 2
	tbl, err := Build(&stubRasterizer{}, cfg, set)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Langs) != 2 {
		t.Fatalf("expected a normal and an upper table for 'de', got %d", len(tbl.Langs))
	}
	normal, upper := tbl.Langs[0], tbl.Langs[1]
	if normal.Upper || !upper.Upper {
		t.Fatalf("expected the normal table first, then the upper table")
	}
	for _, lg := range normal.Glyphs {
		if lg.From != lg.To {
			t.Errorf("normal table must not remap: %q -> %q", lg.From, lg.To)
		}
	}
	if upper.Glyphs[0].From != 'ä' || upper.Glyphs[0].To != 'Ä' {
		t.Errorf("expected ä remapped to Ä, got %q -> %q",
			upper.Glyphs[0].From, upper.Glyphs[0].To)
	}
	if upper.Glyphs[1].From != 'ß' || upper.Glyphs[1].To != 'ß' {
		t.Errorf("expected ß to pass through, got %q -> %q",
			upper.Glyphs[1].From, upper.Glyphs[1].To)
	}
}

func TestBuildAbortsOnMetricError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	ras := &stubRasterizer{rasters: map[rune]font.Raster{
		'b': stubRaster(2, 3, 3, -1, 3), // negative bearingX, not allow-listed
	}}
	tbl, err := Build(ras, testConfig())
	if err == nil {
		t.Fatal("expected the build to abort on a metric violation")
	}
	var merr *glyph.MetricError
	if !errors.As(err, &merr) {
		t.Errorf("expected a MetricError, got %T", err)
	}
	if tbl != nil {
		t.Errorf("expected no partial table on failure")
	}
}

func TestFontInfo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.table")
	defer teardown()
	//
	tbl, err := Build(&stubRasterizer{}, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	info, err := tbl.FontInfo(false)
	if err != nil {
		t.Fatal(err)
	}
	if info.Variant != "normal" || info.BlobIdx != 1 || info.Height != 12 {
		t.Errorf("unexpected font info %v", info)
	}
	if info.Baseline != tbl.Baseline() || info.MaxHeight != tbl.MaxHeight() {
		t.Errorf("font info metrics disagree with the table")
	}
	//
	if _, err = tbl.FontInfo(true); err == nil {
		t.Error("expected an error for the absent upper variant")
	}
	//
	cfg := testConfig()
	cfg.FontIdx = 0
	tbl, err = Build(&stubRasterizer{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = tbl.FontInfo(false); err == nil {
		t.Error("expected an error for an unset font index")
	}
}
