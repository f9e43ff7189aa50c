package emit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fontbake/fontbake/codegen/table"
	"github.com/fontbake/fontbake/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *table.FontTable {
	cfg := table.FaceConfig{
		Name:      "TTHoves",
		Style:     "DemiBold",
		Size:      24,
		BPP:       4,
		GenNormal: true,
		GenUpper:  true,
		FontIdx:   1,
	}
	t := &table.FontTable{
		Config:       cfg,
		Nonprintable: []byte{2, 2, 3, 0, 2, 0xF0, 0xF0},
		UpperIndex:   map[rune]rune{},
		YMin:         -2,
		YMax:         10,
	}
	for c := table.MinGlyph; c <= table.MaxGlyph; c++ {
		t.ASCII = append(t.ASCII, table.GlyphEntry{
			Char: c,
			Data: []byte{1, 1, 3, 0, 1, 0xF0},
		})
	}
	for c := 'a'; c <= 'z'; c++ {
		t.UpperIndex[c] = c - 'a' + 'A'
	}
	t.Langs = []table.LangTable{
		{Lang: "cs", Glyphs: []table.LangGlyph{
			{From: 'č', To: 'č', Data: []byte{1, 1, 4, 0, 1, 0xA0}},
			{From: 'á', To: 'á', Data: []byte{1, 1, 5, 0, 1, 0xB0}},
		}},
		{Lang: "cs", Upper: true, Glyphs: []table.LangGlyph{
			{From: 'č', To: 'Č', Data: []byte{1, 1, 6, 0, 1, 0xC0}},
			{From: 'á', To: 'Á', Data: []byte{1, 1, 7, 0, 1, 0xD0}},
		}},
	}
	return t
}

func TestArtifactNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	cfg := testTable().Config
	assert.Equal(t, "font_tthoves_demibold_24.c", CSourceName(cfg))
	assert.Equal(t, "font_tthoves_demibold_24.h", CHeaderName(cfg))
	assert.Equal(t, "font_tthoves_demibold_24_cs.json", LangJSONName(cfg, "cs", false))
	assert.Equal(t, "font_tthoves_demibold_24_upper_cs.json", LangJSONName(cfg, "cs", true))
	assert.Equal(t, "font_widths_tthoves_demibold_24.json", WidthsJSONName(cfg))
}

func TestWriteCSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, WriteCSource(&buf, testTable()))
	out := buf.String()
	//
	assert.Contains(t, out,
		"/* A */ static const uint8_t Font_TTHoves_DemiBold_24_glyph_65[] = { 1, 1, 3, 0, 1, 240 };")
	assert.Contains(t, out,
		"/* ? */ static const uint8_t Font_TTHoves_DemiBold_24_glyph_nonprintable[] = { 2, 2, 3, 0, 2, 240, 240 };")
	assert.Contains(t, out,
		"static const uint8_t * const Font_TTHoves_DemiBold_24[126 + 1 - 32] = {")
	assert.Contains(t, out,
		"static const uint8_t * const Font_TTHoves_DemiBold_24_upper[126 + 1 - 32] = {")
	assert.Contains(t, out, "    Font_TTHoves_DemiBold_24_glyph_65,  // a -> A")
	// both pointer arrays span the whole printable range
	assert.Equal(t, 2*95, strings.Count(out, "    Font_TTHoves_DemiBold_24_glyph_"))
	//
	assert.Contains(t, out, "const font_info_t Font_TTHoves_DemiBold_24_info = {")
	assert.Contains(t, out, "const font_info_t Font_TTHoves_DemiBold_24_upper_info = {")
	assert.Contains(t, out, "    .height = 24,")
	assert.Contains(t, out, "    .max_height = 12,")
	assert.Contains(t, out, "    .baseline = 2,")
	assert.Contains(t, out, "    .glyph_nonprintable = Font_TTHoves_DemiBold_24_glyph_nonprintable,")
}

func TestWriteCHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, WriteCHeader(&buf, testTable()))
	out := buf.String()
	assert.Contains(t, out, "#if FONT_BPP != 4")
	assert.Contains(t, out, "#error Wrong FONT_BPP (expected 4)")
	assert.Contains(t, out, "extern const font_info_t Font_TTHoves_DemiBold_24_info;")
	assert.Contains(t, out, "extern const font_info_t Font_TTHoves_DemiBold_24_upper_info;")
}

func TestWriteLangJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	var buf bytes.Buffer
	lt := testTable().Langs[1] // the upper variant, keyed by the lowercase forms
	require.NoError(t, WriteLangJSON(&buf, lt))
	//
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0101060001c0", decoded["č"])
	assert.Equal(t, "0101070001d0", decoded["á"])
	// character-set order survives serialization
	out := buf.String()
	assert.Less(t, strings.Index(out, `"č"`), strings.Index(out, `"á"`))
}

func TestWriteWidthsJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	var buf bytes.Buffer
	require.NoError(t, WriteWidthsJSON(&buf, testTable()))
	//
	var widths map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &widths))
	assert.Equal(t, 3, widths["A"], "ASCII advance comes from the serialized header")
	assert.Equal(t, 4, widths["č"])
	assert.Equal(t, 6, widths["Č"], "upper tables contribute the compiled character")
	//
	out := buf.String()
	assert.Less(t, strings.Index(out, `"A"`), strings.Index(out, `"a"`))
}

func TestWriteFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	dir := t.TempDir()
	written, err := WriteFiles(dir, testTable(), true, true)
	require.NoError(t, err)
	// C source + header, two language files, one widths file
	assert.Len(t, written, 5)
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), filepath.Base(path))
	}
	//
	written, err = WriteFiles(t.TempDir(), testTable(), false, false)
	require.NoError(t, err)
	assert.Len(t, written, 2, "only the language files without C and widths")
}

func TestWriteFilesUnwritableDir(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.emit")
	defer teardown()
	//
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	written, err := WriteFiles(dir, testTable(), false, false)
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Empty(t, written)
}
