package glyph

import (
	"fmt"

	"github.com/fontbake/fontbake/core"
	"github.com/fontbake/fontbake/core/font"
	"golang.org/x/text/unicode/norm"
)

// MetricError signals that a rasterized glyph violates the numeric or range
// invariants of the fixed table layout, or that normalization cannot
// resolve a negative bearing. These are font/data defects, not transient
// failures: the current build is aborted.
type MetricError struct {
	Char   rune
	Reason string
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("glyph %q: %s", e.Char, e.Reason)
}

// ErrorCode returns core.EINVALID.
func (e *MetricError) ErrorCode() int { return core.EINVALID }

// UserMessage names the offending character.
func (e *MetricError) UserMessage() string {
	return fmt.Sprintf("glyph metrics for %q violate table invariants: %s", e.Char, e.Reason)
}

var _ core.AppError = &MetricError{}

func metricErrorf(c rune, format string, v ...interface{}) error {
	return &MetricError{Char: c, Reason: fmt.Sprintf(format, v...)}
}

// Rasterizer renders single characters at a fixed pixel size. It is a
// blocking external call; *font.TypeCase is the canonical implementation.
type Rasterizer interface {
	RasterizeGlyph(c rune) (font.Raster, error)
}

// modifyBearingX enumerates the characters for which a negative bearingX
// is legitimate; the deficit is folded into the advance instead. Any other
// character with negative bearingX is a font defect.
var modifyBearingX = bearingXAllowList(
	"Ä", "À", "Â", "Ã", "Æ", "Î", "Ï", "Ì", "î", "ï", "ì", "ÿ", "Ý", "Ÿ",
	"Á", "ý", "A", "X", "Y", "j", "x", "y", "}", ")", ",", "/", "_",
)

func bearingXAllowList(chars ...string) map[rune]bool {
	m := make(map[rune]bool, len(chars))
	for _, c := range chars {
		r := []rune(norm.NFKC.String(c))
		if len(r) != 1 {
			panic("allow-list entry is not a single character")
		}
		m[r[0]] = true
	}
	return m
}

// pxUnit is the fixed-point unit of the rasterizer's metrics: 26.6 values
// carry 64 units per pixel.
const pxUnit = 64

// FromRasterizer rasterizes a single character and normalizes it into a
// Glyph, see FromRaster.
func FromRasterizer(ras Rasterizer, c rune, shaveX int, inverseColors bool) (*Glyph, error) {
	raster, err := ras.RasterizeGlyph(c)
	if err != nil {
		return nil, err
	}
	return FromRaster(raster, c, shaveX, inverseColors)
}

// FromRaster normalizes a rasterized bitmap plus metrics into a Glyph
// satisfying the table invariants:
//
//   - metrics must be exact pixel multiples of the 26.6 unit,
//   - up to shaveX blank columns are folded out of advance and bearingX,
//     any remainder is cut from the bitmap itself,
//   - a negative bearingX is folded into the advance for allow-listed
//     characters and rejected for all others,
//   - a negative bearingY is clamped to 0 (lossy, traced as a diagnostic),
//   - advance, bearingX and bearingY must end up in 0..255.
//
// Violations fail with a MetricError; nothing is silently fixed except the
// bearingY clamp.
func FromRaster(r font.Raster, c rune, shaveX int, inverseColors bool) (*Glyph, error) {
	if r.Pitch != r.Width {
		return nil, metricErrorf(c, "bitmap has row padding: pitch %d, width %d", r.Pitch, r.Width)
	}
	if len(r.Buffer) != r.Pitch*r.Rows {
		return nil, metricErrorf(c, "buffer length %d does not match %d x %d",
			len(r.Buffer), r.Pitch, r.Rows)
	}
	if r.Advance%pxUnit != 0 || r.BearingX%pxUnit != 0 || r.BearingY%pxUnit != 0 {
		return nil, metricErrorf(c, "metrics carry sub-pixel remainders: %v, %v, %v",
			r.Advance, r.BearingX, r.BearingY)
	}
	width := r.Width
	rows := r.Rows
	advance := int(r.Advance) / pxUnit
	bearingX := int(r.BearingX) / pxUnit
	bearingY := int(r.BearingY) / pxUnit

	removeLeft := shaveX
	// discard space on the left side
	if shaveX > 0 {
		diff := min3(advance, bearingX, shaveX)
		advance -= diff
		bearingX -= diff
		removeLeft -= diff
	}
	// a few characters legitimately have negative bearingX; not using
	// negative bearingX makes life so much easier, add it to advance instead
	if bearingX < 0 {
		if !modifyBearingX[c] {
			return nil, metricErrorf(c, "unexpected negative bearingX %d", bearingX)
		}
		advance += -bearingX
		bearingX = 0
	}
	if advance < 0 || advance > 255 {
		return nil, metricErrorf(c, "advance %d out of range 0..255", advance)
	}
	if bearingX > 255 {
		return nil, metricErrorf(c, "bearingX %d out of range 0..255", bearingX)
	}
	if bearingY < 0 {
		// HACK inherited by the table consumers' baseline arithmetic:
		// the true negative offset is discarded
		tracer().Infof("normalizing bearingY %d for %q", bearingY, c)
		bearingY = 0
	}
	if bearingY > 255 {
		return nil, metricErrorf(c, "bearingY %d out of range 0..255", bearingY)
	}

	buf := make([]byte, len(r.Buffer))
	copy(buf, r.Buffer)
	// discard non-space pixels on the left side
	if removeLeft > 0 && width > 0 {
		if bearingX != 0 {
			return nil, metricErrorf(c, "cannot cut %d columns with bearingX %d",
				removeLeft, bearingX)
		}
		if width <= removeLeft {
			return nil, metricErrorf(c, "cannot cut %d columns from width %d",
				removeLeft, width)
		}
		buf = dropLeftColumns(buf, width, removeLeft)
		width -= removeLeft
		if advance <= removeLeft {
			return nil, metricErrorf(c, "cannot cut %d columns from advance %d",
				removeLeft, advance)
		}
		advance -= removeLeft
		tracer().Infof("glyph %q: removed %d pixel columns from the left", c, removeLeft)
	}
	if width > 255 || rows > 255 {
		return nil, metricErrorf(c, "bitmap %dx%d does not fit the table header", width, rows)
	}

	return &Glyph{
		Char:          c,
		Width:         width,
		Rows:          rows,
		Advance:       advance,
		BearingX:      bearingX,
		BearingY:      bearingY,
		Buf:           buf,
		NumGrays:      r.NumGrays,
		InverseColors: inverseColors,
	}, nil
}

func dropLeftColumns(buf []byte, width, drop int) []byte {
	res := make([]byte, 0, len(buf)-(len(buf)/width)*drop)
	for i, px := range buf {
		if i%width >= drop {
			res = append(res, px)
		}
	}
	return res
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
