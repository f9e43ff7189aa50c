package font

import (
	"image"
	"image/draw"
	"sync"

	"github.com/fontbake/fontbake/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TypeCase is a font scaled to a fixed pixel size, ready to rasterize
// glyphs. A typecase guards the underlying face with a mutex, as faces
// created by package opentype carry shared rasterizing buffers.
type TypeCase struct {
	mu                 sync.Mutex
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               int        // pixel size (ppem)
}

// PrepareCase scales a font to a fixed pixel size. Faces are prepared with
// full hinting, so that advance widths quantize to whole pixels.
func (sf *ScalableFont) PrepareCase(pixelSize int) (*TypeCase, error) {
	if pixelSize < 4 || pixelSize > 255 {
		return nil, core.Error(core.EINVALID,
			"pixel size must be 4..255, is %d", pixelSize)
	}
	options := &opentype.FaceOptions{
		Size:    float64(pixelSize),
		DPI:     72, // 1pt = 1px, i.e. Size is the pixel size
		Hinting: xfont.HintingFull,
	}
	face, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, err
	}
	typecase := &TypeCase{
		scalableFontParent: sf,
		face:               face,
		size:               pixelSize,
	}
	return typecase, nil
}

// ScalableFontParent returns the unscaled font this typecase was derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PixelSize returns the pixel size of this typecase.
func (tc *TypeCase) PixelSize() int {
	return tc.size
}

// Raster is the result of rasterizing a single glyph: an 8-bit grayscale
// bitmap without row padding, plus the glyph's horizontal metrics in 26.6
// fixed-point pixel units (1 pixel = 64 units, as with FreeType).
type Raster struct {
	Width, Rows int    // bitmap dimensions in pixels
	Pitch       int    // bytes per bitmap row; always equals Width here
	Buffer      []byte // row-major grayscale pixels, len = Pitch*Rows
	Advance     fixed.Int26_6
	BearingX    fixed.Int26_6 // pen origin to left bitmap edge
	BearingY    fixed.Int26_6 // baseline to top bitmap edge, upwards
	NumGrays    int
}

// RasterizeGlyph renders a single character and returns its bitmap and
// metrics. Characters without a glyph in the face fail with an EMISSING
// error.
func (tc *TypeCase) RasterizeGlyph(c rune) (Raster, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	dot := fixed.Point26_6{} // rasterize relative to a (0,0) pen position
	dr, mask, maskp, advance, ok := tc.face.Glyph(dot, c)
	if !ok {
		return Raster{}, core.Error(core.EMISSING,
			"font %s has no glyph for %q", tc.scalableFontParent.Fontname, c)
	}
	width, rows := dr.Dx(), dr.Dy()
	raster := Raster{
		Width:    width,
		Rows:     rows,
		Pitch:    width,
		Advance:  advance,
		BearingX: fixed.I(dr.Min.X),
		BearingY: fixed.I(-dr.Min.Y),
		NumGrays: 256,
	}
	if width > 0 && rows > 0 {
		// re-blit into a tight alpha image: mask strides may exceed width
		alpha := image.NewAlpha(image.Rect(0, 0, width, rows))
		draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
		raster.Buffer = alpha.Pix
	}
	tracer().Debugf("rasterized %q: %dx%d px, advance %v", c, width, rows, advance)
	return raster, nil
}
