package pix

import (
	"fmt"

	"github.com/fontbake/fontbake/core"
)

// PackError signals a request for an unsupported bit depth.
type PackError struct {
	BPP int
}

func (e *PackError) Error() string {
	return fmt.Sprintf("unsupported bit depth: %d bpp", e.BPP)
}

// ErrorCode returns core.EUNSUPPORTED.
func (e *PackError) ErrorCode() int { return core.EUNSUPPORTED }

// UserMessage tells the user which bit depths are valid.
func (e *PackError) UserMessage() string {
	return fmt.Sprintf("bit depth must be one of 1, 2, 4 or 8, is %d", e.BPP)
}

var _ core.AppError = &PackError{}

// Pack packs an 8-bit grayscale pixel buffer of width*height pixels into a
// bpp-bits-per-pixel representation. The most significant bits of each pixel
// value are the sampled intensity bits; packing is MSB-first within a byte.
//
// Depths 1 and 2 flatten the buffer in linear scan order, padding with
// zero-valued pixels up to a multiple of 8 resp. 4 pixels, so that consumers
// may address pixel runs independent of glyph width. Depth 4 packs per row:
// consecutive pixel pairs become one byte with the first pixel in the low
// nibble, and an odd row tail is emitted alone with only its top nibble.
// Depth 8 is the identity.
//
// Output lengths are ceil(w·h/8), ceil(w·h/4), h·ceil(w/2) and w·h.
func Pack(buf []byte, bpp, width, height int) ([]byte, error) {
	switch bpp {
	case 1:
		return pack1(buf), nil
	case 2:
		return pack2(buf), nil
	case 4:
		return pack4(buf, width, height), nil
	case 8:
		res := make([]byte, len(buf))
		copy(res, buf)
		return res, nil
	}
	tracer().Errorf("cannot pack pixels with %d bpp", bpp)
	return nil, &PackError{BPP: bpp}
}

func pack1(buf []byte) []byte {
	res := make([]byte, 0, (len(buf)+7)/8)
	for i := 0; i < len(buf); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			if i+j >= len(buf) { // zero-pixel padding
				break
			}
			b |= (buf[i+j] & 0x80) >> uint(j)
		}
		res = append(res, b)
	}
	return res
}

func pack2(buf []byte) []byte {
	res := make([]byte, 0, (len(buf)+3)/4)
	for i := 0; i < len(buf); i += 4 {
		var b byte
		for j := 0; j < 4; j++ {
			if i+j >= len(buf) { // zero-pixel padding
				break
			}
			b |= (buf[i+j] & 0xC0) >> uint(2*j)
		}
		res = append(res, b)
	}
	return res
}

// pack4 is row-scoped, not linear: rows never share a byte, so the target
// renderer can blit per scanline.
func pack4(buf []byte, width, height int) []byte {
	res := make([]byte, 0, height*((width+1)/2))
	for y := 0; y < height; y++ {
		row := buf[y*width : (y+1)*width]
		for x := 0; x+1 < width; x += 2 {
			res = append(res, (row[x+1]&0xF0)|(row[x]>>4))
		}
		if width&1 != 0 {
			res = append(res, row[width-1]>>4)
		}
	}
	return res
}
