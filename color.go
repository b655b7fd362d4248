package mandel

import (
	"image"
	"math"
)

// Color is a packed 32-bit RGBA value: red in the highest byte, alpha in the
// lowest.
type Color uint32

// RGBA packs four 8-bit channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(r)<<24 | Color(g)<<16 | Color(b)<<8 | Color(a)
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// Background colors points that never escape.
var Background = RGBA(0, 0, 0, 255)

// gradientExponent spreads the low escape counts across the gradient.
const gradientExponent = 1.7

// ColorFor maps an Iterate result to a pixel color: opaque black for bounded
// points, otherwise a blue-dominant ramp where fast escapes stay dark and
// slow escapes trend toward white-blue.
func ColorFor(iterations int) Color {
	if iterations == DidNotEscape {
		return Background
	}
	v := float64(iterations - 1)
	if v > 255 {
		v = 255
	}
	v = math.Pow(v, gradientExponent)
	if v > 255 {
		v = 255
	}
	g := uint8(v)
	return RGBA(g, g, 255, 255)
}

// Buffer is a flat, row-major pixel buffer; linear index row*columns+column.
type Buffer []Color

// Bytes flattens the buffer into RGBA byte order, four bytes per pixel.
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b)*4)
	for i, c := range b {
		out[i*4+0] = c.R()
		out[i*4+1] = c.G()
		out[i*4+2] = c.B()
		out[i*4+3] = c.A()
	}
	return out
}

// Image copies the buffer into an image.RGBA of the raster's dimensions.
func (b Buffer) Image(r Raster) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Columns, r.Rows))
	copy(img.Pix, b.Bytes())
	return img
}
