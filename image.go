package mono

import (
	"fmt"
	"image"
)

// PixelType describes the channel layout of a raw source buffer
type PixelType int

const (
	// PixelGrey is one byte per pixel, a single luminance sample
	PixelGrey PixelType = iota
	// PixelRGB is three bytes per pixel: red, green, blue
	PixelRGB
	// PixelRGBA is four bytes per pixel. Recognized but not yet
	// convertible; the greyscale transform treats it as unsupported
	PixelRGBA
)

// Integer luminance coefficients. The sum is the divisor, so a white
// source maps to 255 exactly
const (
	coeffR   = 2126
	coeffG   = 7152
	coeffB   = 722
	coeffSum = coeffR + coeffG + coeffB
)

// sampler is a finite, forward-only pixel transform: Next produces the
// next luminance sample until the sequence ends, and Err reports
// whether the sequence ended because the input was malformed. A
// sampler is not restartable
type sampler interface {
	Next() (uint8, bool)
	Err() error
}

// collect drains a sampler into a flat sample buffer
func collect(s sampler) ([]uint8, error) {
	var pixels []uint8
	for {
		px, ok := s.Next()
		if !ok {
			return pixels, s.Err()
		}
		pixels = append(pixels, px)
	}
}

// greyscale converts a raw multi-channel buffer to single-channel
// luminance, one sample per call
type greyscale struct {
	buf    []byte
	pxType PixelType
	pos    int
	warned bool
}

func newGreyscale(buf []byte, pxType PixelType) *greyscale {
	return &greyscale{buf: buf, pxType: pxType}
}

func (g *greyscale) Next() (uint8, bool) {
	switch g.pxType {
	case PixelGrey:
		if g.pos >= len(g.buf) {
			return 0, false
		}
		px := g.buf[g.pos]
		g.pos += 1
		return px, true
	case PixelRGB:
		if g.pos+3 > len(g.buf) {
			return 0, false
		}
		r := uint32(g.buf[g.pos])
		gr := uint32(g.buf[g.pos+1])
		b := uint32(g.buf[g.pos+2])
		g.pos += 3
		grey := (coeffR*r + coeffG*gr + coeffB*b) / coeffSum
		return uint8(grey), true
	default:
		// unsupported layouts are a no-op, not a crash: the transform
		// produces no samples and the defect surfaces downstream
		if !g.warned {
			log.Warn("unsupported pixel type", "pixel_type", int(g.pxType))
			g.warned = true
		}
		return 0, false
	}
}

func (g *greyscale) Err() error {
	return nil
}

// Img is a flat greyscale pixel store, one byte per sample in raster
// order, addressed by column and row
type Img struct {
	pixels []uint8
	width  int
}

// NewImg converts a raw source buffer to a greyscale image of the
// given width. The width must evenly divide the converted sample
// count; a remainder means the buffer and width disagree about the
// image shape
func NewImg(buf []byte, width int, pxType PixelType) (*Img, error) {
	if width <= 0 {
		return nil, fmt.Errorf("image width %d must be positive", width)
	}
	pixels, err := collect(newGreyscale(buf, pxType))
	if err != nil {
		return nil, err
	}
	if len(pixels)%width != 0 {
		return nil, fmt.Errorf("width %d does not evenly divide %d pixels",
			width, len(pixels))
	}
	return &Img{pixels: pixels, width: width}, nil
}

// FromImage converts any stdlib image into a greyscale Img via the
// same integer luminance transform as raw RGB buffers
func FromImage(img image.Image) (*Img, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	buf := make([]byte, 0, 3*w*h)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 1 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 1 {
			r, g, b, _ := img.At(x, y).RGBA()
			buf = append(buf, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return NewImg(buf, w, PixelRGB)
}

// Width returns the image width in pixels
func (m *Img) Width() int {
	return m.width
}

// Height returns the image height in rows, derived from the sample
// count
func (m *Img) Height() int {
	if m.width == 0 {
		return 0
	}
	return len(m.pixels) / m.width
}

// Len returns the total sample count
func (m *Img) Len() int {
	return len(m.pixels)
}

// Get returns the sample at column x, row y
func (m *Img) Get(x, y int) (uint8, bool) {
	if x < 0 || x >= m.width || y < 0 {
		return 0, false
	}
	i := y*m.width + x
	if i >= len(m.pixels) {
		return 0, false
	}
	return m.pixels[i], true
}
