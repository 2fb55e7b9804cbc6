package mono

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreyscaleConversion(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		width  int
		pxType PixelType
		pixels []uint8
	}{
		{
			name:   "grey passthrough",
			buf:    []byte{0, 5, 127, 255},
			width:  2,
			pxType: PixelGrey,
			pixels: []uint8{0, 5, 127, 255},
		},
		{
			name:   "rgb white",
			buf:    []byte{255, 255, 255},
			width:  1,
			pxType: PixelRGB,
			pixels: []uint8{255},
		},
		{
			name:   "rgb black",
			buf:    []byte{0, 0, 0},
			width:  1,
			pxType: PixelRGB,
			pixels: []uint8{0},
		},
		{
			name:   "rgb primaries",
			buf:    []byte{255, 0, 0, 0, 255, 0, 0, 0, 255},
			width:  3,
			pxType: PixelRGB,
			// truncating division of 2126/7152/722 weighted sums
			pixels: []uint8{54, 182, 18},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			img, err := NewImg(test.buf, test.width, test.pxType)
			require.NoError(t, err)
			assert.Equal(t, test.pixels, img.pixels)
		})
	}
}

func TestGreyscaleUnsupportedPixelType(t *testing.T) {
	// unsupported layouts produce no samples rather than failing
	img, err := NewImg([]byte{1, 2, 3, 4}, 1, PixelRGBA)
	require.NoError(t, err)
	assert.Equal(t, 0, img.Len())
	assert.Equal(t, 0, img.Height())
}

func TestNewImgRejectsRaggedShape(t *testing.T) {
	_, err := NewImg([]byte{1, 2, 3, 4, 5}, 2, PixelGrey)
	assert.ErrorContains(t, err, "evenly divide")

	_, err = NewImg([]byte{1, 2}, 0, PixelGrey)
	assert.ErrorContains(t, err, "positive")
}

func TestImgGet(t *testing.T) {
	img, err := NewImg([]byte{1, 2, 3, 4, 5, 6}, 3, PixelGrey)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width())
	assert.Equal(t, 2, img.Height())

	px, ok := img.Get(2, 1)
	assert.True(t, ok)
	assert.Equal(t, uint8(6), px)

	_, ok = img.Get(3, 0)
	assert.False(t, ok)
	_, ok = img.Get(0, 2)
	assert.False(t, ok)
}

func TestFromImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y += 1 {
		for x := 0; x < 4; x += 1 {
			src.Pix[y*src.Stride+x] = uint8(40*x + 100*y)
		}
	}
	img, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 2, img.Height())
	// equal RGB channels survive the luminance transform unchanged
	assert.Equal(t, []uint8{0, 40, 80, 120, 100, 140, 180, 220}, img.pixels)
}
