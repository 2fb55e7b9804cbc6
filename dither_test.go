package mono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImg builds a deterministic greyscale image from a generator
func testImg(t *testing.T, width, height int, gen func(x, y int) uint8) *Img {
	t.Helper()
	buf := make([]byte, 0, width*height)
	for y := 0; y < height; y += 1 {
		for x := 0; x < width; x += 1 {
			buf = append(buf, gen(x, y))
		}
	}
	img, err := NewImg(buf, width, PixelGrey)
	require.NoError(t, err)
	return img
}

func uniformImg(t *testing.T, width, height int, grey uint8) *Img {
	t.Helper()
	return testImg(t, width, height, func(x, y int) uint8 { return grey })
}

func TestDitherDeterminism(t *testing.T) {
	gen := func(x, y int) uint8 { return uint8((x*31 + y*87) % 256) }
	img := testImg(t, 75, 40, gen)
	first := NewDitherer(Burkes).Dither(img)
	second := NewDitherer(Burkes).Dither(img)
	assert.Equal(t, first, second, "same image, same kernel, same bits")
}

func TestDitherThresholdBoundary(t *testing.T) {
	// with zero carried error, 127 rounds up to Light and 126 down to
	// Dark. Single pixel images keep the carried error at zero
	light := NewDitherer(Burkes).Dither(uniformImg(t, 1, 1, 127))
	assert.Equal(t, []Word{0}, light, "127 quantizes Light")

	dark := NewDitherer(Burkes).Dither(uniformImg(t, 1, 1, 126))
	assert.Equal(t, []Word{1}, dark, "126 quantizes Dark")
}

func TestDitherUniformExtremes(t *testing.T) {
	// white and black carry no residual, so every pixel lands on the
	// same side of the threshold
	white := NewDitherer(Burkes).Dither(uniformImg(t, 64, 8, 255))
	require.Len(t, white, 2*8)
	for i, word := range white {
		assert.Equal(t, Word(0), word, "word %d of white image", i)
	}

	black := NewDitherer(Burkes).Dither(uniformImg(t, 64, 8, 0))
	require.Len(t, black, 2*8)
	for i, word := range black {
		assert.Equal(t, ^Word(0), word, "word %d of black image", i)
	}
}

func TestDitherWordsPerRow(t *testing.T) {
	tests := []struct {
		width       int
		wordsPerRow int
	}{
		{width: 1, wordsPerRow: 1},
		{width: 31, wordsPerRow: 1},
		{width: 32, wordsPerRow: 1},
		{width: 33, wordsPerRow: 2},
		{width: 64, wordsPerRow: 2},
		{width: 100, wordsPerRow: 4},
	}
	for _, test := range tests {
		img := uniformImg(t, test.width, 3, 90)
		words := NewDitherer(Burkes).Dither(img)
		assert.Len(t, words, 3*test.wordsPerRow, "width %d", test.width)
	}
}

func TestDitherCarriesError(t *testing.T) {
	// 200 rounds Light with residual -55; its right neighbor receives
	// 8*-55/32 = -13 of it and 100-13 stays below the threshold. The
	// trailing 255 pixels absorb the rest of the residual and stay
	// Light
	img := testImg(t, 5, 1, func(x, y int) uint8 {
		switch x {
		case 0:
			return 200
		case 1:
			return 100
		default:
			return 255
		}
	})
	words := NewDitherer(Burkes).Dither(img)
	require.Len(t, words, 1)
	assert.Equal(t, []Word{0b10}, words)
}

func TestKernelsDiffer(t *testing.T) {
	gen := func(x, y int) uint8 { return uint8((x*13 + y*51) % 256) }
	img := testImg(t, 96, 32, gen)
	burkes := NewDitherer(Burkes).Dither(img)
	floyd := NewDitherer(FloydSteinberg).Dither(img)
	assert.NotEqual(t, burkes, floyd,
		"different kernels must produce different bit patterns")
}

func TestDitherNarrowImage(t *testing.T) {
	// narrower than the kernel's horizontal reach; taps that cannot
	// land are dropped, not wrapped behind the origin
	assert.NotPanics(t, func() {
		NewDitherer(Burkes).Dither(uniformImg(t, 1, 8, 130))
		NewDitherer(Burkes).Dither(uniformImg(t, 2, 8, 130))
	})
}
