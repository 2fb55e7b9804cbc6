package mono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shrinkToPixels(t *testing.T, buf []byte, inWidth, outWidth int) []uint8 {
	t.Helper()
	img, err := NewImg(buf, inWidth, PixelGrey)
	require.NoError(t, err)
	pixels, err := collect(newShrink(img, outWidth))
	require.NoError(t, err)
	return pixels
}

func TestShrinkIdentity(t *testing.T) {
	buf := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	// equal width: pass-through, pixel for pixel
	assert.Equal(t, []uint8(buf), shrinkToPixels(t, buf, 4, 4))
	// wider target: still a pass-through, never an upscale
	assert.Equal(t, []uint8(buf), shrinkToPixels(t, buf, 4, 8))
}

func TestShrinkHalvesRow(t *testing.T) {
	got := shrinkToPixels(t, []byte{10, 20, 30, 40}, 4, 2)
	assert.Equal(t, []uint8{15, 35}, got, "pairwise truncating average")
}

func TestShrinkTruncates(t *testing.T) {
	got := shrinkToPixels(t, []byte{0, 3}, 2, 1)
	assert.Equal(t, []uint8{1}, got, "averages round down")
}

func TestShrinkTwoStageOrder(t *testing.T) {
	// each row averages horizontally first, then the row averages
	// average vertically: (15+55)/2 and (35+75)/2
	buf := []byte{
		10, 20, 30, 40,
		50, 60, 70, 80,
	}
	got := shrinkToPixels(t, buf, 4, 2)
	assert.Equal(t, []uint8{35, 55}, got)
}

func TestShrinkNonIntegerRatio(t *testing.T) {
	// scale 2.5: strips of 2 and 3 columns
	got := shrinkToPixels(t, []byte{10, 20, 30, 40, 50}, 5, 2)
	assert.Equal(t, []uint8{15, 40}, got)
}

func TestShrinkSquareBlocks(t *testing.T) {
	// scale 2 in both axes: each output pixel averages a 2x2 block
	buf := []byte{
		0, 2, 100, 102,
		4, 6, 104, 106,
		200, 202, 40, 42,
		204, 206, 44, 46,
	}
	got := shrinkToPixels(t, buf, 4, 2)
	assert.Equal(t, []uint8{3, 103, 203, 43}, got)
}

func TestShrinkTallSource(t *testing.T) {
	// 5 input rows at scale 2: the trailing odd row forms its own
	// vertical strip
	buf := []byte{
		10, 20,
		30, 40,
		50, 60,
		70, 80,
		90, 100,
	}
	got := shrinkToPixels(t, buf, 2, 1)
	assert.Equal(t, []uint8{25, 65, 95}, got)
}

func TestShrinkBadOutputWidth(t *testing.T) {
	img, err := NewImg([]byte{1, 2, 3, 4}, 2, PixelGrey)
	require.NoError(t, err)
	_, err = collect(newShrink(img, 0))
	assert.ErrorContains(t, err, "positive")
}
