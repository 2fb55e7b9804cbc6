package mono

// Word is a group of 32 bit-packed pixels. Bit 0 is the leftmost pixel
// of the group; a set bit is a Dark pixel
type Word = uint32

const (
	// BitsPerWord is the number of pixels packed into one Word
	BitsPerWord = 32
	// WordsPerTile is the fixed word capacity of a Tile. A serialized
	// tile (rectangle, word width and the capacity-padded word buffer)
	// comes in under a 4096 byte transport budget
	WordsPerTile = 1000
	// BitsPerTile is the maximum representable tile width in pixels
	BitsPerTile = WordsPerTile * BitsPerWord
)

// Tile is a fixed-capacity bit-packed rectangular sub-image: the
// atomic storage and transport unit of a Bitmap. Each row of the
// tile's rectangle is packed into an integral number of words, so a
// tile of width w uses ceil(w/32) words per row regardless of
// alignment. Addressing within the tile is O(1)
type Tile struct {
	bound     Rectangle
	wordWidth int
	words     [WordsPerTile]Word
}

// NewTile returns an empty tile covering bound, with wordWidth words
// per row. If the rectangle does not fit the word capacity the bottom
// edge is clipped and a diagnostic is logged; the tile is never
// over-allocated
func NewTile(bound Rectangle, wordWidth int) Tile {
	if wordWidth <= 0 {
		wordWidth = 1
	}
	maxRows := WordsPerTile / wordWidth
	if bound.Height() > maxRows {
		log.Warn("tile capacity exceeded, clipping",
			"bound", bound, "word_width", wordWidth)
		bound.BR.Y = bound.TL.Y + maxRows - 1
	}
	return Tile{bound: bound, wordWidth: wordWidth}
}

// Bound returns the tile's rectangle
func (t *Tile) Bound() Rectangle {
	return t.bound
}

// Size returns the width and height of the tile in pixels
func (t *Tile) Size() Point {
	return Point{X: t.bound.Width(), Y: t.bound.Height()}
}

// Area returns the number of pixels the tile covers
func (t *Tile) Area() int {
	return t.bound.Area()
}

// Translate offsets the tile's rectangle. The word buffer is
// untouched; translation repositions the tile for placement
func (t *Tile) Translate(offset Point) {
	t.bound = t.bound.Translate(offset)
}

// wordIndex returns the buffer index of the word holding p and the bit
// position of p within it. Points outside the tile clamp to the
// nearest edge: a foreign point reads or writes a best-effort cell
// rather than faulting the host
func (t *Tile) wordIndex(p Point) (index int, bit uint) {
	if p.X < t.bound.TL.X {
		p.X = t.bound.TL.X
	} else if p.X > t.bound.BR.X {
		p.X = t.bound.BR.X
	}
	if p.Y < t.bound.TL.Y {
		p.Y = t.bound.TL.Y
	} else if p.Y > t.bound.BR.Y {
		p.Y = t.bound.BR.Y
	}
	x := p.X - t.bound.TL.X
	y := p.Y - t.bound.TL.Y
	index = y*t.wordWidth + x/BitsPerWord
	bit = uint(x % BitsPerWord)
	return index, bit
}

// GetWord returns the word containing p. The word is anchored at the
// word boundary at or left of p
func (t *Tile) GetWord(p Point) Word {
	index, _ := t.wordIndex(p)
	return t.words[index]
}

// SetWord stores word at the word boundary at or left of p
func (t *Tile) SetWord(p Point, word Word) {
	index, _ := t.wordIndex(p)
	t.words[index] = word
}

// GetLine returns the packed words of the row containing p, from the
// word containing p to the end of the row
func (t *Tile) GetLine(p Point) []Word {
	index, _ := t.wordIndex(p)
	end := index - index%t.wordWidth + t.wordWidth
	line := make([]Word, end-index)
	copy(line, t.words[index:end])
	return line
}

// GetPixel returns the color of the pixel at p
func (t *Tile) GetPixel(p Point) PixelColor {
	index, bit := t.wordIndex(p)
	return pixelColorFromBit(t.words[index] >> bit)
}

// SetPixel sets the pixel at p to color
func (t *Tile) SetPixel(p Point, color PixelColor) {
	index, bit := t.wordIndex(p)
	switch color {
	case Dark:
		t.words[index] |= 1 << bit
	default:
		t.words[index] &^= 1 << bit
	}
}
