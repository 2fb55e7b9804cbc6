// Package mono is a tiled, bit-packed monochrome bitmap engine. It
// converts greyscale or RGB sources into a 1 bit per pixel
// representation held as a mosaic of fixed-capacity tiles, with
// pixel and word level random access, translation and rotation, and
// error diffusion dithering in place of plain thresholding.
//
// A Bitmap is a variable mosaic of sized Tiles. Each Tile holds an
// array of 32 bit words, a bounding rectangle and a word width,
// arranged to come in just under 4096 bytes on the wire. The tiling
// strategy is deliberately simple: a single vertical strip of
// full-width tiles, all the same size except the last, which may have
// unused words at the end of its array. More space efficient
// strategies are possible, at a processing and complexity overhead
package mono

import (
	"fmt"
	"image"
	"image/color"
)

// Bitmap owns an ordered sequence of tiles forming a single bounding
// rectangle. Tiles are stacked top to bottom as non-overlapping
// full-width strips whose union is exactly the bound; the bound's top
// left is always the origin
type Bitmap struct {
	bound    Rectangle
	tileSize Point
	mosaic   []Tile
}

// tileSpec computes the tile dimensions and word width for a bitmap
// whose inclusive bottom-right corner is size. Widths beyond the tile
// capacity are clamped, not rejected: the bitmap is truncated in width
// with a diagnostic, and processing continues at reduced fidelity.
// Narrower bitmaps get taller tiles, keeping tile capacity constant.
// Constructors and direct tile allocators must derive identical specs,
// since the tile boundaries are load-bearing for addressing
func tileSpec(size Point) (tileSize Point, tileWordWidth int) {
	widthBits := size.X + 1
	tileWidthBits := widthBits
	if widthBits > BitsPerTile {
		log.Warn("bitmap max width exceeded, clamping",
			"width", widthBits, "max", BitsPerTile)
		tileWidthBits = BitsPerTile
		tileWordWidth = WordsPerTile
	} else {
		tileWordWidth = (widthBits + BitsPerWord - 1) / BitsPerWord
	}
	tileHeightBits := WordsPerTile / tileWordWidth
	return Point{X: tileWidthBits, Y: tileHeightBits}, tileWordWidth
}

// New returns an empty bitmap whose inclusive bottom-right corner is
// size, as a vertical strip of empty tiles. The final tile's bottom
// edge is clipped to the bitmap
func New(size Point) *Bitmap {
	bound := NewRectangle(Point{}, size)
	tileSize, tileWordWidth := tileSpec(size)
	tileHeight := tileSize.Y
	bmHeight := size.Y + 1
	tileCount := bmHeight / tileHeight
	if bmHeight%tileHeight != 0 {
		tileCount += 1
	}
	mosaic := make([]Tile, 0, tileCount)
	for t := 0; t < tileCount; t += 1 {
		tl := Point{X: 0, Y: t * tileHeight}
		br := Point{X: tileSize.X - 1, Y: (t+1)*tileHeight - 1}
		if br.Y > size.Y {
			br.Y = size.Y
		}
		mosaic = append(mosaic, NewTile(NewRectangle(tl, br), tileWordWidth))
	}
	return &Bitmap{bound: bound, tileSize: tileSize, mosaic: mosaic}
}

// NewResize resamples image to the target width, dithers it with the
// Burkes kernel and packs the result into a fresh mosaic
func NewResize(image *Img, width int) (*Bitmap, error) {
	return NewResizeDithered(image, width, Burkes)
}

// NewResizeDithered is NewResize with an explicit diffusion kernel
func NewResizeDithered(image *Img, width int, kernel Kernel) (*Bitmap, error) {
	if image.Len() == 0 {
		return nil, fmt.Errorf("bitmap: empty source image")
	}
	if width > image.Width() {
		// the resampler only shrinks; a wider target keeps the source
		// width rather than inventing pixels
		width = image.Width()
	}
	resized := image
	if width < image.Width() {
		pixels, err := collect(newShrink(image, width))
		if err != nil {
			return nil, err
		}
		if len(pixels)%width != 0 {
			return nil, fmt.Errorf("bitmap: resampled %d pixels do not fill width %d",
				len(pixels), width)
		}
		resized = &Img{pixels: pixels, width: width}
	}

	words := NewDitherer(kernel).Dither(resized)

	bmBR := Point{X: resized.Width() - 1, Y: resized.Height() - 1}
	bound := NewRectangle(Point{}, bmBR)
	tileSize, tileWordWidth := tileSpec(bmBR)
	tileHeight := tileSize.Y
	tileCount := resized.Height() / tileHeight
	if resized.Height()%tileHeight != 0 {
		tileCount += 1
	}

	// words consumed per row is derived from the image width, not
	// re-measured from the stream; a length mismatch is a defect
	wordsPerRow := (resized.Width() + BitsPerWord - 1) / BitsPerWord
	wdIndex := 0
	mosaic := make([]Tile, 0, tileCount)
	for t := 0; t < tileCount; t += 1 {
		top := t * tileHeight
		bottom := (t+1)*tileHeight - 1
		if bottom > bmBR.Y {
			bottom = bmBR.Y
		}
		tBound := NewRectangle(Point{X: 0, Y: top}, Point{X: tileSize.X - 1, Y: bottom})
		tile := NewTile(tBound, tileWordWidth)
		for y := top; y <= bottom; y += 1 {
			for k := 0; k < wordsPerRow; k += 1 {
				if wdIndex >= len(words) {
					return nil, fmt.Errorf("bitmap: dithered stream ended at word %d of %d",
						wdIndex, wordsPerRow*resized.Height())
				}
				// rows wider than the clamped tile spill past its
				// word width; the excess is dropped, not wrapped
				if k < tileWordWidth {
					tile.SetWord(Point{X: k * BitsPerWord, Y: y}, words[wdIndex])
				}
				wdIndex += 1
			}
		}
		mosaic = append(mosaic, tile)
	}
	if wdIndex != len(words) {
		return nil, fmt.Errorf("bitmap: %d dithered words left over", len(words)-wdIndex)
	}
	return &Bitmap{bound: bound, tileSize: tileSize, mosaic: mosaic}, nil
}

// FromImg dithers image into a bitmap at its own width, with no
// resampling
func FromImg(image *Img) (*Bitmap, error) {
	return NewResize(image, image.Width())
}

// NewFromTiles assembles a bitmap from pre-built tiles, such as a
// small fixed-size collection received over a transport. Zero-value
// tiles are skipped. The bound is the hull of the remaining tiles'
// rectangles; a gap or overlap between the tiles and the hull is
// logged as a consistency warning, not a failure. Use Validate to
// check the result structurally
func NewFromTiles(tiles ...Tile) *Bitmap {
	mosaic := make([]Tile, 0, len(tiles))
	var tileSize Point
	for _, tile := range tiles {
		if tile.wordWidth == 0 {
			continue
		}
		mosaic = append(mosaic, tile)
		if tileSize.X == 0 {
			tileSize = tile.Size()
		}
	}
	bound, tileArea := hullOf(mosaic)
	switch {
	case tileArea < bound.Area():
		log.Warn("bitmap tile gaps", "hull", bound,
			"tile_area", tileArea, "hull_area", bound.Area())
	case tileArea > bound.Area():
		log.Warn("bitmap tile overlap", "hull", bound,
			"tile_area", tileArea, "hull_area", bound.Area())
	}
	return &Bitmap{bound: bound, tileSize: tileSize, mosaic: mosaic}
}

// hullOf returns the bounding rectangle of the tiles and the sum of
// their individual areas
func hullOf(mosaic []Tile) (Rectangle, int) {
	if len(mosaic) == 0 {
		return Rectangle{}, 0
	}
	hull := mosaic[0].Bound()
	tileArea := 0
	for i := range mosaic {
		tBound := mosaic[i].Bound()
		if tBound.TL.X < hull.TL.X {
			hull.TL.X = tBound.TL.X
		}
		if tBound.TL.Y < hull.TL.Y {
			hull.TL.Y = tBound.TL.Y
		}
		if tBound.BR.X > hull.BR.X {
			hull.BR.X = tBound.BR.X
		}
		if tBound.BR.Y > hull.BR.Y {
			hull.BR.Y = tBound.BR.Y
		}
		tileArea += mosaic[i].Area()
	}
	return hull, tileArea
}

// Validate checks the mosaic invariants: a non-empty tile sequence
// whose hull equals the bound and whose tile areas sum exactly to the
// hull area (no gaps, no overlap)
func (b *Bitmap) Validate() error {
	if len(b.mosaic) == 0 {
		return fmt.Errorf("bitmap: empty mosaic")
	}
	hull, tileArea := hullOf(b.mosaic)
	if hull != b.bound {
		return fmt.Errorf("bitmap: tile hull %s does not match bound %s", hull, b.bound)
	}
	switch {
	case tileArea < hull.Area():
		return fmt.Errorf("bitmap: tile gaps: tiles cover %d of %d pixels",
			tileArea, hull.Area())
	case tileArea > hull.Area():
		return fmt.Errorf("bitmap: tile overlap: tiles cover %d of %d pixels",
			tileArea, hull.Area())
	}
	return nil
}

// Bound returns the bitmap's bounding rectangle
func (b *Bitmap) Bound() Rectangle {
	return b.bound
}

// Size returns the bitmap's width and height in pixels
func (b *Bitmap) Size() Point {
	return Point{X: b.bound.Width(), Y: b.bound.Height()}
}

// Area returns the number of pixels the bitmap covers
func (b *Bitmap) Area() int {
	return b.bound.Area()
}

// Tiles returns a copy of the mosaic. Mutating the returned tiles does
// not affect the bitmap
func (b *Bitmap) Tiles() []Tile {
	tiles := make([]Tile, len(b.mosaic))
	copy(tiles, b.mosaic)
	return tiles
}

// tileIndex resolves p to its tile's position in the mosaic. The
// linear arithmetic holds only because tiles are fixed-size,
// full-width, vertically stacked strips. Out-of-bounds points are not
// rejected: they log a warning and resolve to tile 0, so callers must
// not rely on this for bounds enforcement
func (b *Bitmap) tileIndex(p Point) int {
	if !b.bound.IntersectsPoint(p) {
		log.Warn("point out of bounds", "point", p, "bound", b.bound)
		return 0
	}
	tileBits := b.tileSize.X * b.tileSize.Y
	if tileBits == 0 {
		return 0
	}
	index := (p.X + p.Y*b.tileSize.X) / tileBits
	if index >= len(b.mosaic) {
		log.Warn("tile index out of range", "point", p, "index", index)
		return len(b.mosaic) - 1
	}
	return index
}

func (b *Bitmap) tile(p Point) *Tile {
	if len(b.mosaic) == 0 {
		return nil
	}
	return &b.mosaic[b.tileIndex(p)]
}

// GetWord returns the word containing p
func (b *Bitmap) GetWord(p Point) Word {
	tile := b.tile(p)
	if tile == nil {
		return 0
	}
	return tile.GetWord(p)
}

// SetWord stores word at the word boundary at or left of p
func (b *Bitmap) SetWord(p Point, word Word) {
	if tile := b.tile(p); tile != nil {
		tile.SetWord(p, word)
	}
}

// GetLine returns the packed words of the row containing p, from p's
// word to the end of the row within p's tile
func (b *Bitmap) GetLine(p Point) []Word {
	tile := b.tile(p)
	if tile == nil {
		return nil
	}
	return tile.GetLine(p)
}

// GetPixel returns the color of the pixel at p
func (b *Bitmap) GetPixel(p Point) PixelColor {
	tile := b.tile(p)
	if tile == nil {
		return Light
	}
	return tile.GetPixel(p)
}

// SetPixel sets the pixel at p to color
func (b *Bitmap) SetPixel(p Point, color PixelColor) {
	if tile := b.tile(p); tile != nil {
		tile.SetPixel(p, color)
	}
}

// Translate offsets every tile rectangle by offset, positioning the
// mosaic for placement by a compositor. The bound keeps its origin:
// intra-bitmap addressing is defined on the untranslated coordinates
func (b *Bitmap) Translate(offset Point) {
	for i := range b.mosaic {
		b.mosaic[i].Translate(offset)
	}
}

// Fill sets every pixel in the bitmap to color
func (b *Bitmap) Fill(color PixelColor) {
	var word Word
	if color == Dark {
		word = ^Word(0)
	}
	for i := range b.mosaic {
		tile := &b.mosaic[i]
		used := tile.bound.Height() * tile.wordWidth
		for j := 0; j < used; j += 1 {
			tile.words[j] = word
		}
	}
}

// ColorModel implements image.Image
func (b *Bitmap) ColorModel() color.Model {
	return PixelColorModel
}

// Bounds implements image.Image
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.bound.Width(), b.bound.Height())
}

// At implements image.Image
func (b *Bitmap) At(x, y int) color.Color {
	return b.GetPixel(Point{X: x, Y: y})
}
