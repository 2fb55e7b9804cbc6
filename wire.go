package mono

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire format of a bitmap: the bounding rectangle followed by the
// ordered tile list. Each tile is its rectangle, its word width and
// its word buffer padded to capacity, so every serialized tile has the
// same fixed size. All integers are little endian; coordinates are
// int32, the word width is uint16. Transport framing belongs to the
// carrier, not to this layout

const wireTileSize = 4*4 + 2 + WordsPerTile*4

func writeRect(buf *bytes.Buffer, r Rectangle) {
	for _, v := range []int{r.TL.X, r.TL.Y, r.BR.X, r.BR.Y} {
		binary.Write(buf, binary.LittleEndian, int32(v))
	}
}

func readRect(r *bytes.Reader) (Rectangle, error) {
	var c [4]int32
	for i := range c {
		if err := binary.Read(r, binary.LittleEndian, &c[i]); err != nil {
			return Rectangle{}, err
		}
	}
	return NewRectangle(
		Point{X: int(c[0]), Y: int(c[1])},
		Point{X: int(c[2]), Y: int(c[3])},
	), nil
}

// MarshalBinary implements encoding.BinaryMarshaler
func (b *Bitmap) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4*4+4+len(b.mosaic)*wireTileSize))
	writeRect(buf, b.bound)
	binary.Write(buf, binary.LittleEndian, uint32(len(b.mosaic)))
	for i := range b.mosaic {
		tile := &b.mosaic[i]
		writeRect(buf, tile.bound)
		binary.Write(buf, binary.LittleEndian, uint16(tile.wordWidth))
		binary.Write(buf, binary.LittleEndian, tile.words[:])
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Malformed
// structure (short data, impossible word widths) is an error; a gap or
// overlap between the decoded tiles and the stored bound is the usual
// non-fatal consistency warning
func (b *Bitmap) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	bound, err := readRect(r)
	if err != nil {
		return fmt.Errorf("bitmap: decoding bound: %w", err)
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("bitmap: decoding tile count: %w", err)
	}
	if int64(count)*wireTileSize != int64(r.Len()) {
		return fmt.Errorf("bitmap: %d tiles do not fit %d remaining bytes",
			count, r.Len())
	}
	mosaic := make([]Tile, 0, count)
	var tileSize Point
	for i := 0; i < int(count); i += 1 {
		tBound, err := readRect(r)
		if err != nil {
			return fmt.Errorf("bitmap: decoding tile %d: %w", i, err)
		}
		var wordWidth uint16
		if err := binary.Read(r, binary.LittleEndian, &wordWidth); err != nil {
			return fmt.Errorf("bitmap: decoding tile %d: %w", i, err)
		}
		if wordWidth == 0 || int(wordWidth) > WordsPerTile {
			return fmt.Errorf("bitmap: tile %d word width %d out of range", i, wordWidth)
		}
		if int(wordWidth)*BitsPerWord < tBound.Width() {
			return fmt.Errorf("bitmap: tile %d rows of %d pixels exceed %d words",
				i, tBound.Width(), wordWidth)
		}
		if int(wordWidth)*tBound.Height() > WordsPerTile {
			return fmt.Errorf("bitmap: tile %d of %dx%d rows exceeds capacity",
				i, wordWidth, tBound.Height())
		}
		tile := Tile{bound: tBound, wordWidth: int(wordWidth)}
		if err := binary.Read(r, binary.LittleEndian, tile.words[:]); err != nil {
			return fmt.Errorf("bitmap: decoding tile %d words: %w", i, err)
		}
		mosaic = append(mosaic, tile)
		if tileSize.X == 0 {
			tileSize = tile.Size()
		}
	}
	hull, tileArea := hullOf(mosaic)
	if len(mosaic) > 0 && (hull != bound || tileArea != hull.Area()) {
		log.Warn("decoded bitmap is inconsistent", "bound", bound,
			"hull", hull, "tile_area", tileArea, "hull_area", hull.Area())
	}
	b.bound = bound
	b.tileSize = tileSize
	b.mosaic = mosaic
	return nil
}
