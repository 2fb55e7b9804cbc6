package mono

// Rotate90 returns a new bitmap with the content rotated a quarter
// turn clockwise and the width and height swapped. The transform is
// purely geometric: no resampling or quantization occurs.
//
// It operates on 32x32 bit square blocks: a column-major block of
// words is read from the source beginning at the bottom row and
// scanning upward, bit-transposed, and written to the destination as
// rows, top to bottom and left to right. Destination rows beyond the
// rotated bound are skipped, not written, so partial blocks at the
// rotated edge stay inside the new bitmap
func (b *Bitmap) Rotate90() *Bitmap {
	srcBR := b.bound.BR
	r90 := New(Point{X: srcBR.Y, Y: srcBR.X})
	r90BR := r90.bound.BR

	var block [BitsPerWord]Word
	x := 0
	r90Y := 0
	for x <= srcBR.X {
		y := srcBR.Y
		r90X := 0
		for y >= 0 {
			// extract a square block of bits, 32 words of 32 bits,
			// walking up the current column strip
			for i := 0; i < BitsPerWord; i += 1 {
				if y >= 0 {
					block[i] = b.GetWord(Point{X: x, Y: y})
				} else {
					block[i] = 0
				}
				y -= 1
			}
			// transpose the block into destination rows
			for w := 0; w < BitsPerWord; w += 1 {
				if r90Y+w > r90BR.Y {
					continue
				}
				var word Word
				for i := 0; i < BitsPerWord; i += 1 {
					word |= ((block[i] >> uint(w)) & 1) << uint(i)
				}
				r90.SetWord(Point{X: r90X, Y: r90Y + w}, word)
			}
			r90X += BitsPerWord
		}
		x += BitsPerWord
		r90Y += BitsPerWord
	}
	return r90
}
