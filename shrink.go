package mono

import "fmt"

// shrink downscales an Img horizontally and vertically by the ratio
// between the source width and outWidth, using box averaging. The
// source is divided into vertical and horizontal strips corresponding
// to the output columns and rows; each output pixel is the average of
// the source pixels inside one intersection. With a non-integer ratio
// the strips vary in width by one pixel.
//
// Averaging order is part of the contract: each contributing row is
// averaged horizontally first with truncating division, accumulated
// per output column, and the accumulator is divided once by the row
// count when the vertical strip closes. Reordering the divisions
// changes the rounding
type shrink struct {
	src      *Img
	outWidth int
	scale    float32
	// exclusive trailing input column of each output column. The last
	// entry is pinned to the source width so float truncation can
	// never drop the final column
	xCap []int
	inY  int
	outX int
	outY int
	// per-column accumulator of horizontal row averages
	buf  []int
	yDiv int
	// cursor for the scale <= 1 pass-through
	pos  int
	err  error
	done bool
}

func newShrink(src *Img, outWidth int) *shrink {
	s := &shrink{src: src, outWidth: outWidth}
	if outWidth <= 0 {
		s.err = fmt.Errorf("resample: output width %d must be positive", outWidth)
		return s
	}
	inW := src.Width()
	s.scale = float32(inW) / float32(outWidth)
	if s.scale <= 1 {
		return s
	}
	s.buf = make([]int, outWidth)
	s.xCap = make([]int, outWidth)
	for j := 0; j < outWidth; j += 1 {
		edge := int(s.scale * float32(j+1))
		if edge > inW {
			edge = inW
		}
		s.xCap[j] = edge
	}
	s.xCap[outWidth-1] = inW
	return s
}

func (s *shrink) Next() (uint8, bool) {
	if s.err != nil || s.done {
		return 0, false
	}
	// no reduction: the source passes through untouched
	if s.scale <= 1 {
		if s.pos >= s.src.Len() {
			s.done = true
			return 0, false
		}
		px := s.src.pixels[s.pos]
		s.pos += 1
		return px, true
	}
	if s.outX == 0 {
		if !s.fillRow() {
			return 0, false
		}
	}
	px := uint8(s.buf[s.outX] / s.yDiv)
	s.buf[s.outX] = 0
	s.outX += 1
	if s.outX >= s.outWidth {
		s.outX = 0
		s.outY += 1
		s.yDiv = 0
	}
	return px, true
}

func (s *shrink) Err() error {
	return s.err
}

// fillRow consumes the vertical strip of source rows feeding the
// current output row, leaving one horizontal average per output column
// in buf
func (s *shrink) fillRow() bool {
	inH := s.src.Height()
	if s.inY >= inH {
		s.done = true
		return false
	}
	yCap := int(s.scale * float32(s.outY+1))
	if yCap > inH {
		yCap = inH
	}
	for ; s.inY < yCap; s.inY += 1 {
		inX := 0
		for j, edge := range s.xCap {
			total, div := 0, 0
			for inX < edge {
				px, _ := s.src.Get(inX, s.inY)
				total += int(px)
				inX += 1
				div += 1
			}
			if div == 0 {
				s.err = fmt.Errorf("resample: no input columns for output column %d", j)
				return false
			}
			s.buf[j] += total / div
		}
		s.yDiv += 1
	}
	if s.yDiv == 0 {
		s.err = fmt.Errorf("resample: no input rows for output row %d", s.outY)
		return false
	}
	return true
}
