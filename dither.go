package mono

// Dithering applies a threshold to each pixel to round it down to Dark
// or up to Light, then diffuses the residual error amongst the
// not-yet-processed neighbors, so luminance lost forcing one pixel
// down makes the surrounding pixels incrementally more likely to round
// up. Pixels are processed left to right, top to bottom.
// https://tannerhelland.com/2012/12/28/dithering-eleven-algorithms-source-code.html

// Tap is one target of an error diffusion kernel: the carried error of
// the current pixel, scaled by Weight, is added to the accumulator of
// the pixel DX columns and DY rows ahead
type Tap struct {
	DX     int
	DY     int
	Weight int
}

// Kernel is an error diffusion scheme. The divisor is the sum of the
// weights. Every tap must point forward: DY > 0, or DY == 0 and DX > 0
type Kernel []Tap

// Burkes diffusion. Div=32.
//   - ` .  .  x  8  4`
//   - ` 2  4  8  4  2`
//
// Chosen as the default for its modest resource requirements with
// impressive quality outcome
var Burkes = Kernel{
	{1, 0, 8},
	{2, 0, 4},
	//
	{-2, 1, 2},
	{-1, 1, 4},
	{0, 1, 8},
	{1, 1, 4},
	{2, 1, 2},
}

// FloydSteinberg diffusion. Div=16.
//   - ` .  x  7`
//   - ` 3  5  1`
var FloydSteinberg = Kernel{
	{1, 0, 7},
	//
	{-1, 1, 3},
	{0, 1, 5},
	{1, 1, 1},
}

// ditherThreshold is half of the 8 bit luminance range. Effective
// luminance at or above it rounds to Light
const ditherThreshold = 127

// Ditherer is a stateful error diffusion quantizer converting an Img
// to bit-packed words, one bit per pixel in raster order. It is scoped
// to a single conversion: construct, call Dither once, discard
type Ditherer struct {
	width  int
	kernel Kernel
	// sum of the kernel weights
	denominator int
	// circular buffer of carried errors covering the kernel's vertical
	// reach across the image width
	err []int
	// position in err holding the carry-forward error of the current
	// pixel
	origin int
}

// NewDitherer returns a Ditherer diffusing with the given kernel
func NewDitherer(kernel Kernel) *Ditherer {
	denominator := 0
	for _, tap := range kernel {
		denominator += tap.Weight
	}
	return &Ditherer{kernel: kernel, denominator: denominator}
}

// provision sizes the error buffer for one pass over an image of the
// given width
func (d *Ditherer) provision(width int) {
	d.width = width
	maxDX, maxDY := 0, 0
	for _, tap := range d.kernel {
		if tap.DX > maxDX {
			maxDX = tap.DX
		}
		if tap.DY > maxDY {
			maxDY = tap.DY
		}
	}
	d.err = make([]int, width*maxDY+maxDX+1)
	d.origin = 0
}

// index maps a forward offset from the current pixel into the circular
// error buffer
func (d *Ditherer) index(dx, dy int) int {
	offset := d.width*dy + dx
	linear := d.origin + offset
	return linear % len(d.err)
}

// next clears the just-consumed error cell and advances the origin by
// one column
func (d *Ditherer) next() {
	d.err[d.origin] = 0
	d.origin = d.index(1, 0)
}

// get returns the carried error at the current pixel. Integer
// truncation of the accumulator over the denominator is part of the
// contract
func (d *Ditherer) get() int {
	return d.err[d.origin] / d.denominator
}

// carry diffuses the residual error of the current pixel to its
// forward neighbors
func (d *Ditherer) carry(err int) {
	for _, tap := range d.kernel {
		// taps that would reach left of the buffer origin on a very
		// narrow image have nowhere to land
		if d.width*tap.DY+tap.DX < 0 {
			continue
		}
		d.err[d.index(tap.DX, tap.DY)] += tap.Weight * err
	}
}

// pixel quantizes one sample: effective luminance is the stored sample
// plus the carried error, thresholded at 127 inclusive on the Light
// side
func (d *Ditherer) pixel(grey uint8) PixelColor {
	effective := int(grey) + d.get()
	if effective < ditherThreshold {
		d.carry(effective)
		return Dark
	}
	d.carry(effective - 255)
	return Light
}

// Dither converts image to a flat word sequence in raster order,
// ceil(width/32) words per row. Identical input and kernel always
// produce bit-identical output
func (d *Ditherer) Dither(image *Img) []Word {
	width := image.Width()
	height := image.Height()
	d.provision(width)
	wordsPerRow := (width + BitsPerWord - 1) / BitsPerWord
	words := make([]Word, 0, wordsPerRow*height)
	for y := 0; y < height; y += 1 {
		var w uint
		var word Word
		for x := 0; x < width; x += 1 {
			color := Dark
			if grey, ok := image.Get(x, y); ok {
				color = d.pixel(grey)
			}
			word |= color.Bit() << w
			w += 1
			if w >= BitsPerWord {
				words = append(words, word)
				w, word = 0, 0
			}
			d.next()
		}
		// flush the partial word at end of row. Rows that end on a
		// word boundary have nothing open, so every row emits exactly
		// ceil(width/32) words
		if w > 0 {
			words = append(words, word)
		}
	}
	return words
}
