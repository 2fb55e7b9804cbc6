package mono

import "image/color"

// PixelColor is the color of a single bitmap pixel. The zero value is
// Light: a freshly allocated tile reads as a blank light screen
type PixelColor uint8

const (
	Light PixelColor = 0
	Dark  PixelColor = 1
)

// Bit returns the packed representation of the color: 1 for Dark, 0
// for Light
func (c PixelColor) Bit() Word {
	return Word(c & 1)
}

// pixelColorFromBit maps the low bit of w to a PixelColor
func pixelColorFromBit(w Word) PixelColor {
	return PixelColor(w & 1)
}

func (c PixelColor) String() string {
	if c == Dark {
		return "Dark"
	}
	return "Light"
}

// RGBA implements color.Color. Dark is black, Light is white
func (c PixelColor) RGBA() (r, g, b, a uint32) {
	if c == Dark {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

// PixelColorModel converts any color to a PixelColor with a plain
// luminance threshold. Use a Ditherer for perceptually better results
var PixelColorModel = color.ModelFunc(toPixelColor)

func toPixelColor(c color.Color) color.Color {
	if pc, ok := c.(PixelColor); ok {
		return pc
	}
	r, g, b, _ := c.RGBA()
	// same integer coefficients as the greyscale transform, applied
	// to the high bytes of the 16 bit channels
	grey := (coeffR*(r>>8) + coeffG*(g>>8) + coeffB*(b>>8)) / coeffSum
	if grey < ditherThreshold {
		return Dark
	}
	return Light
}
