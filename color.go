package imgedit

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const contrastPivot = 127

func adjust(img *image.NRGBA, fn func(color.NRGBA) color.NRGBA) *image.NRGBA {
	if isEmpty(img) {
		return clone(img)
	}
	return imaging.AdjustFunc(img, fn)
}

// AdjustBrightness adds delta to the red, green and blue channels of every pixel,
// clamping the result to [0, 255]. Alpha is left unchanged.
// Deltas beyond ±255 saturate the same way.
func AdjustBrightness(img *image.NRGBA, delta int) *image.NRGBA {
	if delta == 0 {
		return clone(img)
	}
	return adjust(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{clampAdd(c.R, delta), clampAdd(c.G, delta), clampAdd(c.B, delta), c.A}
	})
}

// AdjustContrast scales the distance of every color channel from mid-gray (127)
// by factor. A factor of 1 leaves the image unchanged, 0 turns it mid-gray.
func AdjustContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1 {
		return clone(img)
	}
	var lut [256]uint8
	for i := range lut {
		lut[i] = clamp(factor*float64(i-contrastPivot) + contrastPivot)
	}
	return adjust(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{lut[c.R], lut[c.G], lut[c.B], c.A}
	})
}

// AdjustSaturation rotates the hue of every pixel by shift degrees, keeping its
// HSV saturation, value and alpha. Shifts wrap modulo 360 in both directions,
// so a shift of 370 equals 10 and -10 equals 350.
func AdjustSaturation(img *image.NRGBA, shift int) *image.NRGBA {
	shift = floorMod(shift, 360)
	if shift == 0 {
		return clone(img)
	}
	return adjust(img, func(c color.NRGBA) color.NRGBA {
		h, s, v := rgbToHSV(c.R, c.G, c.B)
		if s == 0 {
			return c
		}
		r, g, b := hsvToRGB(shiftHue(h, float64(shift)), s, v)
		return color.NRGBA{r, g, b, c.A}
	})
}

// AdjustChannels adds a separate delta to each of the red, green and blue channels.
func AdjustChannels(img *image.NRGBA, red, green, blue int) *image.NRGBA {
	if red == 0 && green == 0 && blue == 0 {
		return clone(img)
	}
	return adjust(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{clampAdd(c.R, red), clampAdd(c.G, green), clampAdd(c.B, blue), c.A}
	})
}
