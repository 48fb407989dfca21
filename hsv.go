package imgedit

import "math"

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// shiftHue returns (h + shift) mod 360 in [0, 360).
func shiftHue(h, shift float64) float64 {
	h = math.Mod(h+shift, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

// rgbToHSV returns hue in [0, 360), saturation and value in [0, 1].
func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	hi := max(rf, gf, bf)
	lo := min(rf, gf, bf)
	d := hi - lo

	v = hi
	if hi == 0 || d == 0 {
		return 0, 0, v
	}
	s = d / hi

	switch hi {
	case rf:
		h = (gf - bf) / d
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return clamp((r + m) * 255), clamp((g + m) * 255), clamp((b + m) * 255)
}
