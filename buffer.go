package imgedit

import (
	"image"

	"github.com/disintegration/imaging"
)

// NewBuffer returns a transparent pixel buffer of the given size.
func NewBuffer(width, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

// ToBuffer returns a copy of img as a non-premultiplied RGBA buffer whose
// bounds start at (0, 0). It returns nil if img is nil.
func ToBuffer(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	return imaging.Clone(img)
}

func isEmpty(img *image.NRGBA) bool {
	return img == nil || img.Rect.Empty()
}

func clone(img *image.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	if img.Rect.Empty() {
		return &image.NRGBA{}
	}
	return imaging.Clone(img)
}

// clamp rounds and clamps float64 value to fit into uint8.
func clamp(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}

// clampAdd adds delta to c, saturating at 0 and 255 for any delta.
func clampAdd(c uint8, delta int) uint8 {
	delta = min(max(delta, -255), 255)
	return uint8(min(max(int(c)+delta, 0), 255))
}
