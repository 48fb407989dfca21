package imgedit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Mirror reflects the image left to right when horizontal is set and top to bottom
// when vertical is set. With neither flag it returns a copy.
func Mirror(img *image.NRGBA, horizontal, vertical bool) *image.NRGBA {
	if isEmpty(img) {
		return clone(img)
	}
	switch {
	case horizontal && vertical:
		return imaging.Rotate180(img)
	case horizontal:
		return imaging.FlipH(img)
	case vertical:
		return imaging.FlipV(img)
	default:
		return imaging.Clone(img)
	}
}

// Rotate rotates the image clockwise by angle degrees about its center.
// The result is sized to fit the whole rotated image and the uncovered
// corners are transparent. Multiples of 90 are exact. A NaN or infinite
// angle leaves the image as is; RotateOp reports it as an error.
func Rotate(img *image.NRGBA, angle float64) *image.NRGBA {
	if isEmpty(img) || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return clone(img)
	}
	// imaging rotates counter-clockwise.
	return imaging.Rotate(img, -angle, color.Transparent)
}

// Resize scales the image to exactly width x height pixels, ignoring the
// original aspect ratio. A zero-area image becomes a transparent width x height one.
func Resize(img *image.NRGBA, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidDimensions, width, height)
	}
	if img == nil {
		return nil, nil
	}
	if img.Rect.Empty() {
		return NewBuffer(width, height), nil
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// Scale resizes both sides of the image by percent, keeping at least one pixel.
func Scale(img *image.NRGBA, percent float64) (*image.NRGBA, error) {
	if percent <= 0 || math.IsNaN(percent) || math.IsInf(percent, 0) {
		return nil, fmt.Errorf("%w: scale by %g%%", ErrInvalidDimensions, percent)
	}
	if isEmpty(img) {
		return clone(img), nil
	}
	size := img.Bounds().Size()
	width := max(1, int(math.Round(float64(size.X)*percent/100)))
	height := max(1, int(math.Round(float64(size.Y)*percent/100)))
	return Resize(img, width, height)
}

// ClipRect normalizes r and clips it to bounds.
// It returns the zero rectangle when they do not overlap.
func ClipRect(r, bounds image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(bounds)
}

// Crop returns the part of the image inside r, after clipping r to the image bounds.
// If nothing is left the result has zero area.
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	if isEmpty(img) {
		return clone(img)
	}
	r = ClipRect(r, img.Bounds())
	if r.Empty() {
		return &image.NRGBA{}
	}
	return imaging.Crop(img, r)
}
