package imgedit

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

const selectionWidth = 2

var selectionColor = color.NRGBA{R: 0xff, A: 0xff}

// SetZoom sets the display scale used by View. It must be positive.
func (s *Session) SetZoom(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: zoom %g", ErrInvalidDimensions, factor)
	}
	s.zoom = factor
	return nil
}

// Zoom returns the display scale.
func (s *Session) Zoom() float64 { return s.zoom }

// View returns the current image scaled by the zoom factor, with the crop
// selection outlined on top. It returns nil when no image is loaded.
// The current image itself is never changed.
func (s *Session) View() image.Image {
	if s.current == nil {
		return nil
	}
	var view image.Image = s.current
	if s.zoom != 1 && !s.current.Rect.Empty() {
		view = zoomImage(s.current, s.zoom)
	}
	if r, ok := s.selector.Rect(); ok {
		view = Outline(view, s.imageToView(r), selectionColor, selectionWidth)
	}
	return view
}

// ViewToImage maps a point in View coordinates to image coordinates.
func (s *Session) ViewToImage(p image.Point) image.Point {
	return image.Pt(
		int(math.Floor(float64(p.X)/s.zoom)),
		int(math.Floor(float64(p.Y)/s.zoom)),
	)
}

func (s *Session) imageToView(r image.Rectangle) image.Rectangle {
	if s.zoom == 1 {
		return r
	}
	scale := func(v int) int { return int(math.Round(float64(v) * s.zoom)) }
	return image.Rect(scale(r.Min.X), scale(r.Min.Y), scale(r.Max.X), scale(r.Max.Y))
}

// zoomImage scales with nearest neighbour when enlarging, so that single
// pixels stay sharp, and bilinear when shrinking.
func zoomImage(src *image.NRGBA, factor float64) *image.NRGBA {
	b := src.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))
	dst := NewBuffer(w, h)
	var scaler draw.Scaler = draw.ApproxBiLinear
	if factor > 1 {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Outline returns a copy of base with the border of r drawn in c, width pixels
// thick, inside r. Parts of r outside base are ignored.
func Outline(base image.Image, r image.Rectangle, c color.Color, width int) *image.NRGBA {
	img := image.NewNRGBA(base.Bounds())
	draw.Draw(img, img.Bounds(), base, base.Bounds().Min, draw.Src)
	r = r.Canon()
	if r.Empty() || width <= 0 {
		return img
	}
	width = min(width, (r.Dx()+1)/2, (r.Dy()+1)/2)
	pen := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(img, edge.Intersect(img.Bounds()), pen, image.Point{}, draw.Over)
	}
	return img
}
