package imgedit

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestMirror(t *testing.T) {
	img := sample(5, 3)

	res := Mirror(img, true, false)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if res.NRGBAAt(x, y) != img.NRGBAAt(4-x, y) {
				t.Fatalf("horizontal mirror: wrong pixel at (%d, %d)", x, y)
			}
		}
	}
	res = Mirror(img, false, true)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if res.NRGBAAt(x, y) != img.NRGBAAt(x, 2-y) {
				t.Fatalf("vertical mirror: wrong pixel at (%d, %d)", x, y)
			}
		}
	}
	compare(t, Mirror(Mirror(img, false, true), true, false), Mirror(img, true, true))

	for _, tc := range []struct{ h, v bool }{{false, false}, {true, false}, {false, true}, {true, true}} {
		compare(t, img, Mirror(Mirror(img, tc.h, tc.v), tc.h, tc.v))
	}

	if Mirror(nil, true, true) != nil {
		t.Fatal("mirror of nil want nil")
	}
}

func TestRotate(t *testing.T) {
	img := sample(3, 2)

	compare(t, img, Rotate(img, 0))
	compare(t, img, Rotate(img, 360))
	compare(t, img, Rotate(img, -720))

	res := Rotate(img, 90)
	if res.Bounds().Size() != image.Pt(2, 3) {
		t.Fatalf("expected 2x3 after rotating 90; got %v", res.Bounds().Size())
	}
	// Clockwise: top-left goes to top-right, bottom-left to top-left.
	if res.NRGBAAt(1, 0) != img.NRGBAAt(0, 0) {
		t.Error("rotate 90: top-left pixel misplaced")
	}
	if res.NRGBAAt(0, 0) != img.NRGBAAt(0, 1) {
		t.Error("rotate 90: bottom-left pixel misplaced")
	}
	compare(t, res, Rotate(img, 450))
	compare(t, res, Rotate(img, -270))
	compare(t, Mirror(img, true, true), Rotate(img, 180))

	if Rotate(nil, 45) != nil {
		t.Fatal("rotate of nil want nil")
	}
}

func TestRotateSize(t *testing.T) {
	img := NewBuffer(100, 100)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	res := Rotate(img, 45)
	want := int(math.Ceil(100 * (math.Cos(math.Pi/4) + math.Sin(math.Pi/4))))
	size := res.Bounds().Size()
	if abs(size.X-want) > 1 || abs(size.Y-want) > 1 {
		t.Fatalf("expected about %dx%d; got %v", want, want, size)
	}
	if a := res.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected transparent corner; got alpha %d", a)
	}
	if a := res.NRGBAAt(size.X/2, size.Y/2).A; a != 0xff {
		t.Errorf("expected opaque center; got alpha %d", a)
	}
	if res := Rotate(img, 1234.5); res.Bounds().Empty() {
		t.Error("large angle should still rotate")
	}
	for _, angle := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		compare(t, img, Rotate(img, angle))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestResize(t *testing.T) {
	img := sample(30, 21)
	for _, want := range []image.Point{
		{1, 1},
		{30, 21},
		{60, 21},
		{30, 5},
		{7, 100},
		{300, 206},
	} {
		res, err := Resize(img, want.X, want.Y)
		if err != nil {
			t.Fatal(err)
		}
		if res.Bounds().Size() != want {
			t.Fatalf("bounds differ: %v and %v", res.Bounds().Size(), want)
		}
	}

	for _, size := range []image.Point{{0, 10}, {10, 0}, {-1, 10}, {10, -5}, {0, 0}} {
		if _, err := Resize(img, size.X, size.Y); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("resize to %v: expected ErrInvalidDimensions; got %v", size, err)
		}
	}
	compare(t, sample(30, 21), img)

	res, err := Resize(&image.NRGBA{}, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("resize of empty image: expected 4x3; got %v", res.Bounds())
	}
	for i := 3; i < len(res.Pix); i += 4 {
		if res.Pix[i] != 0 {
			t.Fatal("resize of empty image want transparent pixels")
		}
	}
}

func TestScale(t *testing.T) {
	img := sample(30, 21)
	for _, tc := range []struct {
		percent float64
		want    image.Point
	}{
		{100, image.Pt(30, 21)},
		{50, image.Pt(15, 11)},
		{200, image.Pt(60, 42)},
		{1, image.Pt(1, 1)},
	} {
		res, err := Scale(img, tc.percent)
		if err != nil {
			t.Fatal(err)
		}
		if res.Bounds().Size() != tc.want {
			t.Errorf("scale %g: expected %v; got %v", tc.percent, tc.want, res.Bounds().Size())
		}
	}
	if _, err := Scale(img, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("scale 0: expected ErrInvalidDimensions; got %v", err)
	}
}

func TestCrop(t *testing.T) {
	img := sample(100, 60)

	compare(t, img, Crop(img, img.Bounds()))

	for _, tc := range []struct {
		rect image.Rectangle
		want image.Rectangle
	}{
		{image.Rect(10, 10, 50, 30), image.Rect(10, 10, 50, 30)},
		{image.Rectangle{Min: image.Pt(50, 30), Max: image.Pt(10, 10)}, image.Rect(10, 10, 50, 30)},
		{image.Rect(-5, -5, 10, 10), image.Rect(0, 0, 10, 10)},
		{image.Rect(90, 50, 200, 200), image.Rect(90, 50, 100, 60)},
	} {
		res := Crop(img, tc.rect)
		if res.Bounds() != image.Rect(0, 0, tc.want.Dx(), tc.want.Dy()) {
			t.Fatalf("crop %v: expected size %v; got %v", tc.rect, tc.want.Size(), res.Bounds())
		}
		compare(t, img.SubImage(tc.want), res)
	}

	for _, r := range []image.Rectangle{
		image.Rect(200, 200, 300, 300),
		image.Rect(-10, -10, 0, 0),
		image.Rect(10, 10, 10, 30),
	} {
		if res := Crop(img, r); res == nil || !res.Bounds().Empty() {
			t.Errorf("crop %v: expected zero-area image; got %v", r, res)
		}
	}
}

func TestClipRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 60)
	for _, tc := range []struct {
		in, want image.Rectangle
	}{
		{image.Rect(10, 10, 50, 30), image.Rect(10, 10, 50, 30)},
		{image.Rectangle{Min: image.Pt(50, 30), Max: image.Pt(10, 10)}, image.Rect(10, 10, 50, 30)},
		{image.Rect(-20, 20, 500, 40), image.Rect(0, 20, 100, 40)},
		{image.Rect(100, 0, 120, 10), image.Rectangle{}},
	} {
		if got := ClipRect(tc.in, bounds); got != tc.want {
			t.Errorf("ClipRect(%v): expected %v; got %v", tc.in, tc.want, got)
		}
	}
}
