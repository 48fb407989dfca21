package imgedit

import (
	"image"
	"slices"
	"testing"
)

type stateRecorder struct {
	seq []CropState
}

func (r *stateRecorder) listener(_, next CropState) { r.seq = append(r.seq, next) }

func newCropSession(t *testing.T) (*Session, *image.NRGBA) {
	t.Helper()
	img := sample(100, 60)
	s := NewSession()
	s.Load(img)
	s.Selector().SetEnabled(true)
	return s, img
}

func TestCropSelectorScenario(t *testing.T) {
	s, img := newCropSession(t)
	c := s.Selector()
	r := &stateRecorder{}
	c.AddListener(r.listener)

	if c.State() != CropIdle {
		t.Fatalf("expected idle; got %s", c.State())
	}
	c.PointerDown(image.Pt(10, 10))
	if c.State() != CropSelecting || !c.Dragging() {
		t.Fatalf("expected selecting and dragging; got %s, %v", c.State(), c.Dragging())
	}
	if _, ok := c.Rect(); ok {
		t.Fatal("expected empty rectangle right after pointer down")
	}
	c.PointerMove(image.Pt(50, 30), true)
	if rect, _ := c.Rect(); rect != image.Rect(10, 10, 50, 30) {
		t.Fatalf("expected (10,10)-(50,30) while dragging; got %v", rect)
	}
	c.PointerUp(image.Pt(50, 30))
	rect, ok := c.Rect()
	if !ok || rect != image.Rect(10, 10, 50, 30) {
		t.Fatalf("expected (10,10)-(50,30); got %v", rect)
	}
	if rect.Min != image.Pt(10, 10) || rect.Dx() != 40 || rect.Dy() != 20 {
		t.Fatalf("expected x=10 y=10 w=40 h=20; got %v", rect)
	}
	if c.State() != CropSelecting || c.Dragging() {
		t.Fatalf("expected selecting without dragging; got %s, %v", c.State(), c.Dragging())
	}

	// Moving after release must not change the selection.
	c.PointerMove(image.Pt(90, 50), true)
	if got, _ := c.Rect(); got != rect {
		t.Fatalf("selection changed after release: %v", got)
	}

	done, err := c.Confirm()
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("expected crop to be committed")
	}
	compare(t, img.SubImage(image.Rect(10, 10, 50, 30)), s.Current())
	if _, ok := c.Rect(); ok {
		t.Fatal("expected selection to be cleared after commit")
	}
	if c.State() != CropIdle {
		t.Fatalf("expected idle after commit; got %s", c.State())
	}
	if !c.Enabled() {
		t.Fatal("crop mode must stay enabled after commit")
	}
	if want := []CropState{CropSelecting, CropCommitted, CropIdle}; !slices.Equal(r.seq, want) {
		t.Fatalf("expected transitions %v; got %v", want, r.seq)
	}

	// A second crop works without re-enabling crop mode.
	c.PointerDown(image.Pt(5, 5))
	c.PointerUp(image.Pt(0, 0))
	if done, _ := c.Confirm(); !done {
		t.Fatal("expected second crop to be committed")
	}
	if s.Bounds() != image.Rect(0, 0, 5, 5) {
		t.Fatalf("expected 5x5 image; got %v", s.Bounds())
	}
}

func TestCropSelectorReversedDrag(t *testing.T) {
	s, _ := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(50, 30))
	c.PointerMove(image.Pt(20, 40), true)
	c.PointerUp(image.Pt(10, 10))
	if rect, _ := c.Rect(); rect != image.Rect(10, 10, 50, 30) {
		t.Fatalf("expected normalized (10,10)-(50,30); got %v", rect)
	}
}

func TestCropSelectorDisabled(t *testing.T) {
	s, img := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(10, 10))
	c.PointerUp(image.Pt(30, 30))
	want, _ := c.Rect()

	c.SetEnabled(false)
	c.PointerDown(image.Pt(0, 0))
	c.PointerMove(image.Pt(90, 50), true)
	c.PointerUp(image.Pt(90, 50))
	if got, _ := c.Rect(); got != want {
		t.Fatalf("pointer events changed selection while crop mode is off: %v", got)
	}

	s2 := NewSession()
	s2.Load(img)
	c2 := s2.Selector()
	c2.PointerDown(image.Pt(10, 10))
	c2.PointerMove(image.Pt(20, 20), true)
	c2.PointerUp(image.Pt(20, 20))
	if _, ok := c2.Rect(); ok || c2.State() != CropIdle {
		t.Fatal("crop mode is off by default")
	}
}

func TestCropSelectorNoImage(t *testing.T) {
	s := NewSession()
	c := s.Selector()
	c.SetEnabled(true)
	c.PointerDown(image.Pt(10, 10))
	c.PointerMove(image.Pt(20, 20), true)
	c.PointerUp(image.Pt(20, 20))
	if _, ok := c.Rect(); ok || c.State() != CropIdle {
		t.Fatal("pointer events without an image must be ignored")
	}
	if done, err := c.Confirm(); done || err != nil {
		t.Fatalf("confirm without an image: got %v, %v", done, err)
	}
}

func TestCropSelectorButtonReleased(t *testing.T) {
	s, _ := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(10, 10))
	c.PointerMove(image.Pt(40, 40), false)
	if _, ok := c.Rect(); ok {
		t.Fatal("move without primary button must not stretch the selection")
	}
}

func TestCropSelectorEnableClearsStale(t *testing.T) {
	s, _ := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(10, 10))
	c.PointerUp(image.Pt(30, 30))
	c.SetEnabled(false)
	if _, ok := c.Rect(); !ok {
		t.Fatal("disabling crop mode keeps the selection")
	}
	c.SetEnabled(true)
	if _, ok := c.Rect(); ok || c.State() != CropIdle {
		t.Fatal("enabling crop mode must clear a stale selection")
	}
}

func TestCropSelectorConfirmOutside(t *testing.T) {
	s, img := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(150, 100))
	c.PointerUp(image.Pt(200, 120))
	done, err := c.Confirm()
	if err != nil || done {
		t.Fatalf("expected nothing to be cropped; got %v, %v", done, err)
	}
	compare(t, img, s.Current())
	if c.State() != CropIdle {
		t.Fatalf("expected idle; got %s", c.State())
	}
}

func TestCropSelectorConfirmClipped(t *testing.T) {
	s, img := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(80, 40))
	c.PointerUp(image.Pt(150, 100))
	if done, err := c.Confirm(); !done || err != nil {
		t.Fatalf("expected crop; got %v, %v", done, err)
	}
	compare(t, img.SubImage(image.Rect(80, 40, 100, 60)), s.Current())
}

func TestCropSelectorCancel(t *testing.T) {
	s, img := newCropSession(t)
	c := s.Selector()
	c.PointerDown(image.Pt(10, 10))
	c.PointerUp(image.Pt(30, 30))
	c.Cancel()
	if _, ok := c.Rect(); ok || c.State() != CropIdle {
		t.Fatal("cancel must clear the selection")
	}
	if done, _ := c.Confirm(); done {
		t.Fatal("confirm after cancel must do nothing")
	}
	compare(t, img, s.Current())
}

func TestCropStateString(t *testing.T) {
	for state, want := range map[CropState]string{
		CropIdle:      "idle",
		CropSelecting: "selecting",
		CropCommitted: "committed",
		CropState(42): "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("expected %q; got %q", want, got)
		}
	}
}
