package imgedit

import (
	"image"
	"log/slog"
)

// CropState enumerates the states of an interactive crop selection.
type CropState int

const (
	// CropIdle has no selection in progress.
	CropIdle CropState = iota
	// CropSelecting has a working rectangle, either being dragged or released
	// and waiting for Confirm.
	CropSelecting
	// CropCommitted is entered while a confirmed selection is applied.
	// The selector returns to CropIdle right after, so it is only observed by listeners.
	CropCommitted
)

func (s CropState) String() string {
	switch s {
	case CropIdle:
		return "idle"
	case CropSelecting:
		return "selecting"
	case CropCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// CropListener is called on each crop state transition.
type CropListener func(prev, next CropState)

// CropTarget is the image a CropSelector selects from and crops.
// Session implements it.
type CropTarget interface {
	Loaded() bool
	Bounds() image.Rectangle
	CropTo(r image.Rectangle) error
}

// CropSelector turns pointer input into a crop rectangle.
//
// Pointer events are only interpreted while crop mode is enabled and the
// target has an image loaded; otherwise they are ignored. Crop mode stays
// enabled after a commit so that several crops can be made in a row.
// A CropSelector is not safe for concurrent use.
type CropSelector struct {
	target    CropTarget
	logger    *slog.Logger
	enabled   bool
	state     CropState
	tracking  bool
	origin    image.Point
	rect      image.Rectangle
	listeners []CropListener
}

// NewCropSelector returns an idle selector with crop mode disabled.
// A nil logger discards output.
func NewCropSelector(target CropTarget, logger *slog.Logger) *CropSelector {
	if logger == nil {
		logger = discardLogger()
	}
	return &CropSelector{target: target, logger: logger}
}

// AddListener registers l to be called on every state transition.
func (c *CropSelector) AddListener(l CropListener) { c.listeners = append(c.listeners, l) }

// State returns the current state.
func (c *CropSelector) State() CropState { return c.state }

// Enabled reports whether crop mode is on.
func (c *CropSelector) Enabled() bool { return c.enabled }

// SetEnabled turns crop mode on or off. Turning it on discards any selection
// left over from earlier; turning it off stops an active drag but keeps the
// rectangle.
func (c *CropSelector) SetEnabled(enabled bool) {
	if enabled && !c.enabled {
		c.reset()
	}
	c.enabled = enabled
	if !enabled {
		c.tracking = false
	}
}

// Rect returns the working rectangle for drawing the selection outline.
// ok is false when there is nothing to draw.
func (c *CropSelector) Rect() (r image.Rectangle, ok bool) {
	return c.rect, !c.rect.Empty()
}

// Dragging reports whether the selection still follows the pointer.
func (c *CropSelector) Dragging() bool { return c.tracking }

func (c *CropSelector) active() bool {
	return c.enabled && c.target != nil && c.target.Loaded()
}

// PointerDown starts a new selection at p.
func (c *CropSelector) PointerDown(p image.Point) {
	if !c.active() {
		return
	}
	c.origin = p
	c.rect = image.Rectangle{Min: p, Max: p}
	c.tracking = true
	c.transition(CropSelecting)
}

// PointerMove stretches the selection to p while the primary button is held.
func (c *CropSelector) PointerMove(p image.Point, primaryHeld bool) {
	if !c.active() || c.state != CropSelecting || !c.tracking || !primaryHeld {
		return
	}
	c.rect = image.Rect(c.origin.X, c.origin.Y, p.X, p.Y)
}

// PointerUp finishes dragging at p. The selection stays until Confirm or Cancel.
func (c *CropSelector) PointerUp(p image.Point) {
	if !c.active() || c.state != CropSelecting || !c.tracking {
		return
	}
	c.rect = image.Rect(c.origin.X, c.origin.Y, p.X, p.Y)
	c.tracking = false
	c.logger.Debug("crop selection", "rect", c.rect)
}

// Confirm crops the target to the working rectangle, clipped to the image.
// It reports whether the image was cropped. If the selection lies outside the
// image it is discarded and the image is left as is.
func (c *CropSelector) Confirm() (bool, error) {
	if c.target == nil || !c.target.Loaded() || c.rect.Empty() {
		return false, nil
	}
	r := ClipRect(c.rect, c.target.Bounds())
	if r.Empty() {
		c.logger.Debug("crop selection outside image, discarded", "rect", c.rect)
		c.reset()
		return false, nil
	}
	if err := c.target.CropTo(r); err != nil {
		return false, err
	}
	c.transition(CropCommitted)
	c.logger.Debug("crop committed", "rect", r)
	c.reset()
	return true, nil
}

// Cancel discards the selection.
func (c *CropSelector) Cancel() { c.reset() }

func (c *CropSelector) reset() {
	c.rect = image.Rectangle{}
	c.origin = image.Point{}
	c.tracking = false
	c.transition(CropIdle)
}

func (c *CropSelector) transition(next CropState) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	c.logger.Debug("crop state transition", "from", prev.String(), "to", next.String())
	for _, l := range c.listeners {
		l(prev, next)
	}
}
