package imgedit

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// SessionOption sets an optional parameter for NewSession.
type SessionOption func(*Session)

// WithLogger returns a SessionOption that sets the logger used by the session
// and its crop selector. By default nothing is logged.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session holds the image being edited.
//
// It owns exactly one current buffer. Every applied operation replaces it and
// the previous buffer is dropped. Requests made while no image is loaded are
// ignored. A Session is not safe for concurrent use.
type Session struct {
	current  *image.NRGBA
	mirrored bool
	zoom     float64
	selector *CropSelector
	logger   *slog.Logger
}

// NewSession returns an empty session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{zoom: 1, logger: discardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.selector = NewCropSelector(s, s.logger)
	return s
}

// Load replaces the session image with a copy of img. A nil img clears the session.
// Mirror state, zoom and any crop selection are reset.
func (s *Session) Load(img image.Image) {
	s.current = ToBuffer(img)
	s.mirrored = false
	s.zoom = 1
	s.selector.Cancel()
	if s.current != nil {
		s.logger.Debug("image loaded", "size", s.current.Bounds().Size())
	}
}

// Decode reads an image from r and loads it.
func (s *Session) Decode(r io.Reader, opts ...DecodeOption) error {
	img, err := Decode(r, opts...)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	s.Load(img)
	return nil
}

// Open loads an image from file.
func (s *Session) Open(file string, opts ...DecodeOption) error {
	img, err := Open(file, opts...)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	s.Load(img)
	return nil
}

// Clear drops the current image and the crop selection.
func (s *Session) Clear() { s.Load(nil) }

// Loaded reports whether an image is loaded.
func (s *Session) Loaded() bool { return s.current != nil }

// Current returns the current image, or nil if none is loaded.
// The buffer must not be modified by the caller.
func (s *Session) Current() *image.NRGBA { return s.current }

// Bounds returns the bounds of the current image, or the zero rectangle.
func (s *Session) Bounds() image.Rectangle {
	if s.current == nil {
		return image.Rectangle{}
	}
	return s.current.Bounds()
}

// Selector returns the crop selector bound to this session.
func (s *Session) Selector() *CropSelector { return s.selector }

// Mirrored reports whether the image is currently mirrored by ToggleMirror.
func (s *Session) Mirrored() bool { return s.mirrored }

// Apply applies op to the current image and makes the result current.
// With no image loaded it does nothing and returns nil, nil.
// If op fails the current image is kept. A crop selection is discarded
// when the image size changes.
func (s *Session) Apply(op Operation) (*image.NRGBA, error) {
	if op == nil {
		return nil, fmt.Errorf("%w: nil operation", ErrInvalidOperation)
	}
	if s.current == nil {
		s.logger.Debug("no image loaded, operation skipped", "op", op.String())
		return nil, nil
	}
	prev := s.current.Bounds()
	img, err := s.apply(op)
	if err != nil {
		return nil, err
	}
	if img.Bounds() != prev {
		s.selector.Cancel()
	}
	return img, nil
}

func (s *Session) apply(op Operation) (*image.NRGBA, error) {
	start := time.Now()
	img, err := op.Apply(s.current)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", op, err)
	}
	s.current = img
	s.logger.Debug("operation applied", "op", op.String(), "size", img.Bounds().Size(), "elapsed", time.Since(start))
	return img, nil
}

// CropTo crops the current image to r clipped to its bounds.
// It is called by the crop selector on Confirm.
func (s *Session) CropTo(r image.Rectangle) error {
	if s.current == nil {
		return nil
	}
	_, err := s.apply(CropOp{r})
	return err
}

// ToggleMirror mirrors the image horizontally. Calling it again restores the
// original orientation.
func (s *Session) ToggleMirror() {
	if s.current == nil {
		return
	}
	s.current = Mirror(s.current, true, false)
	s.mirrored = !s.mirrored
	s.logger.Debug("mirror toggled", "mirrored", s.mirrored)
}

// Write encodes the current image to w.
func (s *Session) Write(w io.Writer, option *FormatOption) error {
	if s.current == nil {
		return ErrNoImage
	}
	return Write(w, s.current, option)
}

// Save encodes the current image to file.
func (s *Session) Save(file string, option *FormatOption) error {
	if s.current == nil {
		return ErrNoImage
	}
	if err := Save(file, s.current, option); err != nil {
		s.logger.Error("failed to save image", "file", file, "error", err)
		return err
	}
	s.logger.Info("image saved", "file", file)
	return nil
}
