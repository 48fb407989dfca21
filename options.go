package imgedit

import (
	"image"
	"io"
	"log/slog"
	"path/filepath"
)

var defaultFormat = FormatOption{Format: JPEG}

// Options represents a batch edit: a list of operations applied in order,
// followed by encoding in the given format.
type Options struct {
	Operations []Operation
	Format     FormatOption
	Logger     *slog.Logger
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{Format: defaultFormat}
}

// Add appends operations to the pipeline.
func (opts *Options) Add(ops ...Operation) *Options {
	opts.Operations = append(opts.Operations, ops...)
	return opts
}

// SetOperations parses s with ParseOperations and appends the result.
func (opts *Options) SetOperations(s string) error {
	ops, err := ParseOperations(s)
	if err != nil {
		return err
	}
	opts.Add(ops...)
	return nil
}

// SetFormat sets the value for the Format field.
func (opts *Options) SetFormat(f string, options ...EncodeOption) (err error) {
	opts.Format, err = setFormat(f, options...)
	return
}

// Edit loads base into a new session and applies all operations.
func (opts *Options) Edit(base image.Image) (*Session, error) {
	s := NewSession(WithLogger(opts.Logger))
	s.Load(base)
	for _, op := range opts.Operations {
		if _, err := s.Apply(op); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Convert edits base according to opts and writes the result to w.
func (opts *Options) Convert(w io.Writer, base image.Image) error {
	s, err := opts.Edit(base)
	if err != nil {
		return err
	}
	return s.Write(w, &opts.Format)
}

// ConvertExt convert filename's ext according image format.
func (opts *Options) ConvertExt(filename string) string {
	return filename[0:len(filename)-len(filepath.Ext(filename))] + "." + formatExts[opts.Format.Format]
}
