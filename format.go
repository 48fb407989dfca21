package imgedit

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // decode jpeg format
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/pdf"
	_ "golang.org/x/image/bmp" // decode bmp format
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode webp format
)

// Format is an image file format.
type Format int

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
	PDF
)

var formatExts = map[Format]string{
	JPEG: "jpg",
	PNG:  "png",
	GIF:  "gif",
	TIFF: "tif",
	BMP:  "bmp",
	PDF:  "pdf",
}

var formatNames = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
	"pdf":  PDF,
}

func (f Format) String() string {
	if ext, ok := formatExts[f]; ok {
		return ext
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff"), "bmp" and "pdf" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if ext, ok := formatExts[f]; ok {
		return []byte(ext), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := FormatFromExtension(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// TIFFCompression describes the type of compression used in Options.
type TIFFCompression int

// Constants for supported TIFF compression types.
const (
	TIFFUncompressed TIFFCompression = iota
	TIFFDeflate
)

func (c TIFFCompression) value() tiff.CompressionType {
	if c == TIFFUncompressed {
		return tiff.Uncompressed
	}
	return tiff.Deflate
}

// MarshalText implements encoding.TextMarshaler.
func (c TIFFCompression) MarshalText() ([]byte, error) {
	switch c {
	case TIFFUncompressed:
		return []byte("none"), nil
	case TIFFDeflate:
		return []byte("deflate"), nil
	default:
		return nil, fmt.Errorf("unsupported tiff compression: %d", int(c))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TIFFCompression) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "none":
		*c = TIFFUncompressed
	case "deflate":
		*c = TIFFDeflate
	default:
		return fmt.Errorf("unsupported tiff compression: %s", text)
	}
	return nil
}

type encodeConfig struct {
	quality             int
	gifNumColors        int
	gifQuantizer        draw.Quantizer
	gifDrawer           draw.Drawer
	pngCompressionLevel png.CompressionLevel
	tiffCompression     TIFFCompression
}

var defaultEncodeConfig = encodeConfig{
	quality:             75,
	gifNumColors:        256,
	pngCompressionLevel: png.DefaultCompression,
	tiffCompression:     TIFFDeflate,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// Quality returns an EncodeOption that sets the output JPEG or PDF quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.quality = quality
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// GIFQuantizer returns an EncodeOption that sets the quantizer that is used to produce
// a palette of the GIF-encoded image.
func GIFQuantizer(quantizer draw.Quantizer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifQuantizer = quantizer
	}
}

// GIFDrawer returns an EncodeOption that sets the drawer that is used to convert
// the source image to the desired palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifDrawer = drawer
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// TIFFCompressionType returns an EncodeOption that sets the compression type
// of the TIFF-encoded image. Default is TIFFDeflate.
func TIFFCompressionType(compression TIFFCompression) EncodeOption {
	return func(c *encodeConfig) {
		c.tiffCompression = compression
	}
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

func setFormat(f string, options ...EncodeOption) (fo FormatOption, err error) {
	var format Format
	if format, err = FormatFromExtension(f); err != nil {
		return
	}
	fo.Format = format
	fo.EncodeOption = options
	return
}

// Encode writes the image base to w in the format specified by FormatOption.
// A nil FormatOption encodes JPEG with default options.
func (f *FormatOption) Encode(w io.Writer, base image.Image) error {
	if f == nil {
		f = &defaultFormat
	}
	cfg := defaultEncodeConfig
	for _, option := range f.EncodeOption {
		option(&cfg)
	}

	switch f.Format {
	case JPEG:
		return imaging.Encode(w, base, imaging.JPEG, imaging.JPEGQuality(cfg.quality))
	case PNG:
		return imaging.Encode(w, base, imaging.PNG, imaging.PNGCompressionLevel(cfg.pngCompressionLevel))
	case GIF:
		return imaging.Encode(w, base, imaging.GIF,
			imaging.GIFNumColors(cfg.gifNumColors),
			imaging.GIFQuantizer(cfg.gifQuantizer),
			imaging.GIFDrawer(cfg.gifDrawer),
		)
	case TIFF:
		return tiff.Encode(w, base, &tiff.Options{Compression: cfg.tiffCompression.value(), Predictor: true})
	case BMP:
		return imaging.Encode(w, base, imaging.BMP)
	case PDF:
		return pdf.Encode(w, []image.Image{base}, &pdf.Options{Quality: cfg.quality})
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(f.Format))
	}
}
