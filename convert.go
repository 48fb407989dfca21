package imgedit

import (
	"image"
	"io"
	"os"
	"regexp"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/tiff"
)

var tiffImage = regexp.MustCompile(`(?i)\.tiff?$`)

// tiffDecode is the fallback for TIFF files the registered decoder rejects.
var tiffDecode = tiff.Decode

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Decode reads an image from r.
// If want to use custom image format packages which were registered in image package, please
// make sure these custom packages imported before importing imgedit package.
func Decode(r io.Reader, opts ...DecodeOption) (image.Image, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	return imaging.Decode(r, imaging.AutoOrientation(cfg.autoOrientation))
}

// DecodeConfig decodes the color model and dimensions of an image that has been encoded in a
// registered format. The string returned is the format name used during format registration.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}

// Open loads an image from file.
// TIFF files that fail to decode are retried with github.com/sunshineplan/tiff,
// which reads more compression schemes. Auto-orientation is not applied then.
func Open(file string, opts ...DecodeOption) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f, opts...)
	if err != nil && tiffImage.MatchString(file) {
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return nil, err
		}
		return tiffDecode(f)
	}
	return img, err
}

// Write image according format option
func Write(w io.Writer, base image.Image, option *FormatOption) error {
	return option.Encode(w, base)
}

// Save saves image according format option
func Save(output string, base image.Image, option *FormatOption) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := option.Encode(f, base); err != nil {
		return err
	}
	return f.Close()
}
