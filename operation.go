package imgedit

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Operation is a single edit that can be applied to a pixel buffer.
// Apply never modifies img; it returns a new buffer.
type Operation interface {
	Apply(img *image.NRGBA) (*image.NRGBA, error)
	String() string
}

// BrightnessOp adds Delta to every color channel.
type BrightnessOp struct{ Delta int }

func (op BrightnessOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return AdjustBrightness(img, op.Delta), nil
}

func (op BrightnessOp) String() string { return "brightness:" + strconv.Itoa(op.Delta) }

// ContrastOp scales channel distance from mid-gray by Factor.
type ContrastOp struct{ Factor float64 }

func (op ContrastOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	if op.Factor < 0 || !finite(op.Factor) {
		return nil, fmt.Errorf("%w: contrast factor %g", ErrInvalidOperation, op.Factor)
	}
	return AdjustContrast(img, op.Factor), nil
}

func (op ContrastOp) String() string { return "contrast:" + formatFloat(op.Factor) }

// SaturationOp rotates hue by Shift degrees.
type SaturationOp struct{ Shift int }

func (op SaturationOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return AdjustSaturation(img, op.Shift), nil
}

func (op SaturationOp) String() string { return "saturation:" + strconv.Itoa(op.Shift) }

// ChannelsOp adds a separate delta to each color channel.
type ChannelsOp struct{ Red, Green, Blue int }

func (op ChannelsOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return AdjustChannels(img, op.Red, op.Green, op.Blue), nil
}

func (op ChannelsOp) String() string {
	return fmt.Sprintf("channels:%d,%d,%d", op.Red, op.Green, op.Blue)
}

// MirrorOp reflects the image.
type MirrorOp struct{ Horizontal, Vertical bool }

func (op MirrorOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return Mirror(img, op.Horizontal, op.Vertical), nil
}

func (op MirrorOp) String() string {
	var flags string
	if op.Horizontal {
		flags += "h"
	}
	if op.Vertical {
		flags += "v"
	}
	if flags == "" {
		return "mirror:none"
	}
	return "mirror:" + flags
}

// RotateOp rotates clockwise by Angle degrees.
type RotateOp struct{ Angle float64 }

func (op RotateOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	if !finite(op.Angle) {
		return nil, fmt.Errorf("%w: rotate by %g degrees", ErrInvalidOperation, op.Angle)
	}
	return Rotate(img, op.Angle), nil
}

func (op RotateOp) String() string { return "rotate:" + formatFloat(op.Angle) }

// ResizeOp resizes to exactly Width x Height.
type ResizeOp struct{ Width, Height int }

func (op ResizeOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return Resize(img, op.Width, op.Height)
}

func (op ResizeOp) String() string { return fmt.Sprintf("resize:%d,%d", op.Width, op.Height) }

// ScaleOp resizes both sides by Percent.
type ScaleOp struct{ Percent float64 }

func (op ScaleOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return Scale(img, op.Percent)
}

func (op ScaleOp) String() string { return "scale:" + formatFloat(op.Percent) }

// CropOp keeps the part of the image inside Rect.
type CropOp struct{ Rect image.Rectangle }

func (op CropOp) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	return Crop(img, op.Rect), nil
}

func (op CropOp) String() string {
	r := op.Rect.Canon()
	return fmt.Sprintf("crop:%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// ParseOperations parses a list of operations separated by semicolons,
// for example "brightness:20;rotate:90;crop:0,0,100,50".
// Empty items are ignored.
func ParseOperations(s string) ([]Operation, error) {
	var ops []Operation
	for _, item := range strings.Split(s, ";") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		op, err := ParseOperation(item)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ParseOperation parses a single operation of the form name[:arg,...].
//
// Supported operations:
//
//	brightness:DELTA
//	contrast:FACTOR
//	saturation:DEGREES
//	channels:R,G,B
//	mirror[:h|v|hv|none]
//	rotate:DEGREES
//	resize:WIDTH,HEIGHT
//	scale:PERCENT
//	crop:X,Y,WIDTH,HEIGHT
func ParseOperation(s string) (Operation, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	name = strings.ToLower(strings.TrimSpace(name))
	var args []string
	if arg = strings.TrimSpace(arg); arg != "" {
		args = strings.Split(arg, ",")
		for i := range args {
			args[i] = strings.TrimSpace(args[i])
		}
	}

	switch name {
	case "brightness":
		n, err := parseInts(name, args, 1)
		if err != nil {
			return nil, err
		}
		return BrightnessOp{n[0]}, nil
	case "contrast":
		f, err := parseFloat(name, args)
		if err != nil {
			return nil, err
		}
		if f < 0 {
			return nil, fmt.Errorf("%w: %s: factor must not be negative", ErrInvalidOperation, name)
		}
		return ContrastOp{f}, nil
	case "saturation", "hue":
		n, err := parseInts(name, args, 1)
		if err != nil {
			return nil, err
		}
		return SaturationOp{n[0]}, nil
	case "channels", "rgb":
		n, err := parseInts(name, args, 3)
		if err != nil {
			return nil, err
		}
		return ChannelsOp{n[0], n[1], n[2]}, nil
	case "mirror", "flip":
		if len(args) == 0 {
			return MirrorOp{Horizontal: true}, nil
		}
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %s: too many arguments", ErrInvalidOperation, name)
		}
		var op MirrorOp
		if args[0] == "none" {
			return op, nil
		}
		for _, r := range strings.ToLower(args[0]) {
			switch r {
			case 'h':
				op.Horizontal = true
			case 'v':
				op.Vertical = true
			default:
				return nil, fmt.Errorf("%w: %s: unknown direction %q", ErrInvalidOperation, name, args[0])
			}
		}
		return op, nil
	case "rotate":
		f, err := parseFloat(name, args)
		if err != nil {
			return nil, err
		}
		return RotateOp{f}, nil
	case "resize":
		n, err := parseInts(name, args, 2)
		if err != nil {
			return nil, err
		}
		if n[0] <= 0 || n[1] <= 0 {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOperation, name, ErrInvalidDimensions)
		}
		return ResizeOp{n[0], n[1]}, nil
	case "scale":
		f, err := parseFloat(name, args)
		if err != nil {
			return nil, err
		}
		if f <= 0 {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOperation, name, ErrInvalidDimensions)
		}
		return ScaleOp{f}, nil
	case "crop":
		n, err := parseInts(name, args, 4)
		if err != nil {
			return nil, err
		}
		return CropOp{image.Rect(n[0], n[1], n[0]+n[2], n[1]+n[3])}, nil
	case "":
		return nil, fmt.Errorf("%w: empty operation", ErrInvalidOperation)
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidOperation, name)
	}
}

func parseInts(name string, args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s: want %d arguments, got %d", ErrInvalidOperation, name, n, len(args))
	}
	res := make([]int, n)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not an integer", ErrInvalidOperation, name, arg)
		}
		res[i] = v
	}
	return res, nil
}

func parseFloat(name string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s: want 1 argument, got %d", ErrInvalidOperation, name, len(args))
	}
	f, err := strconv.ParseFloat(args[0], 64)
	if err != nil || !finite(f) {
		return 0, fmt.Errorf("%w: %s: %q is not a number", ErrInvalidOperation, name, args[0])
	}
	return f, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
