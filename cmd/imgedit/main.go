package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunshineplan/imgedit"
	"github.com/sunshineplan/progressbar"
	"github.com/sunshineplan/utils/log"
	"github.com/sunshineplan/workers"
	"github.com/vharitonsky/iniflags"
)

var (
	src             = flag.String("src", "", "")
	dst             = flag.String("dst", "output", "")
	force           = flag.Bool("force", false, "")
	quality         = flag.Int("quality", 75, "")
	ops             = flag.String("ops", "", "")
	brightness      = flag.Int("brightness", 0, "")
	contrast        = flag.Float64("contrast", 1, "")
	saturation      = flag.Int("saturation", 0, "")
	mirror          = flag.Bool("mirror", false, "")
	rotate          = flag.Float64("rotate", 0, "")
	width           = flag.Int("width", 0, "")
	height          = flag.Int("height", 0, "")
	percent         = flag.Float64("percent", 0, "")
	crop            = flag.String("crop", "", "")
	autoOrientation = flag.Bool("auto-orientation", true, "")
	worker          = flag.Int("worker", 5, "")
	quiet           = flag.Bool("quiet", false, "")
	debug           = flag.Bool("debug", false, "")

	format      = imgedit.JPEG
	compression = imgedit.TIFFDeflate
)

func init() {
	flag.TextVar(&format, "format", imgedit.JPEG, "")
	flag.TextVar(&compression, "compression", imgedit.TIFFDeflate, "")
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
	fmt.Println(`
  --src
		source file or directory
  --dst
		destination directory (default: output)
  --force
		force overwrite (default: false)
  --format
		output format (jpg, jpeg, png, gif, tif, tiff, bmp and pdf are supported, default: jpg)
  --quality
		set jpeg or pdf quality (range 1-100, default: 75)
  --compression
		set tiff compression type (none, deflate, default: deflate)
  --crop
		crop rectangle x,y,width,height, applied first
  --rotate
		rotate clockwise by degrees
  --mirror
		mirror horizontally (default: false)
  --width, height
		resize to exactly width x height, both must be set
  --percent
		resize percent, only when both of width and height are 0.
  --brightness
		brightness delta (range -255-255, default: 0)
  --contrast
		contrast factor (range 0-10, default: 1)
  --saturation
		hue shift in degrees (range -180-180, default: 0)
  --ops
		additional operations, e.g. "channels:10,0,-10;rotate:90"
  --auto-orientation
		apply EXIF orientation when decoding (default: true)
  --worker
		number of images converted at the same time (default: 5)
  --quiet
		hide progress (default: false)
  --debug
		log every operation (default: false)`)
}

func main() {
	var code int
	defer func() { os.Exit(code) }()

	self, err := os.Executable()
	if err != nil {
		log.Error("Failed to get self path", "error", err)
		code = 1
		return
	}

	flag.Usage = usage
	iniflags.SetConfigFile(filepath.Join(filepath.Dir(self), "config.ini"))
	iniflags.SetAllowMissingConfigFile(true)
	iniflags.Parse()

	task, err := buildTask()
	if err != nil {
		log.Error("Invalid options", "error", err)
		code = 1
		return
	}
	if *debug {
		task.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	srcInfo, err := os.Stat(*src)
	if err != nil {
		log.Error("Failed to get source", "src", *src, "error", err)
		code = 1
		return
	}
	if err := os.MkdirAll(*dst, 0755); err != nil {
		log.Error("Failed to create destination", "dst", *dst, "error", err)
		code = 1
		return
	}
	if dstInfo, err := os.Stat(*dst); err != nil || !dstInfo.IsDir() {
		log.Error("Destination is not a directory", "dst", *dst)
		code = 1
		return
	}

	switch mode := srcInfo.Mode(); {
	case mode.IsDir():
		images := loadImages(*src)
		total := len(images)
		log.Info("Found images", "total", total)

		pb := progressbar.New(total)
		if !*quiet {
			pb.Start()
		}
		workers.Workers(max(1, *worker)).Run(context.Background(), workers.SliceJob(images, func(_ int, image string) {
			defer pb.Add(1)
			rel, err := filepath.Rel(*src, image)
			if err != nil {
				log.Error("Failed to get relative path", "image", image, "error", err)
				return
			}
			output := task.ConvertExt(filepath.Join(*dst, rel))
			switch err := convert(task, image, output, *force); {
			case errors.Is(err, errSkip):
				log.Info("Skip", "output", output)
			case err == nil && *debug:
				log.Info("Converted", "image", image, "output", output)
			}
		}))
		if !*quiet {
			pb.Wait()
		}
	case mode.IsRegular():
		output := task.ConvertExt(filepath.Join(*dst, filepath.Base(*src)))
		if err := convert(task, *src, output, *force); err != nil {
			if errors.Is(err, errSkip) {
				log.Error("Destination already exist", "output", output)
			}
			code = 1
			return
		}
	default:
		log.Error("Unknown source", "src", *src)
		code = 1
		return
	}
	log.Info("Done")
}

// buildTask collects the operations requested by flags in a fixed order:
// crop, rotate, mirror, resize, then color adjustments, then --ops.
func buildTask() (*imgedit.Options, error) {
	task := imgedit.NewOptions()
	task.Format = imgedit.FormatOption{
		Format: format,
		EncodeOption: []imgedit.EncodeOption{
			imgedit.Quality(*quality),
			imgedit.TIFFCompressionType(compression),
		},
	}

	for name, v := range map[string]float64{"rotate": *rotate, "contrast": *contrast, "percent": *percent} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: --%s %g", imgedit.ErrInvalidOperation, name, v)
		}
	}

	if *crop != "" {
		op, err := imgedit.ParseOperation("crop:" + *crop)
		if err != nil {
			return nil, err
		}
		task.Add(op)
	}
	if *rotate != 0 {
		task.Add(imgedit.RotateOp{Angle: *rotate})
	}
	if *mirror {
		task.Add(imgedit.MirrorOp{Horizontal: true})
	}
	switch {
	case *width != 0 || *height != 0:
		if *width <= 0 || *height <= 0 {
			return nil, fmt.Errorf("%w: width and height must both be positive", imgedit.ErrInvalidDimensions)
		}
		task.Add(imgedit.ResizeOp{Width: *width, Height: *height})
	case *percent != 0:
		task.Add(imgedit.ScaleOp{Percent: *percent})
	}
	if *brightness != 0 {
		task.Add(imgedit.BrightnessOp{Delta: *brightness})
	}
	if *contrast != 1 {
		task.Add(imgedit.ContrastOp{Factor: *contrast})
	}
	if *saturation != 0 {
		task.Add(imgedit.SaturationOp{Shift: *saturation})
	}
	if strings.TrimSpace(*ops) != "" {
		if err := task.SetOperations(*ops); err != nil {
			return nil, err
		}
	}
	return &task, nil
}
