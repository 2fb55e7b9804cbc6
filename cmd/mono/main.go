// Command mono converts an image into a tiled 1-bit bitmap via error
// diffusion dithering, writing the result as PNG or previewing it
// directly in a sixel-capable terminal
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"git.sr.ht/~rockorager/mono"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-sixel"
	"golang.org/x/exp/slog"
	"golang.org/x/image/draw"
)

var (
	help       bool
	width      int
	kernelName string
	toSixel    bool
	verbose    bool
	inputPath  string
	outputPath string
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.BoolVar(&help, "help", false, "show help")
	flag.BoolVar(&help, "h", false, "show help")
	flag.IntVar(&width, "width", 0, "target width in pixels. 0 keeps the source width")
	flag.StringVar(&kernelName, "kernel", "burkes", "diffusion kernel: burkes or floyd-steinberg")
	flag.BoolVar(&toSixel, "sixel", false, "preview the bitmap as sixel on stdout instead of encoding")
	flag.BoolVar(&verbose, "v", false, "log diagnostics to stderr")
	flag.StringVar(&inputPath, "i", "-", "input image file (png or jpeg). '-' means stdin")
	flag.StringVar(&outputPath, "o", "-", "output png file. '-' means stdout")
}

func main() {
	flag.Parse()
	if help {
		flag.Usage()
		os.Exit(0)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	}))
	mono.SetLogger(logger)

	var kernel mono.Kernel
	switch kernelName {
	case "burkes":
		kernel = mono.Burkes
	case "floyd-steinberg":
		kernel = mono.FloydSteinberg
	default:
		logger.Error("unknown kernel", "kernel", kernelName)
		os.Exit(1)
	}

	in := os.Stdin
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	src, format, err := image.Decode(in)
	if err != nil {
		logger.Error("decoding input", "error", err)
		os.Exit(1)
	}
	logger.Debug("decoded source", "format", format,
		"width", src.Bounds().Dx(), "height", src.Bounds().Dy())

	if width <= 0 {
		width = src.Bounds().Dx()
	}
	// the engine only shrinks; grow undersized sources first, the way
	// a compositor pre-scales a graphic to its placement
	if width > src.Bounds().Dx() {
		src = upscale(src, width)
		logger.Debug("upscaled source", "width", width)
	}

	img, err := mono.FromImage(src)
	if err != nil {
		logger.Error("converting to greyscale", "error", err)
		os.Exit(1)
	}
	bm, err := mono.NewResizeDithered(img, width, kernel)
	if err != nil {
		logger.Error("dithering", "error", err)
		os.Exit(1)
	}
	size := bm.Size()
	logger.Debug("dithered bitmap", "width", size.X, "height", size.Y,
		"tiles", len(bm.Tiles()))

	if toSixel {
		if err := sixel.NewEncoder(os.Stdout).Encode(bm); err != nil {
			logger.Error("encoding sixel", "error", err)
			os.Exit(1)
		}
		return
	}

	out := os.Stdout
	if outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := png.Encode(out, bm); err != nil {
		logger.Error("encoding png", "error", err)
		os.Exit(1)
	}
}

// upscale scales src to the target width, preserving the aspect ratio
func upscale(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, bounds, draw.Over, nil)
	return dst
}
