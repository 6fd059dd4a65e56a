package rlottie

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/kettek/apng"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// gifMaxFPS is the practical frame rate ceiling for GIF output. Decoders
// clamp frame delays below 20ms, so a faster source rate has to be capped
// or the file plays slower than intended.
const gifMaxFPS = 50

// SaveOption adjusts frame and animation export.
type SaveOption func(*saveOptions)

type saveOptions struct {
	fps         float64
	frameStart  int
	frameEnd    int
	rangeSet    bool
	width       int
	height      int
	loop        int
	disposal    byte
	disposalSet bool
	quality     int
}

// WithFPS sets the output frame rate, overriding the animation's native rate
// and the GIF cap.
func WithFPS(fps float64) SaveOption {
	return func(o *saveOptions) { o.fps = fps }
}

// WithFrameRange limits export to output frames [start, end).
func WithFrameRange(start, end int) SaveOption {
	return func(o *saveOptions) {
		o.frameStart = start
		o.frameEnd = end
		o.rangeSet = true
	}
}

// WithSize renders output frames at width x height instead of the
// animation's viewport.
func WithSize(width, height int) SaveOption {
	return func(o *saveOptions) {
		o.width = width
		o.height = height
	}
}

// WithLoopCount sets how many times the animation plays. The default 0
// loops forever.
func WithLoopCount(n int) SaveOption {
	return func(o *saveOptions) { o.loop = n }
}

// WithGIFDisposal sets the GIF frame disposal mode. The default restores to
// background between frames, which keeps transparent animations clean.
func WithGIFDisposal(d byte) SaveOption {
	return func(o *saveOptions) {
		o.disposal = d
		o.disposalSet = true
	}
}

// WithJPEGQuality sets the quality for .jpg output, 1 to 100.
func WithJPEGQuality(q int) SaveOption {
	return func(o *saveOptions) { o.quality = q }
}

func applySaveOptions(opts []SaveOption) saveOptions {
	o := saveOptions{quality: jpeg.DefaultQuality}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *saveOptions) dims(a *Animation) (int, int) {
	if o.width > 0 && o.height > 0 {
		return o.width, o.height
	}
	return a.Size()
}

// SaveFrame renders one frame and writes it to path as a still image. The
// container is chosen by the destination extension: .png, .jpg/.jpeg, .gif,
// .bmp or .tiff/.tif.
func (a *Animation) SaveFrame(path string, frame int, opts ...SaveOption) error {
	o := applySaveOptions(opts)
	w, h := o.dims(a)

	img, err := a.FrameSized(frame, w, h)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return writeFile(path, func(f io.Writer) error { return png.Encode(f, img) })
	case ".jpg", ".jpeg":
		return writeFile(path, func(f io.Writer) error {
			return jpeg.Encode(f, img, &jpeg.Options{Quality: o.quality})
		})
	case ".gif":
		return writeFile(path, func(f io.Writer) error { return gif.Encode(f, img, nil) })
	case ".bmp":
		return writeFile(path, func(f io.Writer) error { return bmp.Encode(f, img) })
	case ".tiff", ".tif":
		return writeFile(path, func(f io.Writer) error { return tiff.Encode(f, img, nil) })
	default:
		return fmt.Errorf("rlottie: unsupported still image format %q", ext)
	}
}

// SaveAnimation renders a frame sequence and writes an animated image to
// path. Supported containers are .gif and .png/.apng.
//
// With no explicit WithFPS the animation's native frame rate is used, capped
// at 50 for .gif output. The output frame count is round(Duration*fps);
// WithFrameRange narrows that. Each output frame f maps through
// FrameAtPos(f/frameEnd) so retiming keeps the original pacing.
func (a *Animation) SaveAnimation(path string, opts ...SaveOption) error {
	o := applySaveOptions(opts)
	ext := strings.ToLower(filepath.Ext(path))

	fps := outputFPS(ext, a.FrameRate(), o.fps)
	if fps <= 0 {
		return fmt.Errorf("rlottie: animation reports no frame rate and none was given")
	}

	total := int(math.Round(a.Duration() * fps))
	start, end := 0, total
	if o.rangeSet {
		start, end = o.frameStart, o.frameEnd
	}
	if start >= end {
		return fmt.Errorf("rlottie: empty frame range [%d, %d)", start, end)
	}

	w, h := o.dims(a)
	frames := make([]*image.RGBA, 0, end-start)
	for f := start; f < end; f++ {
		pos := float64(f) / float64(end)
		img, err := a.FrameSized(a.FrameAtPos(pos), w, h)
		if err != nil {
			return err
		}
		frames = append(frames, img)
	}

	switch ext {
	case ".gif":
		return writeFile(path, func(f io.Writer) error { return encodeGIF(f, frames, fps, o) })
	case ".png", ".apng":
		return writeFile(path, func(f io.Writer) error { return encodeAPNG(f, frames, fps, o) })
	default:
		return fmt.Errorf("rlottie: unsupported animation format %q", ext)
	}
}

// outputFPS picks the effective export frame rate: an explicit rate always
// wins; otherwise the source rate, capped for GIF output.
func outputFPS(ext string, nativeFPS, explicitFPS float64) float64 {
	if explicitFPS > 0 {
		return explicitFPS
	}
	if ext == ".gif" && nativeFPS > gifMaxFPS {
		return gifMaxFPS
	}
	return nativeFPS
}

func encodeGIF(w io.Writer, frames []*image.RGBA, fps float64, o saveOptions) error {
	delay := int(math.Round(100 / fps)) // GIF delays are in 1/100ths of a second
	disposal := byte(gif.DisposalBackground)
	if o.disposalSet {
		disposal = o.disposal
	}

	g := &gif.GIF{LoopCount: o.loop}
	for _, frame := range frames {
		g.Image = append(g.Image, palettize(frame))
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, disposal)
	}
	return gif.EncodeAll(w, g)
}

// palettize quantizes an RGBA frame to a 256-color paletted image with
// Floyd-Steinberg dithering.
func palettize(src *image.RGBA) *image.Paletted {
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, src.Bounds(), src, image.Point{})
	return dst
}

func encodeAPNG(w io.Writer, frames []*image.RGBA, fps float64, o saveOptions) error {
	out := apng.APNG{LoopCount: uint(o.loop)}
	delay := uint16(math.Round(1000 / fps))
	for _, frame := range frames {
		out.Frames = append(out.Frames, apng.Frame{
			Image:            frame,
			DelayNumerator:   delay,
			DelayDenominator: 1000,
			DisposeOp:        apng.DISPOSE_OP_BACKGROUND,
		})
	}
	return apng.Encode(w, out)
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
