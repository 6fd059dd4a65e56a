// Package rlottie renders Lottie vector animations through the rlottie
// shared library. The library is located and loaded at runtime with purego,
// so the package needs no CGo and no link-time dependency; it only requires
// librlottie to be present on the target machine.
//
// An Animation owns exactly one native handle. Construct it with NewFromFile,
// NewFromData or NewFromTGS, and release it with Close; a finalizer backs
// Close up, but deterministic release is the caller's job. An Animation is
// not safe for concurrent use; separate Animations may be used from separate
// goroutines for read-only queries.
package rlottie

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rlottie-go/rlottie/internal/ffi"
)

// Re-exports of the snapshot types produced by RenderTree and Markers.
type (
	LayerNode    = ffi.LayerNode
	PaintNode    = ffi.PaintNode
	Mask         = ffi.Mask
	Path         = ffi.Path
	Stroke       = ffi.Stroke
	Gradient     = ffi.Gradient
	GradientStop = ffi.GradientStop
	ImageInfo    = ffi.ImageInfo
	Matrix       = ffi.Matrix
	Point        = ffi.Point
	Color        = ffi.Color
	Marker       = ffi.Marker
)

// Animation is one loaded animation document backed by a native rlottie
// handle. The zero value is not usable; use one of the constructors.
type Animation struct {
	handle uintptr

	// Buffers handed to the native in-memory loader. The parsed document
	// keeps referencing them, so they live until the handle is destroyed.
	data         []byte
	cacheKey     []byte
	resourcePath []byte

	// Surface retained between RenderAsync and RenderFlush. The native
	// worker writes into it after RenderAsync returns.
	asyncBuf []byte

	closed bool
}

// Option configures animation construction.
type Option func(*options)

type options struct {
	keySize      int
	resourcePath string
	libraryPath  string
}

// WithKeySize sets the size in bytes of the cache key buffer the native
// engine uses to deduplicate repeated parses of identical documents.
// Defaults to the size of the JSON data.
func WithKeySize(n int) Option {
	return func(o *options) { o.keySize = n }
}

// WithResourcePath sets the directory used to resolve external resources
// referenced by the animation, such as image assets. It is resolved to an
// absolute path. The default, an empty path, disables external lookup.
func WithResourcePath(dir string) Option {
	return func(o *options) { o.resourcePath = dir }
}

// WithLibraryPath loads the rlottie shared library from an explicit location
// instead of the default platform search. The library is process-wide, so
// this only has an effect on the first animation constructed.
func WithLibraryPath(path string) Option {
	return func(o *options) { o.libraryPath = path }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFromFile constructs an animation from a Lottie JSON file. The path is
// resolved to an absolute path and must exist.
//
// Native parse failures are opaque to the binding: if the engine rejects the
// document it hands back a degenerate handle, and later calls fail against
// that rather than here.
func NewFromFile(path string, opts ...Option) (*Animation, error) {
	o := applyOptions(opts)
	if err := ffi.Load(o.libraryPath); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &NotFoundError{Path: abs}
	}

	a := &Animation{handle: ffi.AnimationFromFile(abs)}
	runtime.SetFinalizer(a, (*Animation).finalize)
	return a, nil
}

// NewFromData constructs an animation from in-memory Lottie JSON. The data,
// the cache key buffer and the resource path are retained on the Animation
// for its whole lifetime: the native engine reads them past this call, and
// the cache key stays referenced by later renders of the cached parse.
func NewFromData(data string, opts ...Option) (*Animation, error) {
	o := applyOptions(opts)
	if err := ffi.Load(o.libraryPath); err != nil {
		return nil, err
	}

	a := &Animation{data: append([]byte(data), 0)}

	keySize := len(a.data)
	if o.keySize > 0 {
		keySize = o.keySize
	}
	a.cacheKey = make([]byte, keySize+1)

	resourcePath := ""
	if o.resourcePath != "" {
		abs, err := filepath.Abs(o.resourcePath)
		if err != nil {
			return nil, err
		}
		resourcePath = abs
	}
	a.resourcePath = append([]byte(resourcePath), 0)

	a.handle = ffi.AnimationFromData(a.data, a.cacheKey, a.resourcePath)
	runtime.SetFinalizer(a, (*Animation).finalize)
	return a, nil
}

// NewFromTGS constructs an animation from a gzip-compressed Lottie file
// (the .tgs container used by Telegram stickers). The file is decompressed
// fully and handed to the in-memory loader.
func NewFromTGS(path string, opts ...Option) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("rlottie: %s is not gzip compressed: %w", path, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("rlottie: decompressing %s: %w", path, err)
	}
	return NewFromData(string(data), opts...)
}

// Close destroys the native handle and releases the held backing buffers.
// Close is idempotent: calls after the first are no-ops and make no native
// call.
func (a *Animation) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	runtime.SetFinalizer(a, nil)

	if a.handle != 0 {
		ffi.AnimationDestroy(a.handle)
		a.handle = 0
	}
	a.data = nil
	a.cacheKey = nil
	a.resourcePath = nil
	a.asyncBuf = nil
	return nil
}

func (a *Animation) finalize() {
	a.Close()
}

// Size returns the animation's default viewport in pixels.
func (a *Animation) Size() (width, height int) {
	if a.closed {
		return 0, 0
	}
	return ffi.AnimationGetSize(a.handle)
}

// Duration returns the total animation duration in seconds.
func (a *Animation) Duration() float64 {
	if a.closed {
		return 0
	}
	return ffi.AnimationGetDuration(a.handle)
}

// TotalFrame returns the number of frames in the animation. Valid frame
// numbers are in [0, TotalFrame).
func (a *Animation) TotalFrame() int {
	if a.closed {
		return 0
	}
	return ffi.AnimationGetTotalframe(a.handle)
}

// FrameRate returns the animation's default frame rate in frames per second.
func (a *Animation) FrameRate() float64 {
	if a.closed {
		return 0
	}
	return ffi.AnimationGetFramerate(a.handle)
}

// FrameAtPos maps a position in [0.0, 1.0] onto a frame number between the
// animation's start and end frames. The mapping is monotonic and owned
// entirely by the native engine.
func (a *Animation) FrameAtPos(pos float64) int {
	if a.closed {
		return 0
	}
	return ffi.AnimationGetFrameAtPos(a.handle, pos)
}

// Render draws frame synchronously into a fresh BGRA surface sized to the
// animation's viewport. Each call returns a newly allocated buffer.
func (a *Animation) Render(frame int) ([]byte, error) {
	w, h := a.Size()
	return a.RenderSized(frame, w, h, 0)
}

// RenderSized draws frame synchronously into a width x height BGRA surface.
// A stride of 0 defaults to width*4 bytes per row.
func (a *Animation) RenderSized(frame, width, height, stride int) ([]byte, error) {
	if a.closed {
		return nil, errClosed
	}
	if stride <= 0 {
		stride = width * 4
	}
	buf := make([]byte, stride*height)
	ffi.AnimationRender(a.handle, frame, buf, width, height, stride)
	return buf, nil
}

// RenderAsync submits frame for asynchronous rendering into a surface sized
// to the animation's viewport and returns without blocking. The surface is
// retained on the Animation until the matching RenderFlush. Submitting a
// second render before flushing the first is an error: the native worker
// would overwrite the retained surface mid-flight.
func (a *Animation) RenderAsync(frame int) error {
	w, h := a.Size()
	return a.RenderAsyncSized(frame, w, h, 0)
}

// RenderAsyncSized is RenderAsync with explicit surface dimensions. A stride
// of 0 defaults to width*4.
func (a *Animation) RenderAsyncSized(frame, width, height, stride int) error {
	if a.closed {
		return errClosed
	}
	if a.asyncBuf != nil {
		return errAsyncPending
	}
	if stride <= 0 {
		stride = width * 4
	}
	buf := make([]byte, stride*height)
	a.asyncBuf = buf
	ffi.AnimationRenderAsync(a.handle, frame, buf, width, height, stride)
	return nil
}

// RenderFlush blocks until the outstanding async render completes, then
// returns the finished surface and releases the retained slot. Calling it
// with no prior RenderAsync fails with *NoPendingRenderError.
func (a *Animation) RenderFlush() ([]byte, error) {
	if a.closed {
		return nil, errClosed
	}
	if a.asyncBuf == nil {
		return nil, &NoPendingRenderError{}
	}
	ffi.AnimationRenderFlush(a.handle)
	buf := a.asyncBuf
	a.asyncBuf = nil
	return buf, nil
}

// RenderTree snapshots the scene graph at frame with the animation's default
// viewport. The returned tree is fully copied out of native memory; it stays
// valid across later calls.
func (a *Animation) RenderTree(frame int) (*LayerNode, error) {
	w, h := a.Size()
	return a.RenderTreeSized(frame, w, h)
}

// RenderTreeSized is RenderTree with an explicit snapshot viewport.
func (a *Animation) RenderTreeSized(frame, width, height int) (*LayerNode, error) {
	if a.closed {
		return nil, errClosed
	}
	return ffi.AnimationRenderTree(a.handle, frame, width, height), nil
}

// Markers returns the named frame segments declared by the animation. ok is
// false when the document declares none; that is a valid result, not an
// error.
func (a *Animation) Markers() (markers []Marker, ok bool) {
	if a.closed {
		return nil, false
	}
	return ffi.AnimationGetMarkerlist(a.handle)
}

// PropertyOverride changes a property of every object the keypath addresses.
// The value count must match the property kind's arity exactly; a mismatch
// or an unknown kind fails with *InvalidPropertyError before any native call
// is made.
func (a *Animation) PropertyOverride(prop Property, keypath string, values ...float64) error {
	arity, known := propertyArity[prop]
	if !known || len(values) != arity {
		return &InvalidPropertyError{Property: prop, Values: len(values)}
	}
	if a.closed {
		return errClosed
	}
	return ffi.PropertyOverride(a.handle, int32(prop), keypath, values...)
}

// ConfigureModelCacheSize sets the native model cache budget in bytes. The
// cache is shared by every Animation using the loaded library, so the effect
// is process-wide, not per instance. A size of 0 disables the cache and
// flushes previously cached content.
func ConfigureModelCacheSize(bytes int) error {
	if err := ffi.Load(""); err != nil {
		return err
	}
	ffi.ConfigureModelCacheSize(bytes)
	return nil
}

// Unload tears the native library down and releases it from the process.
// Every Animation must be closed first; tearing down with live handles is
// undefined behaviour in the native layer. The next construction reloads the
// library, starting a fresh engine instance with an empty model cache.
func Unload() error {
	return ffi.Unload()
}
