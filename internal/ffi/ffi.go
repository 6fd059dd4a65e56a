// Package ffi provides Go bindings to the rlottie C API via purego.
// The library is loaded with dlopen at runtime, eliminating the need for
// CGo and allowing the binding to cross-compile cleanly.
//
// The loaded library is a process-wide resource: all animation handles share
// one copy of the engine and, with it, one native model cache. Load, Shutdown
// and Unload must be externally serialized against each other; the in-between
// entry points are safe for use from a single goroutine per animation handle.
package ffi

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	libMu     sync.Mutex
	libHandle uintptr
	loaded    bool
)

// Library function pointers (populated by bindAll)
var (
	fnInit     func()
	fnShutdown func()

	fnAnimationFromFile func(path uintptr) uintptr
	fnAnimationFromData func(data uintptr, key uintptr, resourcePath uintptr) uintptr
	fnAnimationDestroy  func(anim uintptr)

	fnAnimationGetSize       func(anim uintptr, width uintptr, height uintptr)
	fnAnimationGetDuration   func(anim uintptr) float64
	fnAnimationGetTotalframe func(anim uintptr) uintptr
	fnAnimationGetFramerate  func(anim uintptr) float64
	fnAnimationGetFrameAtPos func(anim uintptr, pos float32) uintptr

	fnAnimationRender      func(anim uintptr, frame uintptr, buffer uintptr, width uintptr, height uintptr, bytesPerLine uintptr)
	fnAnimationRenderAsync func(anim uintptr, frame uintptr, buffer uintptr, width uintptr, height uintptr, bytesPerLine uintptr)
	fnAnimationRenderFlush func(anim uintptr) uintptr

	fnAnimationRenderTree    func(anim uintptr, frame uintptr, width uintptr, height uintptr) uintptr
	fnAnimationGetMarkerlist func(anim uintptr) uintptr

	fnConfigureModelCacheSize func(size uintptr)

	// lottie_animation_property_override is variadic, so its calling
	// contract depends on the call site. One signature is fixed per arity,
	// on first use.
	fnPropertyOverride1 func(anim uintptr, prop int32, keypath uintptr, v0 float64)
	fnPropertyOverride2 func(anim uintptr, prop int32, keypath uintptr, v0, v1 float64)
	fnPropertyOverride3 func(anim uintptr, prop int32, keypath uintptr, v0, v1, v2 float64)
)

// register binds one native routine, converting the registration panic for a
// missing symbol into a BindingError naming it.
func register(fptr any, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BindingError{Symbol: name, Detail: fmt.Sprint(r)}
		}
	}()
	purego.RegisterLibFunc(fptr, libHandle, name)
	return nil
}

func bindAll() error {
	bindings := []struct {
		fptr any
		name string
	}{
		{&fnInit, "lottie_init"},
		{&fnShutdown, "lottie_shutdown"},
		{&fnAnimationFromFile, "lottie_animation_from_file"},
		{&fnAnimationFromData, "lottie_animation_from_data"},
		{&fnAnimationDestroy, "lottie_animation_destroy"},
		{&fnAnimationGetSize, "lottie_animation_get_size"},
		{&fnAnimationGetDuration, "lottie_animation_get_duration"},
		{&fnAnimationGetTotalframe, "lottie_animation_get_totalframe"},
		{&fnAnimationGetFramerate, "lottie_animation_get_framerate"},
		{&fnAnimationGetFrameAtPos, "lottie_animation_get_frame_at_pos"},
		{&fnAnimationRender, "lottie_animation_render"},
		{&fnAnimationRenderAsync, "lottie_animation_render_async"},
		{&fnAnimationRenderFlush, "lottie_animation_render_flush"},
		{&fnAnimationRenderTree, "lottie_animation_render_tree"},
		{&fnAnimationGetMarkerlist, "lottie_animation_get_markerlist"},
		{&fnConfigureModelCacheSize, "lottie_configure_model_cache_size"},
	}
	for _, b := range bindings {
		if err := register(b.fptr, b.name); err != nil {
			return err
		}
	}
	return nil
}

// Load makes sure the rlottie library is loaded and every entry point is
// bound. An empty path selects the default platform search; a non-empty path
// is tried exactly once with no fallback. The first successful Load wins for
// the process; later calls are no-ops regardless of path.
//
// After loading, the native init hook runs once and the model cache is
// disabled, so that handles constructed against this library instance do not
// silently share previously parsed documents.
func Load(path string) error {
	libMu.Lock()
	defer libMu.Unlock()
	if loaded {
		return nil
	}

	h, err := Locate(path)
	if err != nil {
		return err
	}
	libHandle = h
	if err := bindAll(); err != nil {
		closeLibrary(libHandle)
		libHandle = 0
		return err
	}

	fnInit()
	fnConfigureModelCacheSize(0)
	loaded = true
	return nil
}

// Shutdown runs the native teardown hook. Every animation handle created
// against the library must already be destroyed: shutting down with live
// handles is undefined behaviour in the native layer.
func Shutdown() {
	libMu.Lock()
	defer libMu.Unlock()
	if loaded {
		fnShutdown()
	}
}

// Unload shuts the library down and releases the OS handle. A later Load
// starts a fresh library instance, and with it a fresh native model cache.
// The same handle-destruction ordering as Shutdown applies.
func Unload() error {
	libMu.Lock()
	defer libMu.Unlock()
	if !loaded {
		return nil
	}
	fnShutdown()
	err := closeLibrary(libHandle)
	libHandle = 0
	loaded = false
	fnPropertyOverride1 = nil
	fnPropertyOverride2 = nil
	fnPropertyOverride3 = nil
	return err
}

// cString returns s as a NUL-terminated byte slice for handing to native code.
func cString(s string) []byte {
	return append([]byte(s), 0)
}

// AnimationFromFile constructs a native animation handle from a JSON file
// path. The returned handle is 0 when the native parser rejects the file.
func AnimationFromFile(path string) uintptr {
	p := cString(path)
	h := fnAnimationFromFile(uintptr(unsafe.Pointer(&p[0])))
	runtime.KeepAlive(p)
	return h
}

// AnimationFromData constructs a native animation handle from in-memory
// JSON. All three buffers must be NUL-terminated and must stay alive for as
// long as the handle does; the caller owns that guarantee.
func AnimationFromData(data, key, resourcePath []byte) uintptr {
	return fnAnimationFromData(
		uintptr(unsafe.Pointer(&data[0])),
		uintptr(unsafe.Pointer(&key[0])),
		uintptr(unsafe.Pointer(&resourcePath[0])),
	)
}

// AnimationDestroy frees the native animation handle.
func AnimationDestroy(anim uintptr) {
	fnAnimationDestroy(anim)
}

// AnimationGetSize returns the animation's default viewport in pixels.
func AnimationGetSize(anim uintptr) (width, height int) {
	var w, h uintptr
	fnAnimationGetSize(anim, uintptr(unsafe.Pointer(&w)), uintptr(unsafe.Pointer(&h)))
	return int(w), int(h)
}

// AnimationGetDuration returns the total animation duration in seconds.
func AnimationGetDuration(anim uintptr) float64 {
	return fnAnimationGetDuration(anim)
}

// AnimationGetTotalframe returns the number of frames in the animation.
func AnimationGetTotalframe(anim uintptr) int {
	return int(fnAnimationGetTotalframe(anim))
}

// AnimationGetFramerate returns the animation's default frame rate.
func AnimationGetFramerate(anim uintptr) float64 {
	return fnAnimationGetFramerate(anim)
}

// AnimationGetFrameAtPos maps a position in [0, 1] onto a frame number. The
// mapping is owned entirely by the native engine.
func AnimationGetFrameAtPos(anim uintptr, pos float64) int {
	return int(fnAnimationGetFrameAtPos(anim, float32(pos)))
}

// AnimationRender draws frame synchronously into buf, which must hold at
// least bytesPerLine*height bytes. The surface is BGRA ordered.
func AnimationRender(anim uintptr, frame int, buf []byte, width, height, bytesPerLine int) {
	fnAnimationRender(anim, uintptr(frame), uintptr(unsafe.Pointer(&buf[0])),
		uintptr(width), uintptr(height), uintptr(bytesPerLine))
}

// AnimationRenderAsync submits frame for rendering into buf and returns
// without waiting. The native worker keeps writing into buf until the next
// AnimationRenderFlush, so the caller must retain buf until then.
func AnimationRenderAsync(anim uintptr, frame int, buf []byte, width, height, bytesPerLine int) {
	fnAnimationRenderAsync(anim, uintptr(frame), uintptr(unsafe.Pointer(&buf[0])),
		uintptr(width), uintptr(height), uintptr(bytesPerLine))
}

// AnimationRenderFlush blocks until the outstanding async render for anim
// has completed.
func AnimationRenderFlush(anim uintptr) {
	fnAnimationRenderFlush(anim)
}

// AnimationRenderTree snapshots the scene graph at frame and returns a
// host-owned copy. The native memory backing the snapshot is reused by the
// next render-tree call, so everything is copied out eagerly.
func AnimationRenderTree(anim uintptr, frame, width, height int) *LayerNode {
	ptr := fnAnimationRenderTree(anim, uintptr(frame), uintptr(width), uintptr(height))
	return SnapshotLayer(ptr)
}

// AnimationGetMarkerlist copies the animation's marker list. ok is false when
// the native pointer is null, which is how the engine reports a document that
// declares no markers.
func AnimationGetMarkerlist(anim uintptr) (markers []Marker, ok bool) {
	return SnapshotMarkers(fnAnimationGetMarkerlist(anim))
}

// ConfigureModelCacheSize sets the native model cache budget in bytes. The
// effect is library-wide, not per handle. Zero disables the cache and
// flushes previously cached content.
func ConfigureModelCacheSize(size int) {
	fnConfigureModelCacheSize(uintptr(size))
}

// PropertyOverride forwards a keypath property override to the native
// engine. values must already match the property kind's arity; the caller
// validates that before any native state is touched.
func PropertyOverride(anim uintptr, prop int32, keypath string, values ...float64) error {
	libMu.Lock()
	defer libMu.Unlock()
	if !loaded {
		return fmt.Errorf("rlottie: library not loaded")
	}

	kp := cString(keypath)
	kpPtr := uintptr(unsafe.Pointer(&kp[0]))

	switch len(values) {
	case 1:
		if fnPropertyOverride1 == nil {
			if err := register(&fnPropertyOverride1, "lottie_animation_property_override"); err != nil {
				return err
			}
		}
		fnPropertyOverride1(anim, prop, kpPtr, values[0])
	case 2:
		if fnPropertyOverride2 == nil {
			if err := register(&fnPropertyOverride2, "lottie_animation_property_override"); err != nil {
				return err
			}
		}
		fnPropertyOverride2(anim, prop, kpPtr, values[0], values[1])
	case 3:
		if fnPropertyOverride3 == nil {
			if err := register(&fnPropertyOverride3, "lottie_animation_property_override"); err != nil {
				return err
			}
		}
		fnPropertyOverride3(anim, prop, kpPtr, values[0], values[1], values[2])
	default:
		return fmt.Errorf("rlottie: property override supports 1 to 3 values, got %d", len(values))
	}
	runtime.KeepAlive(kp)
	return nil
}
