package rlottie

import (
	"errors"
	"fmt"

	"github.com/rlottie-go/rlottie/internal/ffi"
)

// LoadError reports that the rlottie shared library could not be located or
// loaded. This is a re-export of ffi.LoadError for consumer convenience.
type LoadError = ffi.LoadError

// BindingError reports a native symbol missing from the loaded library,
// meaning the library's API version does not match this binding.
type BindingError = ffi.BindingError

// NotFoundError reports an animation file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "rlottie: cannot find file " + e.Path
}

// InvalidPropertyError reports a property override with an unknown property
// kind or a value count that does not match the kind's arity. The override
// fails before any native state is touched.
type InvalidPropertyError struct {
	Property Property
	Values   int
}

func (e *InvalidPropertyError) Error() string {
	if _, ok := propertyArity[e.Property]; !ok {
		return fmt.Sprintf("rlottie: unknown property kind %d", int(e.Property))
	}
	return fmt.Sprintf("rlottie: property %s takes %d values, got %d",
		e.Property, propertyArity[e.Property], e.Values)
}

// NoPendingRenderError reports a RenderFlush with no outstanding RenderAsync.
type NoPendingRenderError struct{}

func (e *NoPendingRenderError) Error() string {
	return "rlottie: render flush without a pending async render"
}

// errClosed guards every native call against use after Close.
var errClosed = errors.New("rlottie: animation is closed")

// errAsyncPending rejects a second async submit before the first is flushed;
// the native worker would overwrite the retained surface mid-flight.
var errAsyncPending = errors.New("rlottie: async render already pending")
