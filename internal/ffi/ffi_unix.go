//go:build darwin || linux || freebsd

package ffi

import (
	"github.com/ebitengine/purego"
)

// openLibrary loads a shared library on Unix-like systems
func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// closeLibrary releases a library handle previously returned by openLibrary
func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}
