//go:build windows

package ffi

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var winDLL *windows.DLL

// openLibrary loads the rlottie DLL and returns its module handle.
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	winDLL = dll
	// Symbol registration wants the raw HMODULE; the DLL struct itself
	// stays on winDLL for closeLibrary.
	return uintptr(dll.Handle), nil
}

// closeLibrary frees the module handle returned by openLibrary.
func closeLibrary(handle uintptr) error {
	if winDLL != nil && uintptr(winDLL.Handle) == handle {
		winDLL = nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}
