package ffi

import (
	"fmt"
	"strings"
)

// LoadError reports that the rlottie shared library could not be loaded. When
// an explicit path was requested, Path names it and no fallback search is
// attempted; otherwise Candidates lists every library name the default search
// probed.
type LoadError struct {
	Path       string
	Candidates []string
	Err        error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("rlottie: failed to load library from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("rlottie: could not find library (tried %s)", strings.Join(e.Candidates, ", "))
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// BindingError reports a native entry point that could not be resolved from
// the loaded library. This means the library on disk does not match the API
// version this binding was written against.
type BindingError struct {
	Symbol string
	Detail string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("rlottie: missing native symbol %s: %s", e.Symbol, e.Detail)
}
