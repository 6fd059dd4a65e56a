package ffi

import (
	"os"
	"path/filepath"
	"runtime"
)

// canonicalName returns the conventional rlottie library name for the
// current platform.
func canonicalName() string {
	switch runtime.GOOS {
	case "windows":
		return "rlottie.dll"
	case "darwin":
		return "librlottie.dylib"
	default:
		return "librlottie.so"
	}
}

// sharedSuffix returns the platform's shared-object file extension.
func sharedSuffix() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// searchNames returns every library name probed by the default search: the
// platform-canonical name first, then the cross product of known prefixes and
// shared-object suffixes, deduplicated in order.
func searchNames() []string {
	suffixes := []string{sharedSuffix()}
	for _, s := range []string{".so", ".dll", ".dylib"} {
		if s != suffixes[0] {
			suffixes = append(suffixes, s)
		}
	}

	names := []string{canonicalName()}
	seen := map[string]bool{names[0]: true}
	for _, prefix := range []string{"", "lib"} {
		for _, suffix := range suffixes {
			name := prefix + "rlottie" + suffix
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// tryOpen attempts to load the named library, preferring a copy found beside
// the running executable, then one in the working directory, before leaving
// resolution to the OS loader.
func tryOpen(name string) (uintptr, bool) {
	if exe, err := os.Executable(); err == nil {
		local := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(local); err == nil {
			if h, err := openLibrary(local); err == nil {
				return h, true
			}
		}
	}
	if _, err := os.Stat(name); err == nil {
		if abs, err := filepath.Abs(name); err == nil {
			if h, err := openLibrary(abs); err == nil {
				return h, true
			}
		}
	}
	h, err := openLibrary(name)
	if err != nil {
		return 0, false
	}
	return h, true
}

// Locate loads the rlottie shared library and returns its OS handle. An
// explicit path is tried exactly once and never reinterpreted; with no path
// the default search walks searchNames in order and stops at the first
// library that loads.
func Locate(explicitPath string) (uintptr, error) {
	if explicitPath != "" {
		h, err := openLibrary(explicitPath)
		if err != nil {
			return 0, &LoadError{Path: explicitPath, Err: err}
		}
		return h, nil
	}

	names := searchNames()
	for _, name := range names {
		if h, ok := tryOpen(name); ok {
			return h, nil
		}
	}
	return 0, &LoadError{Candidates: names}
}
