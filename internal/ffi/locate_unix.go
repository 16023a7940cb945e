//go:build darwin || linux || freebsd

package ffi

import (
	"fmt"
	"log"
	"os"
	"runtime"
)

// Load finds, verifies and loads the native library, returning the bound
// call table and the path that won. Intended to run exactly once per
// process; the resulting handle lives for the remainder of it.
func Load(opts Options) (*Lib, string, error) {
	path := opts.Path
	if path == "" {
		path = os.Getenv("GLFW_LIBRARY")
	}
	if path != "" {
		// Exact override: no searching, no probing, no basename checks.
		lib, err := open(path)
		return lib, path, err
	}

	exts := []string{".so"}
	if runtime.GOOS == "darwin" {
		exts = []string{".dylib"}
	}
	candidates := findCandidates(baseNames, exts, searchDirs(opts, runtime.GOOS))
	if len(candidates) == 0 {
		return nil, "", ErrNotFound
	}
	best, version, ok := selectBest(candidates, probeAll(candidates))
	if !ok {
		return nil, "", fmt.Errorf("%w (probed %d candidates)", ErrNotFound, len(candidates))
	}
	log.Printf("ffi: loading %s (GLFW %s)", best, version)
	lib, err := open(best)
	return lib, best, err
}
