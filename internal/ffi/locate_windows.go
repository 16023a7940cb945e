//go:build windows

package ffi

import (
	"os"
	"path/filepath"
	"runtime"
)

// Load resolves glfw3.dll through a fixed fallback chain: the default
// loader search order, a copy bundled next to the executable (preceded by
// its MSVC runtime redistributable), then a conda install prefix. The
// default order is reliable on Windows, so no probing child is used here.
func Load(opts Options) (*Lib, string, error) {
	path := opts.Path
	if path == "" {
		path = os.Getenv("GLFW_LIBRARY")
	}
	if path != "" {
		lib, err := open(path)
		return lib, path, err
	}

	if lib, err := open("glfw3.dll"); err == nil {
		return lib, "glfw3.dll", nil
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		// The bundled DLL links against the MSVC runtime; pull it in first
		// so the subsequent load does not fail on a bare machine.
		msvcr := "msvcr110.dll"
		if runtime.GOARCH == "386" {
			msvcr = "msvcr100.dll"
		}
		_, _ = openLibrary(filepath.Join(exeDir, msvcr))
		bundled := filepath.Join(exeDir, "glfw3.dll")
		if lib, err := open(bundled); err == nil {
			return lib, bundled, nil
		}
	}

	if prefix := os.Getenv("CONDA_PREFIX"); prefix != "" {
		conda := filepath.Join(prefix, "Library", "bin", "glfw3.dll")
		if lib, err := open(conda); err == nil {
			return lib, conda, nil
		}
	}

	return nil, "", ErrNotFound
}
