package ffi

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options steers library discovery. The zero value means full discovery
// driven by environment variables.
type Options struct {
	// Path names an exact library file and skips discovery entirely.
	// Falls back to the GLFW_LIBRARY environment variable.
	Path string
	// Variant selects the windowing-backend subdirectory on Linux
	// ("wayland" or "x11"). Falls back to GLFW_LIBRARY_VARIANT, then to
	// XDG_SESSION_TYPE, then to x11.
	Variant string
	// ExtraDirs are searched before the standard system directories.
	ExtraDirs []string
}

// baseNames are the historical sonames of the library, in priority order.
var baseNames = []string{"glfw", "glfw3"}

// matchCandidate reports whether basename plausibly names one of the
// libraries we are after. Packaging conventions vary (libglfw.so,
// libglfw.so.3.3, glfw.3.dylib, glfw3.dll), so after stripping an optional
// "lib" prefix and the base name, the remainder must be an accepted
// extension optionally followed by a dotted version, or a dotted version
// followed by an accepted extension.
func matchCandidate(basename string, names, exts []string) bool {
	for _, name := range names {
		var rest string
		switch {
		case strings.HasPrefix(basename, "lib"+name):
			rest = basename[len("lib"+name):]
		case strings.HasPrefix(basename, name):
			rest = basename[len(name):]
		default:
			continue
		}
		for _, ext := range exts {
			if strings.HasPrefix(rest, ext) {
				tail := rest[len(ext):]
				if tail == "" || (tail[0] == '.' && versionish(tail[1:])) {
					return true
				}
			} else if strings.HasSuffix(rest, ext) {
				if versionish(rest[:len(rest)-len(ext)]) {
					return true
				}
			}
		}
	}
	return false
}

func versionish(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// findCandidates globs every search directory for filenames matching the
// library naming conventions, deduplicated by symlink-resolved path so that
// libglfw.so and libglfw.so.3 pointing at the same file probe once.
func findCandidates(names, exts, dirs []string) []string {
	seen := make(map[string]bool)
	var candidates []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range names {
			matches, err := filepath.Glob(filepath.Join(dir, "*"+name+"*"))
			if err != nil {
				continue
			}
			for _, match := range matches {
				resolved, err := filepath.EvalSymlinks(match)
				if err != nil {
					continue
				}
				if seen[resolved] {
					continue
				}
				if !matchCandidate(filepath.Base(resolved), names, exts) {
					continue
				}
				seen[resolved] = true
				candidates = append(candidates, resolved)
			}
		}
	}
	return candidates
}

// systemDirs is the fixed table of directories native packages install
// into on the supported Unix-like systems.
var systemDirs = []string{
	"/usr/lib64",
	"/usr/local/lib64",
	"/usr/lib",
	"/usr/local/lib",
	"/opt/homebrew/lib",
	"/run/current-system/sw/lib",
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib/aarch64-linux-gnu",
	"/usr/lib/arm-linux-gnueabihf",
}

// searchDirs assembles the prioritized directory list: the executable's own
// directory (with its backend-variant subdirectory first when one applies),
// caller-supplied extras, the fixed system table, and the dynamic linker's
// search path variable.
func searchDirs(opts Options, goos string) []string {
	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		if variant := backendVariant(opts, goos); variant != "" {
			dirs = append(dirs, filepath.Join(exeDir, variant))
		}
		dirs = append(dirs, exeDir)
	}
	dirs = append(dirs, opts.ExtraDirs...)
	dirs = append(dirs, systemDirs...)

	pathVar := "LD_LIBRARY_PATH"
	if goos == "darwin" {
		pathVar = "DYLD_LIBRARY_PATH"
	}
	if v := os.Getenv(pathVar); v != "" {
		dirs = append(dirs, strings.Split(v, ":")...)
	}
	return dirs
}

// backendVariant picks the wayland or x11 library subdirectory on Linux.
// X11 is the default even when XDG_SESSION_TYPE is unset.
func backendVariant(opts Options, goos string) string {
	if goos != "linux" {
		return ""
	}
	variant := strings.ToLower(opts.Variant)
	if variant == "" {
		variant = strings.ToLower(os.Getenv("GLFW_LIBRARY_VARIANT"))
	}
	switch variant {
	case "wayland", "x11":
		return variant
	}
	if os.Getenv("XDG_SESSION_TYPE") == "wayland" {
		return "wayland"
	}
	return "x11"
}

type probeFunc func(path string) (Version, bool)

// selectBest probes every candidate, discards those below the minimum
// supported version, and returns the highest-versioned survivor.
func selectBest(candidates []string, probe probeFunc) (string, Version, bool) {
	type scored struct {
		path    string
		version Version
	}
	var valid []scored
	for _, path := range candidates {
		if version, ok := probe(path); ok && version.AtLeast(minVersion) {
			valid = append(valid, scored{path, version})
		}
	}
	if len(valid) == 0 {
		return "", Version{}, false
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].version.Compare(valid[j].version) < 0
	})
	best := valid[len(valid)-1]
	return best.path, best.version, true
}
