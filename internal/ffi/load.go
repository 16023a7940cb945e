package ffi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ebitengine/purego"
)

// ErrNotFound is returned by Load when no acceptable library file exists on
// the search path. Callers surface it once, at the point the call table is
// first needed.
var ErrNotFound = errors.New("ffi: no suitable GLFW library found")

// minVersion is the oldest major version family the binding supports.
var minVersion = Version{3, 0, 0}

// Version is a GLFW version triple as reported by glfwGetVersion.
type Version struct {
	Major, Minor, Rev int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Rev)
}

func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return v.Major - o.Major
	case v.Minor != o.Minor:
		return v.Minor - o.Minor
	default:
		return v.Rev - o.Rev
	}
}

// ParseVersion parses "major.minor.rev" as printed by the probe child.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("ffi: malformed version %q", s)
	}
	var v Version
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Rev} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("ffi: malformed version %q: %w", s, err)
		}
		*dst = n
	}
	return v, nil
}

// open loads the library file at path and binds the full call table.
func open(path string) (*Lib, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("ffi: load %s: %w", path, err)
	}
	lib := new(Lib)
	if err := bind(handle, lib); err != nil {
		return nil, fmt.Errorf("ffi: load %s: %w", path, err)
	}
	return lib, nil
}

// register resolves one symbol through purego, converting its missing-symbol
// panic into an error the bind loop can act on.
func register(fptr any, handle uintptr, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	purego.RegisterLibFunc(fptr, handle, name)
	return nil
}

// libVersion queries an already-loaded library for its version triple.
func libVersion(handle uintptr) (Version, error) {
	var getVersion func(major, minor, rev uintptr)
	if err := register(&getVersion, handle, "glfwGetVersion"); err != nil {
		return Version{}, err
	}
	var major, minor, rev int32
	getVersion(Ptr(&major), Ptr(&minor), Ptr(&rev))
	return Version{int(major), int(minor), int(rev)}, nil
}
