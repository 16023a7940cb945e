package ffi

import "unsafe"

// GoString copies a NUL-terminated C string into a Go string. A zero pointer
// yields "".
func GoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(length)))
		if b == 0 {
			break
		}
		length++
		if length > 1<<20 { // unterminated input guard
			break
		}
	}
	if length == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}

// GoStrings copies a C array of count C string pointers, as handed to the
// file drop callback.
func GoStrings(ptr uintptr, count int) []string {
	if ptr == 0 || count <= 0 {
		return nil
	}
	raw := unsafe.Slice((*uintptr)(unsafe.Pointer(ptr)), count)
	out := make([]string, count)
	for i, p := range raw {
		out[i] = GoString(p)
	}
	return out
}

// Ptr converts a Go pointer into the uintptr form the call table expects for
// native output parameters. The pointed-to value must stay alive across the
// native call; keeping the conversion at the call site guarantees that.
func Ptr[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}
