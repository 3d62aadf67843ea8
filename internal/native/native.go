// Package native loads OpenSSL-compatible shared libraries at runtime and
// resolves entry points from them by name.
//
// All foreign calls declare their Go signatures explicitly through purego;
// relying on default marshaling is unsafe for pointer and string returns.
// The declared entry points are:
//
//	OpenSSL_version(int) -> char*
//	SSLeay_version(int) -> char*
//	EC_KEY_new_by_curve_name(int) -> void*
//	EC_KEY_free(void*) -> void
//	RAND_bytes(void*, int) -> int
package native

import (
	"errors"
	"unsafe"

	"github.com/ebitengine/purego"
)

// ErrNotFound reports that an entry point is absent from a loaded library.
var ErrNotFound = errors.New("native: symbol not found")

// Library is an open handle to a dynamically loaded shared library.
// A Library is valid only if Open succeeded; it is owned by the scan
// iteration that created it and is reclaimed at process exit unless Close
// is called.
type Library struct {
	handle uintptr
	path   string
}

// Open loads the shared library at path.
func Open(path string) (*Library, error) {
	handle, err := dlopen(path)
	if err != nil {
		return nil, err
	}
	return &Library{handle: handle, path: path}, nil
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string { return l.path }

// Close unloads the library. Safe to call on a zero handle.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := dlclose(l.handle)
	l.handle = 0
	return err
}

// Symbol resolves the named entry point without invoking it.
// Returns ErrNotFound (wrapped) when the symbol is absent.
func (l *Library) Symbol(name string) error {
	_, err := l.lookup(name)
	return err
}

// Version invokes the named version-reporting entry point with the given
// selector and returns the reported text. The entry point must have the
// signature `char *f(int)`.
func (l *Library) Version(entry string, selector int32) (string, error) {
	if _, err := l.lookup(entry); err != nil {
		return "", err
	}
	var versionText func(int32) string
	purego.RegisterLibFunc(&versionText, l.handle, entry)
	return versionText(selector), nil
}

// NewKeyByCurve invokes EC_KEY_new_by_curve_name with the given curve NID
// and returns the raw key handle, zero when the curve is unsupported.
func (l *Library) NewKeyByCurve(nid int32) (uintptr, error) {
	const entry = "EC_KEY_new_by_curve_name"
	if _, err := l.lookup(entry); err != nil {
		return 0, err
	}
	var newKey func(int32) uintptr
	purego.RegisterLibFunc(&newKey, l.handle, entry)
	return newKey(nid), nil
}

// FreeKey releases a key handle obtained from NewKeyByCurve via EC_KEY_free.
func (l *Library) FreeKey(key uintptr) error {
	const entry = "EC_KEY_free"
	if _, err := l.lookup(entry); err != nil {
		return err
	}
	var freeKey func(uintptr)
	purego.RegisterLibFunc(&freeKey, l.handle, entry)
	freeKey(key)
	return nil
}

// RandBytes fills buf via RAND_bytes and returns the native status code.
// The library reports success with status 1.
func (l *Library) RandBytes(buf []byte) (int32, error) {
	const entry = "RAND_bytes"
	if _, err := l.lookup(entry); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		return 0, errors.New("native: empty buffer")
	}
	var randBytes func(unsafe.Pointer, int32) int32
	purego.RegisterLibFunc(&randBytes, l.handle, entry)
	return randBytes(unsafe.Pointer(&buf[0]), int32(len(buf))), nil
}
