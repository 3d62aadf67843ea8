//go:build windows

package native

import "errors"

var errUnsupported = errors.New("native: dynamic library probing is not supported on windows")

func dlopen(path string) (uintptr, error) {
	return 0, errUnsupported
}

func dlclose(handle uintptr) error {
	return errUnsupported
}

func (l *Library) lookup(name string) (uintptr, error) {
	return 0, errUnsupported
}
