//go:build !windows

package native

import (
	"fmt"

	"github.com/ebitengine/purego"
)

func dlopen(path string) (uintptr, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("native: load %s: %w", path, err)
	}
	return handle, nil
}

func dlclose(handle uintptr) error {
	return purego.Dlclose(handle)
}

func (l *Library) lookup(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil || addr == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return addr, nil
}
