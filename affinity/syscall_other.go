//go:build !windows

package affinity

import (
	"errors"
	"fmt"
)

type nativeSystem struct{}

// Native returns a System that refuses every call: display affinity only
// exists on Windows.
func Native() System {
	return nativeSystem{}
}

func (nativeSystem) SetWindowDisplayAffinity(Handle, uint32) error {
	return fmt.Errorf("display affinity: %w", errors.ErrUnsupported)
}

func (nativeSystem) GetWindowDisplayAffinity(Handle) (uint32, error) {
	return 0, fmt.Errorf("display affinity: %w", errors.ErrUnsupported)
}
