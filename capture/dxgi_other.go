//go:build !windows

package capture

import (
	"errors"
	"fmt"
)

func newDuplicator() (Backend, error) {
	return nil, fmt.Errorf("%s capture: %w", KindDXGI, errors.ErrUnsupported)
}
