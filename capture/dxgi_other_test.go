//go:build !windows

package capture

import (
	"errors"
	"testing"
)

func TestNew_DXGIUnsupported(t *testing.T) {
	if _, err := New(KindDXGI); !errors.Is(err, errors.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
