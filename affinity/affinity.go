// Package affinity sets and clears the "exclude from capture" display
// affinity of a window.
package affinity

import (
	"fmt"

	"github.com/rs/zerolog"
)

const (
	WDA_NONE               = 0x00000000
	WDA_MONITOR            = 0x00000001
	WDA_EXCLUDEFROMCAPTURE = 0x00000011
)

// Name returns the WDA_ constant name of an affinity value.
func Name(a uint32) string {
	switch a {
	case WDA_NONE:
		return "WDA_NONE"
	case WDA_MONITOR:
		return "WDA_MONITOR"
	case WDA_EXCLUDEFROMCAPTURE:
		return "WDA_EXCLUDEFROMCAPTURE"
	default:
		return fmt.Sprintf("WDA(%#x)", a)
	}
}

// For maps a protection intent to its affinity flag.
func For(enable bool) uint32 {
	if enable {
		return WDA_EXCLUDEFROMCAPTURE
	}
	return WDA_NONE
}

// System is the windowing system side of the display affinity calls.
type System interface {
	SetWindowDisplayAffinity(hWnd Handle, dwAffinity uint32) error
	GetWindowDisplayAffinity(hWnd Handle) (uint32, error)
}

type Setter struct {
	sys System
	log zerolog.Logger
}

type Option func(*Setter)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Setter) {
		s.log = l
	}
}

func New(sys System, opts ...Option) *Setter {
	s := &Setter{sys: sys, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Default returns a Setter backed by the running platform.
func Default(opts ...Option) *Setter {
	return New(Native(), opts...)
}

// SetCaptureProtection decodes handle and excludes the window from screen
// capture when enable is true, or restores normal capture otherwise.
// A malformed handle is the only error; a refused or stale window yields
// false.
func (s *Setter) SetCaptureProtection(handle []byte, enable bool) (bool, error) {
	h, err := DecodeHandle(handle)
	if err != nil {
		return false, err
	}
	return s.Apply(h, enable) == nil, nil
}

// Invoke is the untyped entry used by embedding hosts: args must be exactly
// a handle buffer and a bool.
func (s *Setter) Invoke(args ...any) (bool, error) {
	if len(args) < 2 {
		return false, &ArgumentError{Index: len(args), Reason: "expected handle buffer and boolean"}
	}
	buf, ok := args[0].([]byte)
	if !ok {
		return false, &ArgumentError{Index: 0, Reason: fmt.Sprintf("expected handle buffer, got %T", args[0])}
	}
	enable, ok := args[1].(bool)
	if !ok {
		return false, &ArgumentError{Index: 1, Reason: fmt.Sprintf("expected boolean, got %T", args[1])}
	}
	return s.SetCaptureProtection(buf, enable)
}

// Apply is SetCaptureProtection on a decoded handle, keeping the failure
// detail as an *OperationError.
func (s *Setter) Apply(h Handle, enable bool) error {
	return s.Set(h, For(enable))
}

// Set applies any of the WDA_ values.
func (s *Setter) Set(h Handle, a uint32) error {
	switch a {
	case WDA_NONE, WDA_MONITOR, WDA_EXCLUDEFROMCAPTURE:
	default:
		return &ArgumentError{Index: 1, Reason: fmt.Sprintf("unknown affinity %#x", a)}
	}

	err := s.sys.SetWindowDisplayAffinity(h, a)
	if err != nil {
		s.log.Debug().
			Stringer("hwnd", h).
			Str("affinity", Name(a)).
			Err(err).
			Msg("SetWindowDisplayAffinity failed")
		return &OperationError{Handle: h, Affinity: a, Err: err}
	}

	s.log.Debug().
		Stringer("hwnd", h).
		Str("affinity", Name(a)).
		Msg("display affinity set")
	return nil
}

// Get reads the current affinity of h.
func (s *Setter) Get(h Handle) (uint32, error) {
	a, err := s.sys.GetWindowDisplayAffinity(h)
	if err != nil {
		return 0, fmt.Errorf("get display affinity of %s: %w", h, err)
	}
	return a, nil
}

// Protected reports whether h is hidden from capture in any way.
func (s *Setter) Protected(h Handle) (bool, error) {
	a, err := s.Get(h)
	if err != nil {
		return false, err
	}
	return a != WDA_NONE, nil
}
