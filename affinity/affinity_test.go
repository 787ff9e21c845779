package affinity

import (
	"errors"
	"syscall"
	"testing"
)

type call struct {
	h Handle
	a uint32
}

// fakeSystem keeps one affinity per known window. Unknown handles fail the
// way a stale HWND does.
type fakeSystem struct {
	windows map[Handle]uint32
	calls   []call
}

func newFakeSystem(hs ...Handle) *fakeSystem {
	f := &fakeSystem{windows: map[Handle]uint32{}}
	for _, h := range hs {
		f.windows[h] = WDA_NONE
	}
	return f
}

const errInvalidWindowHandle = syscall.Errno(1400)

func (f *fakeSystem) SetWindowDisplayAffinity(h Handle, a uint32) error {
	f.calls = append(f.calls, call{h, a})
	if _, ok := f.windows[h]; !ok {
		return errInvalidWindowHandle
	}
	f.windows[h] = a
	return nil
}

func (f *fakeSystem) GetWindowDisplayAffinity(h Handle) (uint32, error) {
	a, ok := f.windows[h]
	if !ok {
		return 0, errInvalidWindowHandle
	}
	return a, nil
}

func TestSetCaptureProtection_ToggleRoundTrip(t *testing.T) {
	const hwnd Handle = 0x1A2B3C
	sys := newFakeSystem(hwnd)
	s := New(sys)

	ok, err := s.SetCaptureProtection(hwnd.Bytes(), true)
	if err != nil || !ok {
		t.Fatalf("enable: ok=%v err=%v", ok, err)
	}
	if got := sys.windows[hwnd]; got != WDA_EXCLUDEFROMCAPTURE {
		t.Fatalf("affinity after enable = %s", Name(got))
	}
	if p, _ := s.Protected(hwnd); !p {
		t.Fatalf("expected window to be protected")
	}

	ok, err = s.SetCaptureProtection(hwnd.Bytes(), false)
	if err != nil || !ok {
		t.Fatalf("disable: ok=%v err=%v", ok, err)
	}
	if got := sys.windows[hwnd]; got != WDA_NONE {
		t.Fatalf("affinity after disable = %s", Name(got))
	}
	if p, _ := s.Protected(hwnd); p {
		t.Fatalf("expected window to be capturable")
	}
}

func TestSetCaptureProtection_Idempotent(t *testing.T) {
	const hwnd Handle = 0x42
	sys := newFakeSystem(hwnd)
	s := New(sys)

	for i := range 2 {
		ok, err := s.SetCaptureProtection(hwnd.Bytes(), true)
		if err != nil || !ok {
			t.Fatalf("call %d: ok=%v err=%v", i, ok, err)
		}
	}
	if got := sys.windows[hwnd]; got != WDA_EXCLUDEFROMCAPTURE {
		t.Fatalf("affinity = %s", Name(got))
	}
	if len(sys.calls) != 2 {
		t.Fatalf("expected 2 OS calls, got %d", len(sys.calls))
	}
}

func TestSetCaptureProtection_WrongLengthMakesNoCall(t *testing.T) {
	sys := newFakeSystem(0x42)
	s := New(sys)

	for _, n := range []int{0, HandleSize - 1, HandleSize + 1, 4 * HandleSize} {
		if n == HandleSize {
			continue
		}
		ok, err := s.SetCaptureProtection(make([]byte, n), true)
		if ok {
			t.Fatalf("len %d: expected false", n)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("len %d: expected ErrInvalidArgument, got %v", n, err)
		}
	}
	if len(sys.calls) != 0 {
		t.Fatalf("expected no OS calls, got %v", sys.calls)
	}
}

func TestSetCaptureProtection_StaleHandleIsFalse(t *testing.T) {
	sys := newFakeSystem()
	s := New(sys)

	ok, err := s.SetCaptureProtection(Handle(0xDEAD).Bytes(), true)
	if err != nil {
		t.Fatalf("stale handle must not error, got %v", err)
	}
	if ok {
		t.Fatalf("stale handle must report false")
	}
	if len(sys.calls) != 1 {
		t.Fatalf("expected one OS call, got %d", len(sys.calls))
	}
}

func TestApply_OperationErrorCarriesCode(t *testing.T) {
	s := New(newFakeSystem())

	err := s.Apply(0xDEAD, true)
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *OperationError, got %T %v", err, err)
	}
	if opErr.Handle != 0xDEAD || opErr.Affinity != WDA_EXCLUDEFROMCAPTURE {
		t.Fatalf("unexpected detail: %+v", opErr)
	}
	code, ok := opErr.Code()
	if !ok || code != errInvalidWindowHandle {
		t.Fatalf("Code() = %v, %v", code, ok)
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("operation failure must not look like an argument error")
	}
}

func TestInvoke_Arguments(t *testing.T) {
	const hwnd Handle = 0x99
	cases := []struct {
		name    string
		args    []any
		want    bool
		wantErr bool
	}{
		{"ok", []any{hwnd.Bytes(), true}, true, false},
		{"missing", []any{hwnd.Bytes()}, false, true},
		{"none", nil, false, true},
		{"string handle", []any{"0x99", true}, false, true},
		{"int intent", []any{hwnd.Bytes(), 1}, false, true},
		{"string intent", []any{hwnd.Bytes(), "true"}, false, true},
		{"nil intent", []any{hwnd.Bytes(), nil}, false, true},
		{"short buffer", []any{[]byte{1, 2}, false}, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sys := newFakeSystem(hwnd)
			got, err := New(sys).Invoke(tc.args...)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				if len(sys.calls) != 0 {
					t.Fatalf("argument error must not reach the OS")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got %v, %v", got, err)
			}
		})
	}
}

func TestSet_RejectsUnknownAffinity(t *testing.T) {
	sys := newFakeSystem(1)
	err := New(sys).Set(1, 0x2)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := New(sys).Set(1, WDA_MONITOR); err != nil {
		t.Fatalf("WDA_MONITOR: %v", err)
	}
}

func TestFor(t *testing.T) {
	if For(true) != WDA_EXCLUDEFROMCAPTURE || For(false) != WDA_NONE {
		t.Fatalf("For mapping changed")
	}
	if Name(0x11) != "WDA_EXCLUDEFROMCAPTURE" || Name(7) != "WDA(0x7)" {
		t.Fatalf("Name: %q %q", Name(0x11), Name(7))
	}
}
