package window

import (
	"context"
	"errors"
	"testing"
)

func TestFind_Missing(t *testing.T) {
	_, err := Find("no window is ever called this 8d1f4c7e")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByPID_Missing(t *testing.T) {
	_, err := ByPID(0xFFFFFFF0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDescribe_Stale(t *testing.T) {
	_, err := Describe(context.Background(), 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDescribe_Foreground(t *testing.T) {
	h := Foreground()
	if h == 0 {
		t.Skip("no foreground window in this session")
	}
	info, err := Describe(context.Background(), h)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if info.PID == 0 || info.HWND != h.String() {
		t.Fatalf("unexpected info: %+v", info)
	}
}
