package window

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"github.com/Miuzarte/CaptureShield/affinity"
	"golang.org/x/sys/windows"
)

var (
	moduser32                = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW          = moduser32.NewProc("FindWindowW")
	procGetWindowTextW       = moduser32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = moduser32.NewProc("GetWindowTextLengthW")
	procGetWindowRect        = moduser32.NewProc("GetWindowRect")
)

func Foreground() affinity.Handle {
	return affinity.Handle(windows.GetForegroundWindow())
}

func Exists(h affinity.Handle) bool {
	return h != 0 && windows.IsWindow(windows.HWND(h))
}

// Find returns the top-level window whose title is exactly title.
func Find(title string) (affinity.Handle, error) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	ret, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	if ret == 0 {
		return 0, fmt.Errorf("%w: title %q", ErrNotFound, title)
	}
	return affinity.Handle(ret), nil
}

var (
	// NewCallback slots are never freed, so one callback serves all
	// enumerations under enumMu.
	enumMu    sync.Mutex
	enumPID   uint32
	enumFound windows.HWND
	enumProc  = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		var pid uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
			return 1
		}
		if pid != enumPID || !windows.IsWindowVisible(hwnd) {
			return 1
		}
		enumFound = hwnd
		return 0
	})
)

// ByPID returns the first visible top-level window of process pid.
func ByPID(pid uint32) (affinity.Handle, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumPID, enumFound = pid, 0
	err := windows.EnumWindows(enumProc, nil)
	if enumFound != 0 {
		return affinity.Handle(enumFound), nil
	}
	if err != nil {
		return 0, fmt.Errorf("EnumWindows: %w", err)
	}
	return 0, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
}

func describe(h affinity.Handle) (info Info, err error) {
	hwnd := windows.HWND(h)
	if !Exists(h) {
		return info, fmt.Errorf("%w: %s", ErrNotFound, h)
	}

	info.Title = windowText(hwnd)

	var class [256]uint16
	n, err := windows.GetClassName(hwnd, &class[0], int32(len(class)))
	if err == nil {
		info.Class = windows.UTF16ToString(class[:n])
	}

	if _, err := windows.GetWindowThreadProcessId(hwnd, &info.PID); err != nil {
		return info, fmt.Errorf("GetWindowThreadProcessId %s: %w", h, err)
	}

	var r windows.Rect
	ret, _, callErr := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return info, fmt.Errorf("GetWindowRect %s: %w", h, callErr)
	}
	info.Rect = image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
	return info, nil
}

func windowText(hwnd windows.HWND) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(
		uintptr(hwnd),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	return windows.UTF16ToString(buf)
}
