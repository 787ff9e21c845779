package affinity

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	moduser32                    = windows.NewLazySystemDLL("user32.dll")
	procSetWindowDisplayAffinity = moduser32.NewProc("SetWindowDisplayAffinity")
	procGetWindowDisplayAffinity = moduser32.NewProc("GetWindowDisplayAffinity")
)

type nativeSystem struct{}

// Native returns the user32 backed System.
func Native() System {
	return nativeSystem{}
}

func (nativeSystem) SetWindowDisplayAffinity(hWnd Handle, dwAffinity uint32) error {
	if err := procSetWindowDisplayAffinity.Find(); err != nil {
		return err
	}

	ret, _, err := procSetWindowDisplayAffinity.Call(
		uintptr(hWnd),
		uintptr(dwAffinity),
	)

	if ret == 0 {
		return err
	}

	return nil
}

func (nativeSystem) GetWindowDisplayAffinity(hWnd Handle) (dwAffinity uint32, _ error) {
	if err := procGetWindowDisplayAffinity.Find(); err != nil {
		return 0, err
	}

	ret, _, err := procGetWindowDisplayAffinity.Call(
		uintptr(hWnd),
		uintptr(unsafe.Pointer(&dwAffinity)),
	)

	if ret == 0 {
		return 0, err
	}

	return dwAffinity, nil
}
