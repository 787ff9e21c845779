//go:build !windows

package window

import (
	"errors"
	"fmt"

	"github.com/Miuzarte/CaptureShield/affinity"
)

var errNoWin32 = fmt.Errorf("win32 windows: %w", errors.ErrUnsupported)

func Foreground() affinity.Handle { return 0 }

func Exists(affinity.Handle) bool { return false }

func Find(string) (affinity.Handle, error) { return 0, errNoWin32 }

func ByPID(uint32) (affinity.Handle, error) { return 0, errNoWin32 }

func describe(affinity.Handle) (Info, error) { return Info{}, errNoWin32 }
