// Package window finds windows and describes who owns them.
package window

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/Miuzarte/CaptureShield/affinity"
	"github.com/shirou/gopsutil/v4/process"
)

var ErrNotFound = errors.New("window not found")

type Owner struct {
	Name string `yaml:"name,omitempty"`
	Exe  string `yaml:"exe,omitempty"`
}

type Info struct {
	Handle affinity.Handle `yaml:"-"`
	HWND   string          `yaml:"hwnd"`
	Title  string          `yaml:"title"`
	Class  string          `yaml:"class"`
	PID    uint32          `yaml:"pid"`
	Rect   image.Rectangle `yaml:"-"`
	Bounds string          `yaml:"bounds"`
	Owner  Owner           `yaml:"owner"`

	// OwnedBySelf is informational: the windowing system decides whether a
	// foreign window may be changed.
	OwnedBySelf bool `yaml:"owned_by_self"`
}

// Target selects one window. The first non-zero field wins, in field order.
type Target struct {
	HWND       string
	Title      string
	PID        uint32
	Foreground bool
}

func (t Target) IsZero() bool {
	return t == Target{}
}

// Resolve turns t into a handle.
func Resolve(t Target) (affinity.Handle, error) {
	switch {
	case t.HWND != "":
		return affinity.ParseHandle(t.HWND)
	case t.Title != "":
		return Find(t.Title)
	case t.PID != 0:
		return ByPID(t.PID)
	case t.Foreground:
		h := Foreground()
		if h == 0 {
			return 0, fmt.Errorf("foreground: %w", ErrNotFound)
		}
		return h, nil
	default:
		return 0, errors.New("no window selected")
	}
}

// Describe gathers what the windowing system knows about h plus the owning
// process.
func Describe(ctx context.Context, h affinity.Handle) (Info, error) {
	info, err := describe(h)
	if err != nil {
		return Info{}, err
	}
	info.Handle = h
	info.HWND = h.String()
	info.Bounds = info.Rect.String()
	info.OwnedBySelf = info.PID == uint32(os.Getpid())

	if info.PID != 0 {
		// owner lookup is best effort, protected processes deny it
		info.Owner, _ = lookupOwner(ctx, info.PID)
	}
	return info, nil
}

func lookupOwner(ctx context.Context, pid uint32) (Owner, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return Owner{}, fmt.Errorf("process %d: %w", pid, err)
	}

	var o Owner
	o.Name, err = p.NameWithContext(ctx)
	if err != nil {
		return o, fmt.Errorf("process %d name: %w", pid, err)
	}
	o.Exe, _ = p.ExeWithContext(ctx)
	return o, nil
}

// Lookup exposes the package functions as a value for callers that take an
// interface.
type Lookup struct{}

func (Lookup) Foreground() affinity.Handle                { return Foreground() }
func (Lookup) Find(title string) (affinity.Handle, error) { return Find(title) }
func (Lookup) Exists(h affinity.Handle) bool              { return Exists(h) }
func (Lookup) ByPID(pid uint32) (affinity.Handle, error)  { return ByPID(pid) }
