package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"syscall"

	gioapp "gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/Miuzarte/CaptureShield/affinity"
	"github.com/Miuzarte/CaptureShield/contextWaitGroup"
	"github.com/Miuzarte/CaptureShield/widgets"
	"github.com/spf13/cobra"
)

const fontSize = 16

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open a window that hides itself from capture",
		Long: `Open a window owned by this process and exclude it from capture.

  T        toggle between WDA_EXCLUDEFROMCAPTURE and WDA_NONE
  Shift+T  use WDA_MONITOR (shown black in captures) instead
  P        print the window handle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newDemo(a).run(cmd.Context())
		},
	}
}

type demo struct {
	a      *app
	window gioapp.Window

	mu      sync.Mutex
	hwnd    affinity.Handle
	current uint32
	lastOK  bool

	shortcuts *widgets.Shortcuts
}

func newDemo(a *app) *demo {
	d := &demo{a: a, lastOK: true}
	d.window.Option(
		gioapp.Title(a.cfg.DemoTitle),
		gioapp.MinSize(unit.Dp(480), unit.Dp(240)),
		gioapp.Size(unit.Dp(640), unit.Dp(320)),
	)
	d.shortcuts = widgets.NewShortcuts(&d.window,
		widgets.Shortcut{
			Key: widgets.NewShortcut(0, key.ModShift, "T"),
			F:   d.shortcutSetWda,
		},
		widgets.Shortcut{
			Key: widgets.NewShortcut(0, 0, "P"),
			F:   d.shortcutPrintHandle,
		},
	)
	return d
}

func (d *demo) run(ctx context.Context) error {
	cwg := contextWaitGroup.New(ctx, os.Interrupt, syscall.SIGTERM)
	cwg.Go(func(ctx context.Context) {
		defer cwg.Stop()
		d.windowLoop(ctx)
	})
	cwg.Go(func(ctx context.Context) {
		<-ctx.Done()
		// wake the event loop so it sees the cancellation
		d.window.Invalidate()
	})
	return cwg.Wait()
}

func (d *demo) windowLoop(ctx context.Context) {
	var ops op.Ops
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch e := d.window.Event().(type) {
		case gioapp.DestroyEvent:
			if e.Err != nil {
				d.a.log.Error().Err(e.Err).Msg("window error")
			} else {
				d.a.log.Debug().Msg("window closed normally")
			}
			return

		case gioapp.Win32ViewEvent:
			d.attach(affinity.Handle(e.HWND))

		case gioapp.FrameEvent:
			gtx := gioapp.NewContext(&ops, e)
			if err := d.shortcuts.Match(gtx); err != nil {
				d.a.log.Warn().Err(err).Msg("shortcuts match error")
			}
			d.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// attach protects the window as soon as it has a handle.
func (d *demo) attach(h affinity.Handle) {
	d.mu.Lock()
	d.hwnd = h
	d.mu.Unlock()
	if h == 0 {
		return
	}
	d.a.log.Info().Stringer("hwnd", h).Msg("demo window created")

	ok, err := d.a.setter.SetCaptureProtection(h.Bytes(), true)
	if err != nil {
		d.a.log.Error().Err(err).Msg("setProtection")
		return
	}
	d.record(affinity.For(true), ok)
}

func (d *demo) record(a uint32, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastOK = ok
	if ok {
		d.current = a
		return
	}
	d.a.log.Warn().Stringer("hwnd", d.hwnd).Str("affinity", affinity.Name(a)).Msg("setProtection returned FALSE")
}

func (d *demo) shortcutSetWda(_ key.Name, mod key.Modifiers) {
	d.mu.Lock()
	h, curr := d.hwnd, d.current
	d.mu.Unlock()
	if h == 0 {
		return
	}

	if actual, err := d.a.setter.Get(h); err == nil {
		curr = actual
	}

	to := uint32(affinity.WDA_NONE)
	if curr == affinity.WDA_NONE {
		to = affinity.WDA_EXCLUDEFROMCAPTURE
		if mod.Contain(key.ModShift) {
			to = affinity.WDA_MONITOR
		}
	}

	err := d.a.setter.Set(h, to)
	d.record(to, err == nil)
	if err == nil {
		d.a.log.Info().Str("affinity", affinity.Name(to)).Msg("wda set")
	}
	d.window.Invalidate()
}

func (d *demo) shortcutPrintHandle(key.Name, key.Modifiers) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.a.log.Info().Stringer("hwnd", d.hwnd).Int("pid", os.Getpid()).Msg("demo window")
}

func (d *demo) layout(gtx layout.Context) layout.Dimensions {
	d.mu.Lock()
	curr, ok, h := d.current, d.lastOK, d.hwnd
	d.mu.Unlock()

	paint.Fill(gtx.Ops, widgets.ColorWhite)

	color := widgets.ColorGreen
	state := "hidden from capture"
	switch {
	case !ok:
		color = widgets.ColorCoral
		state = "protection refused"
	case curr == affinity.WDA_NONE:
		color = widgets.ColorAmber
		state = "capturable"
	case curr == affinity.WDA_MONITOR:
		state = "black in captures"
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return widgets.Badge(color).Layout(gtx,
					widgets.Label(fontSize*1.5, state).Bold().Colored(widgets.ColorWhite).Layout,
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(
				widgets.Label(fontSize, fmt.Sprintf("%s  %s", h, affinity.Name(curr))).Centered().Layout,
			),
			layout.Rigid(
				widgets.Label(fontSize, "T toggle · Shift+T monitor · P print handle").Colored(widgets.ColorBlack).Centered().Layout,
			),
		)
	})
}
