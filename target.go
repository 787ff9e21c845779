package main

import (
	"github.com/Miuzarte/CaptureShield/affinity"
	"github.com/Miuzarte/CaptureShield/window"
	"github.com/spf13/cobra"
)

type targetFlags struct {
	window.Target
}

func (t *targetFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&t.Title, "title", "", "window with exactly this title")
	f.Uint32Var(&t.PID, "pid", 0, "first visible window of this process")
	f.BoolVar(&t.Foreground, "foreground", false, "the foreground window")
	cmd.MarkFlagsMutuallyExclusive("title", "pid", "foreground")
}

// resolve prefers a positional handle over the selection flags.
func (t *targetFlags) resolve(args []string) (affinity.Handle, error) {
	tg := t.Target
	if len(args) > 0 {
		tg = window.Target{HWND: args[0]}
	}
	if tg.IsZero() {
		tg.Foreground = true
	}
	return window.Resolve(tg)
}
