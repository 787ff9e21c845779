package main

import (
	"errors"
	"fmt"

	"github.com/Miuzarte/CaptureShield/window"
	"github.com/spf13/cobra"
)

var errRefused = errors.New("display affinity was not changed")

func newProtectCmd(a *app) *cobra.Command {
	var (
		target targetFlags
		off    bool
	)
	cmd := &cobra.Command{
		Use:   "protect [hwnd]",
		Short: "Exclude a window from screen capture",
		Long: `Exclude a window from screen capture, or make it capturable again with --off.

Prints true when the windowing system accepted the change and false
otherwise; false also sets exit status 2.`,
		Example: `  # Protect a window by handle
  captureshield protect 0x1A2B3C

  # Undo it
  captureshield protect 0x1A2B3C --off

  # Protect the window titled "Notes"
  captureshield protect --title Notes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := target.resolve(args)
			if err != nil {
				return err
			}

			ok, err := a.setter.SetCaptureProtection(h.Bytes(), !off)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if ok {
				return nil
			}

			ev := a.log.Warn().Stringer("hwnd", h).Bool("enable", !off)
			if info, err := window.Describe(cmd.Context(), h); err == nil && !info.OwnedBySelf {
				ev = ev.Uint32("owner_pid", info.PID).Str("owner", info.Owner.Name)
			}
			ev.Msg("setProtection returned FALSE")
			return errRefused
		},
	}
	target.register(cmd)
	cmd.Flags().BoolVar(&off, "off", false, "make the window capturable again")
	return cmd
}
