package main

import (
	"fmt"

	"github.com/Miuzarte/CaptureShield/capture"
	"github.com/Miuzarte/CaptureShield/window"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		target targetFlags
		out    string
	)
	cmd := &cobra.Command{
		Use:   "snapshot [hwnd]",
		Short: "Capture a window's screen area the way capture tools see it",
		Long: `Capture the screen area of a window with the configured backend and write
it as PNG. A protected window shows what is behind it (WDA_EXCLUDEFROMCAPTURE)
or a flat fill (WDA_MONITOR) instead of its own contents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := target.resolve(args)
			if err != nil {
				return err
			}
			info, err := window.Describe(cmd.Context(), h)
			if err != nil {
				return err
			}

			backend, err := capture.New(a.cfg.CaptureBackend)
			if err != nil {
				return err
			}
			defer backend.Close()

			img, err := backend.Capture(info.Rect)
			if err != nil {
				return err
			}
			if err := capture.WritePNG(out, img); err != nil {
				return err
			}

			a.log.Info().
				Stringer("hwnd", h).
				Str("backend", a.cfg.CaptureBackend).
				Stringer("rect", info.Rect).
				Str("file", out).
				Msg("snapshot written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s blank=%v\n", out, capture.Blank(img))
			return nil
		},
	}
	target.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "snapshot.png", "PNG file to write")
	return cmd
}
