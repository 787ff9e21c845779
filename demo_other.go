//go:build !windows

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newDemoCmd(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open a window that hides itself from capture (Windows only)",
		RunE: func(*cobra.Command, []string) error {
			return fmt.Errorf("demo: %w", errors.ErrUnsupported)
		},
	}
}
