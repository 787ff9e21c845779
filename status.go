package main

import (
	"github.com/Miuzarte/CaptureShield/affinity"
	"github.com/Miuzarte/CaptureShield/window"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type windowStatus struct {
	Window    window.Info `yaml:"window"`
	Affinity  string      `yaml:"affinity"`
	Protected bool        `yaml:"protected"`
}

func newStatusCmd(a *app) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "status [hwnd]",
		Short: "Show a window, its owner and its display affinity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := target.resolve(args)
			if err != nil {
				return err
			}
			info, err := window.Describe(cmd.Context(), h)
			if err != nil {
				return err
			}

			st := windowStatus{Window: info, Affinity: "unknown"}
			if aff, err := a.setter.Get(h); err != nil {
				a.log.Debug().Err(err).Msg("GetWindowDisplayAffinity")
			} else {
				st.Affinity = affinity.Name(aff)
				st.Protected = aff != affinity.WDA_NONE
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(st); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	target.register(cmd)
	return cmd
}
