package main

import (
	"strings"

	"github.com/Miuzarte/CaptureShield/affinity"
	"github.com/Miuzarte/CaptureShield/config"
	"github.com/Miuzarte/CaptureShield/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by all commands once the root pre-run finished.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
	setter  *affinity.Setter

	// sys replaces the native user32 calls, tests only
	sys affinity.System
}

func newRootCmd(a *app) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CAPTURESHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "captureshield",
		Short: "Hide windows from screenshots and screen recordings",
		Long: `CaptureShield sets the display affinity of a window so that screenshot,
screen share and recording tools see nothing where the window is, while it
stays visible on the physical display.

Windows only changes the affinity of windows owned by the calling process:
use "run" to drive it from a script or "demo" to see it on a window of our own.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(v)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is <user config dir>/captureshield/config.yaml)")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.Bool("pretty", true, "human readable log output")
	flags.String("backend", "", "capture backend (gdi, dxgi)")

	v.BindPFlag("log_level", flags.Lookup("log-level"))
	v.BindPFlag("log_pretty", flags.Lookup("pretty"))
	v.BindPFlag("capture_backend", flags.Lookup("backend"))

	root.AddCommand(
		newProtectCmd(a),
		newStatusCmd(a),
		newSnapshotCmd(a),
		newRunCmd(a),
		newDemoCmd(a),
	)
	return root
}

func (a *app) init(v *viper.Viper) error {
	cfg, path, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Overlay(v); err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogPretty); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.WithComponent("cli")
	a.log.Debug().Str("config", path).Msg("config loaded")

	sys := a.sys
	if sys == nil {
		sys = affinity.Native()
	}
	a.setter = affinity.New(sys, affinity.WithLogger(logger.WithComponent("affinity")))
	return nil
}
