package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/Miuzarte/CaptureShield/binding"
	"github.com/Miuzarte/CaptureShield/contextWaitGroup"
	"github.com/Miuzarte/CaptureShield/logger"
	"github.com/Miuzarte/CaptureShield/window"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <script.js>",
		Short: "Run a JavaScript file with the capture protection functions installed",
		Long: `Run a JavaScript file in an embedded interpreter. The script gets:

  setProtection(handle, enable)         -> boolean
  setCaptureProtection(handle, enable)  -> boolean (same function)
  getProtection(handle)                 -> affinity number or null
  windowHandle(number | "0x..")         -> handle
  foregroundWindow()                    -> handle or null
  findWindow(title)                     -> handle or null

Handles are arrays of byte values in native order. Wrong argument types
throw a TypeError.`,
		Example: `  captureshield run protect.js
  captureshield run protect.js --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := binding.New(a.setter,
				binding.WithFinder(window.Lookup{}),
				binding.WithLogger(logger.WithComponent("script")),
			)
			path := args[0]
			if !watch {
				return a.runScript(cmd.Context(), b, path)
			}
			return a.watchScript(cmd.Context(), b, path)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "run again whenever the file changes")
	return cmd
}

func (a *app) runScript(ctx context.Context, b *binding.Binding, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if a.cfg.ScriptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.ScriptTimeout)
		defer cancel()
	}
	return b.Run(ctx, filepath.Base(path), string(src))
}

// watchScript runs path once, then again on every write until interrupted.
// Script errors are logged, not returned, so a broken edit does not end the
// watch.
func (a *app) watchScript(ctx context.Context, b *binding.Binding, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// editors replace files on save, watch the directory instead
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	cwg := contextWaitGroup.New(ctx, os.Interrupt, syscall.SIGTERM)
	rerun := make(chan struct{}, 1)
	rerun <- struct{}{}

	cwg.Go(func(ctx context.Context) {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rerun:
				if err := a.runScript(ctx, b, abs); err != nil {
					a.log.Error().Err(err).Str("script", abs).Msg("script failed")
				} else {
					a.log.Info().Str("script", abs).Msg("script finished")
				}
			}
		}
	})

	cwg.Go(func(ctx context.Context) {
		defer cwg.Stop()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				a.log.Debug().Str("event", event.Op.String()).Msg("script changed")
				select {
				case rerun <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Error().Err(err).Msg("fsnotify error")
			}
		}
	})

	return cwg.Wait()
}
