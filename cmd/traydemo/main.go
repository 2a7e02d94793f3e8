// Command traydemo hosts a status notifier item described by a YAML file.
// The menu definition is reloaded whenever the file changes, and menu
// activations are drained on an interval and logged.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traykit"
	"traykit/sni"
)

var (
	configPath    string
	drainInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "traydemo",
	Short: "Show a system tray icon defined by a YAML file",
	Long: `traydemo registers a StatusNotifierItem on the session bus with a menu
built from a YAML configuration file. Edits to the file are picked up live.
Menu activations are logged as they are drained.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "tray.yaml", "path to the tray configuration file")
	rootCmd.Flags().DurationVar(&drainInterval, "drain-interval", 200*time.Millisecond, "how often to drain and log menu events")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	tray := traykit.New(cfg.ID, sni.Spawner{Logger: logger})

	if err := cfg.Apply(tray); err != nil {
		return err
	}

	if err := tray.Spawn(); err != nil {
		return fmt.Errorf("failed to spawn tray: %w", err)
	}
	defer tray.Close()

	logger.Info("tray spawned", zap.String("id", cfg.ID), zap.String("config", configPath))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself so that editors
	// which replace the file on save keep being observed.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", configPath, err)
	}

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !sameFile(event.Name, configPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := reload(tray, logger); err != nil {
				logger.Warn("reload failed", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			for _, ev := range tray.DrainEvents() {
				logEvent(logger, ev)
			}
		}
	}
}

func sameFile(a, b string) bool {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	ba, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return aa == ba
}

func reload(tray *traykit.TrayIcon, logger *zap.Logger) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	if err := cfg.Apply(tray); err != nil {
		return err
	}

	tray.Update()
	logger.Info("configuration reloaded", zap.String("config", configPath))

	return nil
}

func logEvent(logger *zap.Logger, ev traykit.Event) {
	switch e := ev.(type) {
	case traykit.Activated:
		logger.Info("item activated", zap.String("id", e.ID))
	case traykit.CheckmarkToggled:
		logger.Info("checkmark toggled", zap.String("id", e.ID), zap.Bool("checked", e.Checked))
	case traykit.RadioSelected:
		logger.Info("radio selected",
			zap.String("group", e.GroupID),
			zap.Int("index", e.Index),
			zap.String("option", e.OptionID))
	}
}
