package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SectorFlow/internal/config"
	"SectorFlow/internal/display"
	"SectorFlow/internal/logging"
	"SectorFlow/internal/scheduler"
	"SectorFlow/internal/server"
	"SectorFlow/internal/store"
)

const defaultConfigPath = "configs/config.yaml"

type app struct {
	cfgPath string
	cfg     *config.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sectorflow",
		Short: "SectorFlow - sector rotation dashboard",
		Long: `SectorFlow tracks sector and asset-class ETFs against a benchmark, classifies
each by Chaikin Money Flow and relative-strength momentum, and publishes a
dashboard snapshot alongside the latest macro readings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	defaultPath := defaultConfigPath
	if v := os.Getenv("SECTORFLOW_CONFIG"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", defaultPath, "Configuration file path")

	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(a.log)
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Refresh caches, recompute indicators and publish the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			b, err := newBuilder(a.cfg, a.log)
			if err != nil {
				return err
			}
			snap, err := b.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d sectors, %d macro series at %s\n",
				len(snap.Sectors), len(snap.Macro), snap.LastUpdated)
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and run scheduled updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			if a.cfg.Schedule.Cron != "" || a.cfg.Schedule.RunOnStart {
				b, err := newBuilder(a.cfg, a.log)
				if err != nil {
					return err
				}
				sched := scheduler.NewScheduler(ctx, b, a.log)
				if a.cfg.Schedule.Cron != "" {
					if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
						return err
					}
					sched.Start()
					defer sched.Stop()
				}
				if a.cfg.Schedule.RunOnStart {
					a.log.Info("run_on_start enabled, executing update now")
					go sched.RunNow()
				}
			}

			h := server.NewHandler(store.NewSnapshotFile(a.cfg.DataDir), a.cfg.Server.StaticDir, a.log)
			return server.Run(ctx, a.cfg.Server.Addr, h, a.log)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the published snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := store.NewSnapshotFile(a.cfg.DataDir).Read()
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no snapshot in %s yet, run `sectorflow update` first", a.cfg.DataDir)
			}
			if err != nil {
				return err
			}
			return display.Print(cmd.OutOrStdout(), snap)
		},
	}
}
