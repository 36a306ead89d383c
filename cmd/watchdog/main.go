package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fxjung/pushover-watchdog/internal/config"
	"github.com/fxjung/pushover-watchdog/internal/httpapi"
	"github.com/fxjung/pushover-watchdog/internal/logging"
	"github.com/fxjung/pushover-watchdog/internal/metrics"
	"github.com/fxjung/pushover-watchdog/internal/notify"
	"github.com/fxjung/pushover-watchdog/internal/scheduler"
	"github.com/fxjung/pushover-watchdog/internal/service"
	"github.com/fxjung/pushover-watchdog/internal/status"
	"github.com/fxjung/pushover-watchdog/internal/watchdog"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "watchdog",
	Short: "Alert on high RAM or disk usage via Pushover",
	Long: `watchdog periodically samples RAM and disk usage, compares each against a
threshold, and sends a Pushover notification when usage crosses or stays
above it. Repeat alerts while usage remains high are rate-limited by a
cooldown.`,
	SilenceUsage: true,
	RunE:         runWatchdog,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/pushover-watchdog/config.yaml)")

	f := rootCmd.Flags()
	f.Float64("threshold", 0.80, "usage threshold as a fraction (0..1)")
	f.Int("interval", 60, "check interval in seconds")
	f.Int("cooldown", 1800, "seconds between repeated alerts while still above threshold; 0 disables repeats")
	f.String("disk-path", "/home", "path whose filesystem should be monitored")
	f.Bool("no-ram", false, "disable RAM monitoring")
	f.Bool("no-disk", false, "disable disk monitoring")
	f.String("host-label", "", "override hostname shown in alerts")
	f.String("pushover-user-key", "", "Pushover user/group key")
	f.String("pushover-app-token", "", "Pushover application token")
	f.String("api-addr", "", "bind address for the read-only status API; empty disables it")
	f.String("log-dir", "logs", "directory for the log file")

	rootCmd.AddCommand(versionCmd, serviceCmd)
	serviceCmd.AddCommand(serviceInstallCmd, serviceUninstallCmd)
}

func runWatchdog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	var sources []metrics.Source
	if !cfg.NoRAM {
		sources = append(sources, metrics.NewRAMSource())
	}
	if !cfg.NoDisk {
		sources = append(sources, metrics.NewDiskSource(cfg.DiskPath))
	}

	store := status.New()
	w := scheduler.NewWatcher(
		logger,
		sources,
		notify.NewPushover(cfg.UserKey, cfg.AppToken),
		store,
		watchdog.Params{
			Threshold: cfg.Threshold,
			Cooldown:  cfg.Cooldown,
			HostLabel: cfg.HostLabel,
		},
		cfg.Interval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.APIAddr != "" {
		api := httpapi.NewServer(logger, store)
		srv := &http.Server{Addr: cfg.APIAddr, Handler: api.Router()}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.APIAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("api_serve_error", zap.Error(err))
			}
		}()
		go func() {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	logger.Info("watchdog_started",
		zap.Float64("threshold", cfg.Threshold),
		zap.Duration("interval", cfg.Interval),
		zap.Duration("cooldown", cfg.Cooldown),
		zap.Bool("ram", !cfg.NoRAM),
		zap.Bool("disk", !cfg.NoDisk),
		zap.String("disk_path", cfg.DiskPath),
		zap.String("host", cfg.HostLabel),
		zap.String("version", Version),
	)

	w.Run(ctx)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("watchdog", Version)
	},
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the systemd user service",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and start the watchdog as a systemd user service",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := service.NewManager()
		if err != nil {
			return err
		}
		if err := m.Install(); err != nil {
			return err
		}
		fmt.Println("Installed and started", service.UnitName)
		fmt.Println("Edit secrets in:", m.EnvPath())
		fmt.Println("Logs: journalctl --user -u", service.UnitName, "-f")
		fmt.Println("If you want it running while logged out: loginctl enable-linger $USER")
		return nil
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop and remove the systemd user service",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := service.NewManager()
		if err != nil {
			return err
		}
		if err := m.Uninstall(); err != nil {
			return err
		}
		fmt.Println("Removed", service.UnitName)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
