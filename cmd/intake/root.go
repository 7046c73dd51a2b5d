package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/internal/metrics"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/session"
	"github.com/aretw0/intake/pkg/submission"
	"github.com/aretw0/intake/pkg/wizard"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "intake",
	Short:         "intake runs the Mandate and Speak lead-capture wizards",
	Long:          `intake drives the multi-step lead-capture forms from the terminal, validates form files and manages saved drafts.`,
	Version:       intake.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		level, err := logging.ParseLevel(c.Log.Level)
		if err != nil {
			return err
		}
		cfg = c
		logger = logging.New(level, c.Log.Format, os.Stderr)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./intake.yml merged over the XDG global config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// runtime bundles what the wizard commands need, built from the loaded config.
type runtime struct {
	store   ports.SnapshotStore
	manager *session.Manager
	close   func()
}

// newRuntime opens the store, wires metrics and builds the session manager.
func newRuntime(ctx context.Context) (*runtime, error) {
	store, closer, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}

	persistOpts := cfg.PersistenceOptions()
	wizardOpts := []wizard.Option{
		wizard.WithCloseDelay(cfg.Wizard.CloseDelay),
		wizard.WithSubmitter(submission.NewLogSubmitter(logger)),
	}

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		m, err := metrics.New(reg)
		if err != nil {
			_ = closer.Close()
			return nil, err
		}
		persistOpts = append(persistOpts, persistence.WithErrorHook(m.ErrorHook()))
		wizardOpts = append(wizardOpts, wizard.WithLifecycleHooks(m.Hooks()))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("Starting metrics server", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	mgr := session.NewManager(store, persistOpts,
		session.WithLogger(logger),
		session.WithControllerOptions(wizardOpts...),
	)

	return &runtime{
		store:   store,
		manager: mgr,
		close: func() {
			mgr.Close()
			if srv != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}
			if err := closer.Close(); err != nil {
				logger.Warn("closing store", "error", err)
			}
		},
	}, nil
}
