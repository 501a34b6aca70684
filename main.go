package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hotel-rooms/config"
	"hotel-rooms/menu"
	"hotel-rooms/metrics"
	"hotel-rooms/routes"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hotel-rooms",
	Short: "Hotel room inventory: HTTP service and console menu",
	Long: `hotel-rooms keeps an in-memory inventory of hotel rooms, persists it to a
JSON file or MySQL, and serves it over a JSON API and HTML forms.

Run without a sub-command to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFile(configPath)
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage the inventory from an interactive console menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an optional YAML config file (default configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, menuCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m := metrics.New()
	inv, closeStore, err := openInventory(ctx, cfg, logger, m.ObserveInventory)
	if err != nil {
		return err
	}
	defer closeStore()

	if !logger.Core().Enabled(zapcore.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := routes.SetupRouter(inv, routes.Options{
		CorsOrigins: cfg.Server.CorsOrigins,
		Metrics:     m,
		Log:         logger,
	})
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := inv.Close(shutdownCtx); err != nil {
		logger.Error("final inventory flush failed", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
	return nil
}

func runMenu(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger
	if !verbose && log.Core().Enabled(zapcore.InfoLevel) {
		// keep routine info lines out of the prompts
		log = log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
	}

	inv, closeStore, err := openInventory(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	runErr := menu.New(inv, cmd.InOrStdin(), cmd.OutOrStdout(), log).Run()

	closeCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := inv.Close(closeCtx); err != nil {
		log.Error("final inventory flush failed", zap.Error(err))
	}
	return runErr
}
