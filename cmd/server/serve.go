package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/VighneshDev1411/mockllm/internal/api"
	"github.com/VighneshDev1411/mockllm/internal/completion"
	"github.com/VighneshDev1411/mockllm/internal/config"
	"github.com/VighneshDev1411/mockllm/internal/metrics"
	"github.com/VighneshDev1411/mockllm/internal/tokenizer"
	"github.com/VighneshDev1411/mockllm/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			printBanner()
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	return cmd
}

// buildRouter wires the completion pipeline and HTTP layer from cfg
func buildRouter(cfg *config.Config) *api.Router {
	var opts []completion.GeneratorOption
	if cfg.Completion.Seed != 0 {
		opts = append(opts, completion.WithRandSource(completion.NewSeededSource(cfg.Completion.Seed)))
	}

	logger := utils.Default()
	// gin's route dump and debug warnings only show at debug level
	release := cfg.IsProduction() || logger.GetLevel() > utils.DEBUG

	return api.NewRouter(api.Dependencies{
		Service:   completion.NewService(opts...),
		Collector: metrics.NewCollector(metrics.Config{MaxDataPoints: cfg.Metrics.MaxSamples}),
		Logger:    logger,
		Version:   cfg.App.Version,
		Release:   release,
	})
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := utils.NewLoggerWithConfig(&utils.LoggerConfig{
		Level:      utils.INFO,
		UseColor:   !cfg.IsProduction(),
		Timestamps: true,
		Output:     os.Stdout,
	})
	logger.SetLevel(utils.ParseLevel(cfg.App.LogLevel))
	utils.SetDefault(logger)

	encodings := make([]tokenizer.Encoding, 0, len(cfg.Completion.WarmEncodings))
	for _, e := range cfg.Completion.WarmEncodings {
		encodings = append(encodings, tokenizer.Encoding(e))
	}
	timer := logger.StartTimer("warm encodings", "encodings", cfg.Completion.WarmEncodings)
	if err := tokenizer.Warm(encodings...); err != nil {
		logger.Warn("encoding warm-up failed, tables load on first use", "error", err)
	}
	timer.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      buildRouter(cfg).GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.App.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
