package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/snipday/internal/api"
	"github.com/five82/snipday/internal/board"
	"github.com/five82/snipday/internal/config"
	"github.com/five82/snipday/internal/server"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("snipdayd", pflag.ContinueOnError)
	addr := flags.String("addr", "", "listen address (overrides SNIPDAY_ADDR)")
	showVersion := flags.Bool("version", false, "print version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "snipdayd: %v\n", err)
		return 2
	}
	if *showVersion {
		fmt.Println("snipdayd", version)
		return 0
	}

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "snipdayd: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := initLogger(cfg)
	logger.Info("starting snipdayd",
		slog.String("version", version),
		slog.String("addr", cfg.Addr),
		slog.Duration("expiration", cfg.Expiration),
		slog.Int("max_code_length", cfg.MaxCodeLength),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b := board.New(cfg.Expiration, cfg.MaxCodeLength, board.WithLogger(logger))
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		b.Run(sweepCtx, cfg.SweepInterval)
	}()

	handler := api.NewHandler(b, logger).Routes(cfg.AllowedOrigins())
	srv := server.New(handler, cfg.Addr, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout, logger)
	srv.OnShutdown("sweeper", func(ctx context.Context) error {
		stopSweep()
		select {
		case <-sweepDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	if err := srv.Run(ctx); err != nil {
		stopSweep()
		logger.Error("server error", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

// initLogger builds the process logger from config and installs it as the
// slog default.
func initLogger(cfg config.Server) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
