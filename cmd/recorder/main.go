package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/interviewkeeper/internal/cli"
	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdout)
	if err != nil {
		logger.Error(ctx, "startup failed", "backend", cfg.Backend, "sheet", cfg.Worksheet,
			"kind", common.KindOf(err).String(), "error", err)
		if common.KindOf(err) == common.KindConfig {
			return 2
		}
		return 1
	}

	if err := app.Run(ctx, os.Stdin); err != nil {
		logger.Error(ctx, "session failed", "error", err)
		return 1
	}
	return 0
}
