package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/dmitrijs2005/cheddargetter/client"
	"github.com/dmitrijs2005/cheddargetter/internal/buildinfo"
	"github.com/dmitrijs2005/cheddargetter/internal/cli"
	"github.com/dmitrijs2005/cheddargetter/internal/config"
	"github.com/dmitrijs2005/cheddargetter/internal/flagx"
	"github.com/dmitrijs2005/cheddargetter/internal/netx"
	"github.com/dmitrijs2005/cheddargetter/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	args := flagx.Positional(os.Args[1:], config.Flags, nil)

	if len(args) == 0 {
		buildinfo.PrintBuildData(os.Stderr)
	}

	if cfg.API.Password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		pw, err := cli.GetPassword(os.Stderr)
		if err != nil {
			return err
		}
		cfg.API.Password = pw
	}

	reg := prometheus.NewRegistry()
	if cfg.MetricsAddr != "" {
		srv := netx.NewMetricsServer(cfg.MetricsAddr, reg, logger)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Error(ctx, "metrics server failed", "error", err)
			}
		}()
	}

	api, err := client.New(cfg.API,
		client.WithLogger(logger),
		client.WithMetrics(client.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	return cli.NewApp(api, logger).Run(ctx, args)
}
