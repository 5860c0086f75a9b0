// Package netx runs the small HTTP listener that exposes client metrics.
package netx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/cheddargetter/logging"
)

const shutdownTimeout = 3 * time.Second

// MetricsServer serves a Prometheus registry at /metrics.
type MetricsServer struct {
	address  string
	gatherer prometheus.Gatherer
	logger   logging.Logger
}

func NewMetricsServer(address string, g prometheus.Gatherer, l logging.Logger) *MetricsServer {
	return &MetricsServer{
		address:  address,
		gatherer: g,
		logger:   l.With("module", "metrics_server"),
	}
}

// Run listens until ctx is cancelled, then shuts down. A clean shutdown
// returns nil.
func (s *MetricsServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping metrics server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting metrics server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
