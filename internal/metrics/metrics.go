// Package metrics declares the Prometheus collectors shared by all services
// and serves them over HTTP.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RPCRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_server_requests_total",
			Help: "Handled RPC requests by service, method and status code.",
		},
		[]string{"service", "method", "code"},
	)

	RPCLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_server_latency_seconds",
			Help:    "Latency of handled RPC requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)

	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests served by the gateway.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// GateDecisions counts authorization gate outcomes:
	// allowed, missing_token, invalid_token, unavailable.
	GateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_auth_decisions_total",
			Help: "Authorization gate decisions by outcome.",
		},
		[]string{"outcome"},
	)

	registerOnce sync.Once
)

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RPCRequests, RPCLatency, HTTPLatency, GateDecisions)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve runs a side HTTP listener with /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, logger logging.Logger) error {
	r := chi.NewRouter()
	r.Handle("/metrics", Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "Starting metrics listener", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
