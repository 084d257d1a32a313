package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wynn-optimizer/internal/redis"
)

type metricsServer struct {
	srv    *http.Server
	logger *zap.Logger
}

// newMetricsRouter serves /metrics and a /healthz that pings redis when one
// is configured
func newMetricsRouter(rc redis.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if rc != nil {
			if err := redis.Ping(req.Context(), rc, time.Second); err != nil {
				http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func startMetricsServer(addr string, rc redis.Client, log *zap.Logger) *metricsServer {
	m := &metricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           newMetricsRouter(rc),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}

	go func() {
		log.Info("metrics server listening", zap.String("addr", addr))
		if err := m.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	return m
}

func (m *metricsServer) shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := m.srv.Shutdown(ctx); err != nil {
		m.logger.Warn("metrics server shutdown failed", zap.Error(err))
	}
}
