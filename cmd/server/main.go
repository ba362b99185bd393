package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/gluislopez/carwash-v2-sub000/internal/allocation"
	"github.com/gluislopez/carwash-v2-sub000/internal/auth"
	"github.com/gluislopez/carwash-v2-sub000/internal/config"
	"github.com/gluislopez/carwash-v2-sub000/internal/httpapi"
	"github.com/gluislopez/carwash-v2-sub000/internal/lifecycle"
	"github.com/gluislopez/carwash-v2-sub000/internal/middleware"
	"github.com/gluislopez/carwash-v2-sub000/internal/reporting"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage/sqlite"
	"github.com/gluislopez/carwash-v2-sub000/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	machine := lifecycle.NewMachine(store,
		lifecycle.WithFloor(allocation.FloorConfig{
			BandMin: cfg.FloorBandMin,
			BandMax: cfg.FloorBandMax,
			Minimum: cfg.FloorMinimum,
		}),
		lifecycle.WithLoyaltyRedeemPoints(cfg.LoyaltyRedeemPoints),
	)
	reporter := reporting.NewReporter(store, cfg.ClampNegativeNet)
	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	middleware.InitMetrics()

	api := httpapi.NewHandler(store, machine, reporter, authn, jwtManager)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api.Routes())

	// Wrap with h2c so terminals can use HTTP/2 without TLS.
	h2cHandler := h2c.NewHandler(mux, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
