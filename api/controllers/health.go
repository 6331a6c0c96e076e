package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/packfinderz-cart/api/responses"
	"github.com/angelmondragon/packfinderz-cart/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-cart/pkg/errors"
	"github.com/angelmondragon/packfinderz-cart/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
)

const defaultPingTimeout = 3 * time.Second

// DegradedReporter is implemented by stores that can fall back to memory only.
type DegradedReporter interface {
	Degraded() bool
}

type healthResponse struct {
	Status   string `json:"status"`
	Backend  string `json:"backend,omitempty"`
	Degraded bool   `json:"degraded"`
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PackFinderz-Env", cfg.App.Env)
		responses.WriteSuccess(w, healthResponse{Status: "live"})
	}
}

// HealthReady pings the storage backend. A store running in memory-only mode
// is still ready but reports degraded.
func HealthReady(cfg *config.Config, logg *logger.Logger, storage kvstore.Pinger, store DegradedReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PackFinderz-Env", cfg.App.Env)

		if storage != nil {
			timeout := cfg.Storage.Timeout
			if timeout <= 0 {
				timeout = defaultPingTimeout
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			if err := storage.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage ping failed"))
				return
			}
		}

		resp := healthResponse{Status: "ready", Backend: cfg.Storage.Backend}
		if store != nil {
			resp.Degraded = store.Degraded()
		}
		responses.WriteSuccess(w, resp)
	}
}
