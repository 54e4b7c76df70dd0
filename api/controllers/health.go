package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rentkart/rentkart-backend/api/responses"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

// HealthReady checks the database and cache. The cache client may be nil
// when redis is not configured.
func HealthReady(database pinger, cache *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"db": "ok", "redis": "ok"}

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				checks["db"] = "down"
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "degraded"
			}
		} else {
			checks["redis"] = "disabled"
		}

		responses.WriteSuccess(w, "ready", checks)
	}
}
