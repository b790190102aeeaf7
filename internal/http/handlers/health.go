package handlers

import (
	"context"
	"net/http"
	"time"

	"clearcause/internal/domain"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Ping(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("health check: database unreachable")
			a.json(w, http.StatusServiceUnavailable, envelope{Error: &errorBody{
				Code:    string(domain.KindInternal),
				Message: "database unavailable",
			}})
			return
		}
	}
	a.ok(w, http.StatusOK, map[string]string{"status": "ok"})
}
