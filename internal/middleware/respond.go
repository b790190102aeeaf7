package middleware

import (
	"encoding/json"
	"net/http"

	"clearcause/internal/domain"
)

// writeError renders the same failure envelope as the handlers.
func writeError(w http.ResponseWriter, e *domain.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": string(e.Kind), "message": e.Message},
	})
}
