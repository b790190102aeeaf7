package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clearcause/internal/domain"
	"clearcause/internal/middleware"
	"clearcause/internal/service"
)

const maxJSONBody = 1 << 20

// App holds the services the HTTP handlers call.
type App struct {
	Users         *service.UserService
	Charities     *service.CharityService
	Campaigns     *service.CampaignService
	Donations     *service.DonationService
	Reviews       *service.ReviewService
	Feedback      *service.FeedbackService
	Withdrawals   *service.WithdrawalService
	Disbursements *service.DisbursementService
	Uploads       *service.UploadService
	Stats         *service.StatsService
	Audit         *service.AuditService

	// Ping reports database health for /healthz. Optional.
	Ping           func(ctx context.Context) error
	MaxUploadBytes int64
	Logger         zerolog.Logger
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) ok(w http.ResponseWriter, code int, data any) {
	a.json(w, code, envelope{Success: true, Data: data})
}

// fail renders err as the failure envelope. Internal errors are logged with
// their cause and shown to the client generically.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	de := domain.AsError(err)
	if de.Kind == domain.KindInternal {
		a.Logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("request failed")
	}
	a.json(w, de.Status, envelope{Error: &errorBody{Code: string(de.Kind), Message: de.Message}})
}

// decode reads a JSON body into dst, rejecting unknown fields and trailing data.
func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return domain.Validation("request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Validation("request body is required")
		}
		return domain.Validation("invalid payload: %s", strings.TrimPrefix(err.Error(), "json: "))
	}
	if dec.More() {
		return domain.Validation("invalid payload: trailing data")
	}
	return nil
}

// page reads limit and offset query parameters.
func page(r *http.Request) (domain.Page, error) {
	var p domain.Page
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, domain.Validation("limit must be a non-negative integer")
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, domain.Validation("offset must be a non-negative integer")
		}
		p.Offset = n
	}
	return p.Normalize(), nil
}

// pathID returns the {id} route parameter. A value that is not a uuid names
// nothing, so it is a not-found rather than a validation error.
func pathID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.NotFound("resource")
	}
	return id, nil
}

// queryID reads an optional uuid filter from the query string.
func queryID(r *http.Request, key string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return "", nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return "", domain.Validation("%s must be a valid id", key)
	}
	return v, nil
}

func actor(r *http.Request) domain.Actor {
	return middleware.ActorFromContext(r.Context())
}
