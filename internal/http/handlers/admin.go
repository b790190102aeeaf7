package handlers

import (
	"net/http"

	"clearcause/internal/domain"
)

func (a *App) AuditLogs(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	actorID, err := queryID(r, "actorId")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	logs, err := a.Audit.List(r.Context(), actor(r), domain.AuditFilter{
		ActorID:    actorID,
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		Action:     q.Get("action"),
		Page:       p,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	a.ok(w, http.StatusOK, logs)
}

func (a *App) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	users, err := a.Users.List(r.Context(), actor(r), domain.UserFilter{
		Role:   domain.UserRole(q.Get("role")),
		Search: q.Get("q"),
		Page:   p,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	a.ok(w, http.StatusOK, users)
}

func (a *App) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req roleRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Users.SetRole(r.Context(), actor(r), id, req.Role); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, map[string]string{"role": string(req.Role)})
}

func (a *App) SetUserActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req activeRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Users.SetActive(r.Context(), actor(r), id, req.Active); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (a *App) PlatformStats(w http.ResponseWriter, r *http.Request) {
	s, err := a.Stats.Platform(r.Context(), actor(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, s)
}

func (a *App) CharityDashboard(w http.ResponseWriter, r *http.Request) {
	s, err := a.Stats.Charity(r.Context(), actor(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, s)
}
