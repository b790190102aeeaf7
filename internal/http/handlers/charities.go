package handlers

import (
	"net/http"

	"clearcause/internal/domain"
	"clearcause/internal/service"
)

func (a *App) ListCharities(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	list, err := a.Charities.List(r.Context(), actor(r), domain.CharityFilter{
		Status: domain.VerificationStatus(q.Get("status")),
		Search: q.Get("q"),
		Page:   p,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Charity{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) GetCharity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Charities.Get(r.Context(), actor(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) MyCharity(w http.ResponseWriter, r *http.Request) {
	c, err := a.Charities.GetByUser(r.Context(), actor(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) RegisterCharity(w http.ResponseWriter, r *http.Request) {
	var req service.CharityInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Charities.Register(r.Context(), actor(r), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, c)
}

func (a *App) UpdateCharity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req service.CharityInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Charities.Update(r.Context(), actor(r), id, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) VerifyCharity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req decisionRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Charities.Verify(r.Context(), actor(r), id, req.Approve, req.Notes)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) CharityBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	b, err := a.Charities.Balance(r.Context(), actor(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, b)
}
