package handlers

import (
	"net/http"

	"clearcause/internal/domain"
	"clearcause/internal/service"
)

type processRequest struct {
	Status domain.WithdrawalStatus `json:"status"`
	Reason string                  `json:"reason"`
}

func (a *App) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req service.WithdrawalInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	wt, err := a.Withdrawals.Request(r.Context(), actor(r), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, wt)
}

func (a *App) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	charityID, err := queryID(r, "charityId")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := a.Withdrawals.List(r.Context(), actor(r), charityID, p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.WithdrawalTransaction{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) CancelWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	wt, err := a.Withdrawals.Cancel(r.Context(), actor(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, wt)
}

func (a *App) AdminWithdrawals(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	status := domain.WithdrawalStatus(r.URL.Query().Get("status"))
	list, err := a.Withdrawals.ListAll(r.Context(), actor(r), status, p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.WithdrawalTransaction{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req processRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	wt, err := a.Withdrawals.Process(r.Context(), actor(r), id, req.Status, req.Reason)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, wt)
}
