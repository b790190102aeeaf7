package handlers

import (
	"net/http"

	"clearcause/internal/domain"
	"clearcause/internal/middleware"
	"clearcause/internal/service"
)

type completeRequest struct {
	PaymentReference string `json:"paymentReference"`
}

type failRequest struct {
	Reason string `json:"reason"`
}

func (a *App) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req service.DonationInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	req.Country = middleware.CountryFromContext(r.Context())
	d, err := a.Donations.Create(r.Context(), actor(r), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, d)
}

func (a *App) MyDonations(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := a.Donations.ListMine(r.Context(), actor(r), p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Donation{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) GetDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	d, err := a.Donations.Get(r.Context(), actor(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, d)
}

func (a *App) CompleteDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req completeRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	d, err := a.Donations.Complete(r.Context(), actor(r), id, req.PaymentReference)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, d)
}

func (a *App) FailDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req failRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	d, err := a.Donations.Fail(r.Context(), actor(r), id, req.Reason)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, d)
}

// CampaignDonations lists completed donations with anonymous donors hidden.
func (a *App) CampaignDonations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := a.Donations.ListByCampaign(r.Context(), id, p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, list)
}
