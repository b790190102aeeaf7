package handlers

import (
	"net/http"

	"clearcause/internal/domain"
	"clearcause/internal/service"
)

type statusRequest struct {
	Status domain.CampaignStatus `json:"status"`
}

type proofRequest struct {
	ProofURL    string `json:"proofUrl"`
	Description string `json:"description"`
}

type decisionRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

func (a *App) ListCampaigns(w http.ResponseWriter, r *http.Request) {
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
	q := r.URL.Query()
	list, err := a.Campaigns.List(r.Context(), actor(r), domain.CampaignFilter{
		Status:    domain.CampaignStatus(q.Get("status")),
		Category:  q.Get("category"),
		CharityID: charityID,
		Search:    q.Get("q"),
		Page:      p,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Campaign{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Campaigns.Get(r.Context(), actor(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req service.CampaignInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Campaigns.Create(r.Context(), actor(r), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, c)
}

func (a *App) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req service.CampaignInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Campaigns.Update(r.Context(), actor(r), id, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Campaigns.Delete(r.Context(), actor(r), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, map[string]bool{"deleted": true})
}

// UpdateCampaignStatus serves both the charity and the admin route; the
// service applies the role rules.
func (a *App) UpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req statusRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Campaigns.UpdateStatus(r.Context(), actor(r), id, req.Status)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, c)
}

func (a *App) ReleaseSeed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	d, err := a.Disbursements.ReleaseSeedFunds(r.Context(), actor(r), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, d)
}

func (a *App) ListDisbursements(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := a.Disbursements.ListDisbursements(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Disbursement{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) SubmitMilestoneProof(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req proofRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	m, err := a.Disbursements.SubmitMilestoneProof(r.Context(), actor(r), id, req.ProofURL, req.Description)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, m)
}

func (a *App) ReviewMilestone(w http.ResponseWriter, r *http.Request) {
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
	m, err := a.Disbursements.ReviewMilestone(r.Context(), actor(r), id, req.Approve, req.Notes)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, m)
}
