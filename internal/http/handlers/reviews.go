package handlers

import (
	"net/http"

	"clearcause/internal/domain"
)

type ratingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type moderationRequest struct {
	Status domain.ReviewStatus `json:"status"`
}

func (a *App) SubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req ratingRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	rv, err := a.Reviews.Submit(r.Context(), actor(r), id, req.Rating, req.Comment)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, rv)
}

func (a *App) CampaignReviews(w http.ResponseWriter, r *http.Request) {
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
	status := domain.ReviewStatus(r.URL.Query().Get("status"))
	list, err := a.Reviews.ListForCampaign(r.Context(), actor(r), id, status, p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.CampaignReview{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) CampaignRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	s, err := a.Reviews.Summary(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, s)
}

func (a *App) MyReviews(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := a.Reviews.ListMine(r.Context(), actor(r), p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.CampaignReview{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req ratingRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	rv, err := a.Reviews.Update(r.Context(), actor(r), id, req.Rating, req.Comment)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, rv)
}

func (a *App) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Reviews.Delete(r.Context(), actor(r), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *App) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req moderationRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	rv, err := a.Reviews.Moderate(r.Context(), actor(r), id, req.Status)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, rv)
}

func (a *App) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req ratingRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	fb, err := a.Feedback.Submit(r.Context(), actor(r), id, req.Rating, req.Comment)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, fb)
}

func (a *App) CharityFeedback(w http.ResponseWriter, r *http.Request) {
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
	status := domain.ReviewStatus(r.URL.Query().Get("status"))
	list, err := a.Feedback.ListForCharity(r.Context(), actor(r), id, status, p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.CharityFeedback{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) CharityRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	s, err := a.Feedback.Summary(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, s)
}

func (a *App) MyFeedback(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	list, err := a.Feedback.ListMine(r.Context(), actor(r), p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []domain.CharityFeedback{}
	}
	a.ok(w, http.StatusOK, list)
}

func (a *App) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req ratingRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	fb, err := a.Feedback.Update(r.Context(), actor(r), id, req.Rating, req.Comment)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, fb)
}

func (a *App) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Feedback.Delete(r.Context(), actor(r), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *App) ModerateFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var req moderationRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	fb, err := a.Feedback.Moderate(r.Context(), actor(r), id, req.Status)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, fb)
}
