package handlers

import (
	"net/http"

	"clearcause/internal/domain"
	"clearcause/internal/service"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

type roleRequest struct {
	Role domain.UserRole `json:"role"`
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (a *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpInput
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	res, err := a.Users.SignUp(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, res)
}

func (a *App) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	res, err := a.Users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, res)
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.Me(r.Context(), actor(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, user)
}

func (a *App) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	user, err := a.Users.UpdateProfile(r.Context(), actor(r), req.FullName, req.AvatarURL)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, user)
}
