package handlers

import (
	"errors"
	"net/http"
	"strings"

	"blogsite/internal/guard"
	"blogsite/internal/models"
	"blogsite/internal/repository"
)

type RegisterForm struct {
	Username string `validate:"required,min=3,max=80"`
	Password string `validate:"required,min=6,maxbytes=72"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// identity resolves the caller. On failure the response has been written and
// ok is false.
func (h *Handlers) identity(w http.ResponseWriter, r *http.Request) (*models.Account, bool) {
	identity, err := h.Session.Current(r.Context())
	if err != nil {
		h.fail(w, r, nil, err)
		return nil, false
	}
	return identity, true
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "register.html", page{Identity: identity})
		return
	}

	form := RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	values := formValues{Username: form.Username}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, "register.html", page{Identity: identity, Form: values, Error: validationMessage(err)})
		return
	}

	_, err := h.AuthService.Register(r.Context(), repository.CreateAccountRequest{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			h.render(w, r, http.StatusConflict, "register.html", page{Identity: identity, Form: values, Error: "That username is already taken."})
			return
		}
		if errors.Is(err, repository.ErrPasswordTooLong) {
			h.render(w, r, http.StatusBadRequest, "register.html", page{Identity: identity, Form: values, Error: "Password must be at most 72 bytes."})
			return
		}
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), "Account created. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if identity != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "login.html", page{})
		return
	}

	form := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	values := formValues{Username: form.Username}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, "login.html", page{Form: values, Error: validationMessage(err)})
		return
	}

	account, err := h.AuthService.Verify(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			h.render(w, r, http.StatusUnauthorized, "login.html", page{Form: values, Error: "Invalid username or password."})
			return
		}
		h.fail(w, r, nil, err)
		return
	}

	if err := h.Session.Start(r.Context(), account); err != nil {
		h.fail(w, r, nil, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok || !h.allow(w, r, identity, guard.Authenticated(identity)) {
		return
	}

	if err := h.Session.End(r.Context()); err != nil {
		h.fail(w, r, identity, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
