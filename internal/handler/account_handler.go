package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"blogsite/internal/guard"
	"blogsite/internal/repository"

	"github.com/gorilla/mux"
)

type AccountForm struct {
	Username string `validate:"required,min=3,max=80"`
}

func (h *Handlers) Users(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	accounts, err := h.AccountService.List(r.Context(), identity)
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.render(w, r, http.StatusOK, "users.html", page{Identity: identity, Accounts: accounts})
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	accountID := mux.Vars(r)["id"]

	account, err := h.AccountService.Get(r.Context(), identity, accountID)
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "update_user.html", page{
			Identity: identity,
			Account:  account,
			Form:     formValues{Username: account.Username},
		})
		return
	}

	form := AccountForm{Username: strings.TrimSpace(r.PostFormValue("username"))}
	current := page{Identity: identity, Account: account, Form: formValues{Username: form.Username}}

	if err := h.Validate.Struct(form); err != nil {
		current.Error = validationMessage(err)
		h.render(w, r, http.StatusBadRequest, "update_user.html", current)
		return
	}

	err = h.AccountService.UpdateUsername(r.Context(), identity, repository.UpdateAccountRequest{
		AccountID: accountID,
		Username:  form.Username,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			current.Error = "That username is already taken."
			h.render(w, r, http.StatusConflict, "update_user.html", current)
			return
		}
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), "Username updated.")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	removed, err := h.AccountService.Delete(r.Context(), identity, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), fmt.Sprintf("Account deleted together with %d posts.", removed))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// Account lets any logged-in user rename themselves.
func (h *Handlers) Account(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok || !h.allow(w, r, identity, guard.Authenticated(identity)) {
		return
	}

	posts, err := h.PostService.ListByAuthor(r.Context(), identity.AccountID)
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "account.html", page{
			Identity: identity,
			Posts:    posts,
			Form:     formValues{Username: identity.Username},
		})
		return
	}

	form := AccountForm{Username: strings.TrimSpace(r.PostFormValue("username"))}
	current := page{Identity: identity, Posts: posts, Form: formValues{Username: form.Username}}

	if err := h.Validate.Struct(form); err != nil {
		current.Error = validationMessage(err)
		h.render(w, r, http.StatusBadRequest, "account.html", current)
		return
	}

	if err := h.AccountService.UpdateOwnUsername(r.Context(), identity, form.Username); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			current.Error = "That username is already taken."
			h.render(w, r, http.StatusConflict, "account.html", current)
			return
		}
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), "Username updated.")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}
