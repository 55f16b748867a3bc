package handlers

import (
	"net/http"
	"strings"

	"blogsite/internal/guard"
	"blogsite/internal/repository"

	"github.com/gorilla/mux"
)

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	posts, err := h.PostService.List(r.Context())
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.render(w, r, http.StatusOK, "index.html", page{Identity: identity, Posts: posts})
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, "about.html", page{Identity: identity})
}

func (h *Handlers) ShowPost(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", page{Identity: identity, Post: post})
}

func (h *Handlers) NewPost(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok || !h.allow(w, r, identity, guard.Authenticated(identity)) {
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "create_post.html", page{Identity: identity})
		return
	}

	req := repository.CreatePostRequest{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: r.PostFormValue("content"),
	}

	if err := h.Validate.Struct(req); err != nil {
		h.render(w, r, http.StatusBadRequest, "create_post.html", page{
			Identity: identity,
			Form:     formValues{Title: req.Title, Content: req.Content},
			Error:    validationMessage(err),
		})
		return
	}

	if _, err := h.PostService.Create(r.Context(), identity, req); err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), "Post published.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetForEdit(r.Context(), identity, postID)
	if err != nil {
		h.fail(w, r, identity, err)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "update_post.html", page{
			Identity: identity,
			Post:     post,
			Form:     formValues{Title: post.Title, Content: post.Content},
		})
		return
	}

	req := repository.UpdatePostRequest{
		PostID:  postID,
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: r.PostFormValue("content"),
	}

	if err := h.Validate.Struct(req); err != nil {
		h.render(w, r, http.StatusBadRequest, "update_post.html", page{
			Identity: identity,
			Post:     post,
			Form:     formValues{Title: req.Title, Content: req.Content},
			Error:    validationMessage(err),
		})
		return
	}

	if _, err := h.PostService.Update(r.Context(), identity, req); err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), "Post updated.")
	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.PostService.Delete(r.Context(), identity, mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, identity, err)
		return
	}

	h.Session.Flash(r.Context(), "Post deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
