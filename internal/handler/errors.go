package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"blogsite/internal/guard"
	"blogsite/internal/models"
	"blogsite/internal/repository"
	"blogsite/internal/service"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// fail maps an error from the guard, the services or the repositories to a
// response. identity may be nil.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, identity *models.Account, err error) {
	switch {
	case errors.Is(err, guard.ErrUnauthenticated):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, guard.ErrForbidden):
		h.renderError(w, r, identity, http.StatusForbidden, "You do not have permission to do that.")
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, repository.ErrPasswordTooLong):
		h.renderError(w, r, identity, http.StatusBadRequest, "The form is invalid.")
	case errors.Is(err, repository.ErrNotFound):
		h.renderError(w, r, identity, http.StatusNotFound, "The page you asked for does not exist.")
	default:
		log.Printf("error serving %s %s: %v", r.Method, r.URL.Path, err)
		h.renderError(w, r, identity, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// allow reports whether d lets the request through, answering it otherwise.
func (h *Handlers) allow(w http.ResponseWriter, r *http.Request, identity *models.Account, d guard.Decision) bool {
	if d.Allowed() {
		return true
	}
	h.fail(w, r, identity, d.Err())
	return false
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	identity, err := h.Session.Current(r.Context())
	if err != nil {
		log.Printf("error resolving session for %s: %v", r.URL.Path, err)
	}
	h.renderError(w, r, identity, http.StatusNotFound, "The page you asked for does not exist.")
}

// validationMessage turns validator errors into a sentence per field.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "The form is invalid."
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("%s is required.", fe.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param()))
		case "maxbytes":
			messages = append(messages, fmt.Sprintf("%s must be at most %s bytes.", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid.", fe.Field()))
		}
	}

	return strings.Join(messages, " ")
}
