package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"blogsite/internal/service"
	"blogsite/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type Handlers struct {
	AuthService    service.AuthService
	AccountService service.AccountService
	PostService    service.PostService
	StatsService   service.StatsService
	Session        *session.Authority
	Validate       *validator.Validate

	pages map[string]*template.Template
}

func NewHandlers(services *service.Service, sess *session.Authority) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		AccountService: services.Account,
		PostService:    services.Post,
		StatsService:   services.Stats,
		Session:        sess,
		Validate:       newValidator(),
		pages:          parsePages(),
	}
}

// newValidator adds maxbytes, a length limit in bytes rather than characters,
// for values such as passwords that bcrypt caps at 72 bytes, and notblank.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Routes registers every page. Session loading and CSRF checks are applied
// by the caller around the returned router.
func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/about", h.About).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/register", h.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	r.HandleFunc("/users", h.Users).Methods(http.MethodGet)
	r.HandleFunc("/update/{id}", h.UpdateUser).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/delete/{id}", h.DeleteUser).Methods(http.MethodPost)
	r.HandleFunc("/account", h.Account).Methods(http.MethodGet, http.MethodPost)

	// registered before /post/{id} so "new" is not taken for an id
	r.HandleFunc("/post/new", h.NewPost).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/post/{id}", h.ShowPost).Methods(http.MethodGet)
	r.HandleFunc("/post/{id}/delete", h.DeletePost).Methods(http.MethodPost)
	r.HandleFunc("/post/{id}/update", h.UpdatePost).Methods(http.MethodGet, http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
