package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"blogsite/internal/guard"
	"blogsite/internal/models"

	"gitlab.com/golang-commonmark/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index.html",
	"about.html",
	"register.html",
	"login.html",
	"users.html",
	"update_user.html",
	"account.html",
	"create_post.html",
	"post.html",
	"update_post.html",
	"error.html",
}

// raw HTML in post bodies is escaped, never passed through
var markdownRenderer = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

var templateFuncs = template.FuncMap{
	"markdown": func(source string) template.HTML {
		return template.HTML(markdownRenderer.RenderToString([]byte(source)))
	},
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006 15:04")
	},
	"canEdit": func(identity *models.Account, post *models.Post) bool {
		return guard.OwnerOrAdmin(identity, post.AuthorID).Allowed()
	},
	"edited": func(post *models.Post) bool {
		return post.UpdatedAt.After(post.CreatedAt)
	},
}

func parsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.New(name).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return pages
}

// formValues echoes submitted input back into a re-rendered form.
type formValues struct {
	Username string
	Title    string
	Content  string
}

type page struct {
	Identity  *models.Account
	Flash     string
	Error     string
	CSRFToken string
	Form      formValues

	Posts    []models.Post
	Post     *models.Post
	Accounts []models.Account
	Account  *models.Account
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	tmpl, ok := h.pages[name]
	if !ok {
		log.Printf("template %s not found", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token, err := h.Session.CSRFToken(r.Context())
	if err != nil {
		log.Printf("error rendering %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	p.CSRFToken = token
	p.Flash = h.Session.PopFlash(r.Context())

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		log.Printf("error rendering %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, identity *models.Account, status int, message string) {
	h.render(w, r, status, "error.html", page{Identity: identity, Error: message})
}
