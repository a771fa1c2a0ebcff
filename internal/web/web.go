// Package web renders the server-side HTML pages: branch and semester
// navigation, the subject page with its paper viewer, and the upload form.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/upload"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{"home", "branch", "semester", "subject", "upload", "notfound", "error"}

// Handler serves the HTML pages.
type Handler struct {
	catalog  *catalog.Service
	upload   *upload.Service
	maxBytes int64
	logger   *log.Logger
	tmpl     map[string]*template.Template
}

// NewHandler parses the embedded templates and returns a Handler.
func NewHandler(c *catalog.Service, u *upload.Service, maxBytes int64, logger *log.Logger) (*Handler, error) {
	tmpl := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		tmpl[name] = t
	}
	return &Handler{catalog: c, upload: u, maxBytes: maxBytes, logger: logger, tmpl: tmpl}, nil
}

// Routes mounts the pages on r. Static path segments take precedence over
// the branch patterns, so other routers can be mounted alongside.
func (h *Handler) Routes(r chi.Router) {
	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", h.Home)
	r.Get("/admin/upload", h.UploadForm)
	r.Post("/admin/upload", h.UploadSubmit)
	r.Get("/{branch}", h.Branch)
	r.Get("/{branch}/{semester}", h.Semester)
	r.Get("/{branch}/{semester}/{subject}", h.Subject)
	r.NotFound(h.NotFound)
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"plural": func(n int, word string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, word)
		}
		return fmt.Sprintf("%d %ss", n, word)
	},
	"paperQuery": paperQuery,
	"semesters":  catalog.Semesters,
}

// paperQuery is the query string selecting a paper, keeping the search term.
func paperQuery(search, paperID string) string {
	v := url.Values{}
	if search != "" {
		v.Set("search", search)
	}
	v.Set("paper", paperID)
	return "?" + v.Encode()
}

type page struct {
	Title string
	Data  any
}

func (h *Handler) render(w http.ResponseWriter, status int, name, title string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl[name].Execute(&buf, page{Title: title, Data: data}); err != nil {
		h.logger.Error("web: render failed", "page", name, "err", err)
		if name != "error" {
			h.render(w, http.StatusInternalServerError, "error", "Something went wrong", nil)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail renders the not-found page for missing catalog entries and the error
// page for everything else.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if h.catalog.IsNotFound(err) {
		h.NotFound(w, r)
		return
	}
	h.logger.Error("web: page failed", "path", r.URL.Path, "err", err)
	h.render(w, http.StatusInternalServerError, "error", "Something went wrong", nil)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusNotFound, "notfound", "Page not found", nil)
}

// Home lists the branches.
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, "home", "BTech Question Paper Portal", h.catalog.Home())
}

// Branch shows the semester picker of a branch.
func (h *Handler) Branch(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.Branch(chi.URLParam(r, "branch"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "branch", view.Branch.Name, view)
}

// Semester lists the subjects of a semester.
func (h *Handler) Semester(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.Semester(r.Context(), chi.URLParam(r, "branch"), chi.URLParam(r, "semester"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "semester", fmt.Sprintf("%s Semester %d", view.Branch.ShortName, view.Semester), view)
}

// Subject shows the papers of a subject and the selected paper, if any.
func (h *Handler) Subject(w http.ResponseWriter, r *http.Request) {
	q := catalog.SubjectQuery{
		Search:  r.URL.Query().Get("search"),
		PaperID: r.URL.Query().Get("paper"),
	}
	view, err := h.catalog.Subject(r.Context(),
		chi.URLParam(r, "branch"), chi.URLParam(r, "semester"), chi.URLParam(r, "subject"), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "subject", view.Subject.Name, view)
}
