package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"pizza-orders/internal/forms"
	"pizza-orders/internal/models"
	"pizza-orders/internal/session"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login", "create", "index", "pizza", "confirm_delete", "edit_order", "error"}

type PageData struct {
	Title   string
	Session *session.Session
	Flashes []session.Flash
	Form    any
	Errors  forms.FieldErrors
	Catalog models.Catalog
	Orders  []models.PizzaOrder
	Order   *models.PizzaOrder
	Message string
	// CSRFField is the hidden token input every POST form must carry.
	CSRFField template.HTML
}

// Renderer writes HTML pages and redirects, saving the session cookie first
// so flashes survive to the next page.
type Renderer struct {
	pages    map[string]*template.Template
	sessions *session.Manager
	logger   zerolog.Logger
}

func NewRenderer(sessions *session.Manager, logger zerolog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	}

	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	parsed := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		parsed[name] = t
	}

	return &Renderer{
		pages:    parsed,
		sessions: sessions,
		logger:   logger,
	}, nil
}

func (rd *Renderer) session(r *http.Request) *session.Session {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		return &session.Session{}
	}
	return sess
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data PageData) {
	t, ok := rd.pages[page]
	if !ok {
		rd.logger.Error().Str("page", page).Msg("Unknown template")
		http.Error(w, "An internal error occurred", http.StatusInternalServerError)
		return
	}

	sess := rd.session(r)
	data.Session = sess
	data.Flashes = sess.Flashes()
	data.CSRFField = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rd.logger.Error().Err(err).Str("page", page).Msg("Error rendering template")
		http.Error(w, "An internal error occurred", http.StatusInternalServerError)
		return
	}

	if err := rd.sessions.Save(w, sess); err != nil {
		rd.logger.Error().Err(err).Msg("Error saving session")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (rd *Renderer) Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if err := rd.sessions.Save(w, rd.session(r)); err != nil {
		rd.logger.Error().Err(err).Msg("Error saving session")
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// ServerError covers storage failures, which have no recovery path.
func (rd *Renderer) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &rd.logger
	}
	logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	rd.Render(w, r, http.StatusInternalServerError, "error", PageData{
		Title:   "Error",
		Message: "Something went wrong while processing your request.",
	})
}
