// Package web serves the HTML pages: home, company details and the research fallbacks.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/company-prep/internal/companies"
	"github.com/jonathan/company-prep/internal/types"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html static/*
var assets embed.FS

// recentChips is how many recent searches the home page offers
const recentChips = 5

// CompanyService is what the pages need from the company operations
type CompanyService interface {
	Search(ctx context.Context, query string) (*types.Company, error)
	Research(ctx context.Context, name string) (*types.Company, bool, error)
	RecentSearches(ctx context.Context, limit int) ([]string, error)
}

// Handler renders the pages
type Handler struct {
	companies CompanyService
	tmpl      *Template
	static    http.Handler
	logger    zerolog.Logger
	now       func() time.Time
}

// New parses the embedded templates and returns a Handler
func New(companies CompanyService, logger zerolog.Logger) (*Handler, error) {
	tmpl, err := NewTemplate(assets)
	if err != nil {
		return nil, err
	}
	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	return &Handler{
		companies: companies,
		tmpl:      tmpl,
		static:    http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Mount registers the page routes on r
func (h *Handler) Mount(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/search", h.search)
	r.Get("/company/", h.redirectHome)
	r.Get("/company/{name}", h.company)
	r.Post("/company/{name}/research", h.research)
	r.Get("/static/*", h.static.ServeHTTP)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	recent, err := h.companies.RecentSearches(r.Context(), recentChips)
	if err != nil {
		// the page still works without chips
		h.logger.Warn().Err(err).Msg("failed to load recent searches")
	}
	h.render(w, http.StatusOK, "home.html", map[string]any{
		"Title":  "Research Companies for Your Interview",
		"Recent": recent,
	})
}

// search is the no-JS target of the search form
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		h.redirectHome(w, r)
		return
	}
	http.Redirect(w, r, CompanyURL(q), http.StatusFound)
}

func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) company(w http.ResponseWriter, r *http.Request) {
	name, ok := h.nameParam(w, r)
	if !ok {
		return
	}

	company, err := h.companies.Search(r.Context(), name)
	switch {
	case err == nil:
		view := NewCompanyView(company, h.now())
		h.render(w, http.StatusOK, "company.html", map[string]any{
			"Title":   view.Name + " Research",
			"Query":   name,
			"Company": view,
		})
	case errors.Is(err, companies.ErrNotFound):
		// The page researches the company once from the browser, with a form fallback
		h.render(w, http.StatusOK, "researching.html", map[string]any{
			"Title": "Researching " + name,
			"Query": name,
		})
	default:
		h.fail(w, r, err, name)
	}
}

func (h *Handler) research(w http.ResponseWriter, r *http.Request) {
	name, ok := h.nameParam(w, r)
	if !ok {
		return
	}

	if _, _, err := h.companies.Research(r.Context(), name); err != nil {
		h.logger.Error().Err(err).Str("company", name).Msg("research failed")
		h.render(w, http.StatusNotFound, "not_found.html", map[string]any{
			"Title": "Company Information Not Available",
			"Query": name,
		})
		return
	}
	http.Redirect(w, r, CompanyURL(name), http.StatusSeeOther)
}

// nameParam returns the trimmed company name, redirecting home when it is empty
func (h *Handler) nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := pathParam(r, "name")
	name = strings.TrimSpace(name)
	if err != nil || name == "" {
		h.redirectHome(w, r)
		return "", false
	}
	return name, true
}

// pathParam returns a decoded route parameter. chi matches on r.URL.Path, which is already
// decoded, unless the request needed a RawPath (an escaped "/" for example).
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, name string) {
	var inputErr *companies.InputError
	if errors.As(err, &inputErr) {
		h.redirectHome(w, r)
		return
	}
	h.logger.Error().Err(err).Str("company", name).Msg("company page failed")
	h.render(w, http.StatusInternalServerError, "error.html", map[string]any{
		"Title":   "Something went wrong",
		"Query":   name,
		"Message": "We could not load this company right now. Please try again later.",
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	if err := h.tmpl.Render(w, status, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
