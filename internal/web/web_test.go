package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/company-prep/internal/companies"
	"github.com/jonathan/company-prep/internal/companies/companiestest"
	"github.com/jonathan/company-prep/internal/research"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPages struct {
	router   chi.Router
	store    *companiestest.Store
	provider *companiestest.Provider
}

func newTestPages(t *testing.T) *testPages {
	t.Helper()
	store := companiestest.NewStore()
	provider := &companiestest.Provider{Result: companiestest.Company}
	h, err := New(companies.NewService(store, provider, zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Mount(r)
	return &testPages{router: r, store: store, provider: provider}
}

func (tp *testPages) do(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tp.router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHome(t *testing.T) {
	tp := newTestPages(t)

	w := tp.do(http.MethodGet, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Research Companies for Your Interview")
	assert.Contains(t, body, "Save Interview Time")
	assert.NotContains(t, body, "Recently searched")
}

func TestHome_RecentSearchChips(t *testing.T) {
	tp := newTestPages(t)
	tp.do(http.MethodGet, "/company/Acme%20Corp")
	tp.do(http.MethodGet, "/company/Beta")

	body := tp.do(http.MethodGet, "/").Body.String()

	assert.Contains(t, body, "Recently searched")
	assert.Contains(t, body, `href="/company/Acme%20Corp"`)
	assert.Less(t, strings.Index(body, ">Beta<"), strings.Index(body, ">Acme Corp<"))
}

func TestCompanyPage_Found(t *testing.T) {
	tp := newTestPages(t)
	tp.store.Seed(companiestest.Company("Acme Corp"))

	w := tp.do(http.MethodGet, "/company/acme")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h2>Acme Corp</h2>")
	assert.Contains(t, body, ">example.com</a>")
	for _, heading := range []string{
		"Core Business", "Financials", "Funding", "Job Stability &amp; Employee Policies",
		"Stability", "Interview Considerations", "Recent References",
	} {
		assert.Contains(t, body, heading)
	}
	assert.Contains(t, body, "badge-strong")
	assert.Contains(t, body, "growth-up")
	assert.NotContains(t, body, "Other Details")
	assert.Contains(t, body, "Submit Feedback")
	assert.Empty(t, tp.provider.Calls())
}

func TestCompanyPage_EscapedNames(t *testing.T) {
	tp := newTestPages(t)
	for _, name := range []string{"100% Pure", "AC/DC"} {
		tp.store.Seed(companiestest.Company(name))
	}

	w := tp.do(http.MethodGet, CompanyURL("100% Pure"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h2>100% Pure</h2>")

	w = tp.do(http.MethodGet, CompanyURL("AC/DC"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h2>AC/DC</h2>")
	assert.Empty(t, tp.provider.Calls())
}

func TestCompanyPage_NotFoundStartsResearchPage(t *testing.T) {
	tp := newTestPages(t)

	w := tp.do(http.MethodGet, "/company/New%20Co")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-company="New Co"`)
	assert.Contains(t, body, "Company Information Not Available")
	assert.Contains(t, body, `action="/company/New%20Co/research"`)
	// the page itself never researches
	assert.Empty(t, tp.provider.Calls())
	assert.Equal(t, []string{"New Co"}, tp.store.Searches())
}

func TestCompanyPage_EmptyNameRedirects(t *testing.T) {
	tp := newTestPages(t)

	for _, target := range []string{"/company/", "/company/%20"} {
		w := tp.do(http.MethodGet, target)
		assert.Equal(t, http.StatusFound, w.Code, target)
		assert.Equal(t, "/", w.Header().Get("Location"))
	}
}

func TestCompanyPage_StoreError(t *testing.T) {
	tp := newTestPages(t)
	tp.store.Err = errors.New("db down")

	w := tp.do(http.MethodGet, "/company/Acme")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
}

func TestResearchForm(t *testing.T) {
	tp := newTestPages(t)

	w := tp.do(http.MethodPost, "/company/New%20Co/research")

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/company/New%20Co", w.Header().Get("Location"))
	assert.Equal(t, 1, tp.store.Count())

	page := tp.do(http.MethodGet, "/company/New%20Co")
	assert.Contains(t, page.Body.String(), "<h2>New Co</h2>")
}

func TestResearchForm_Failure(t *testing.T) {
	tp := newTestPages(t)
	tp.provider.Err = &research.ProviderError{Company: "Nope", Message: "quota exceeded"}

	w := tp.do(http.MethodPost, "/company/Nope/research")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Company Information Not Available")
	assert.Contains(t, body, "Try Another Search")
	assert.Contains(t, body, "https://www.google.com/search?q=Nope+company+information")
	assert.Equal(t, 0, tp.store.Count())
}

func TestSearchRedirect(t *testing.T) {
	tp := newTestPages(t)

	w := tp.do(http.MethodGet, "/search?q=+Acme+Corp+")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/company/Acme%20Corp", w.Header().Get("Location"))

	w = tp.do(http.MethodGet, "/search?q=")
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestStaticAssets(t *testing.T) {
	tp := newTestPages(t)

	w := tp.do(http.MethodGet, "/static/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "savedCompanies")

	w = tp.do(http.MethodGet, "/static/app.css")
	assert.Equal(t, http.StatusOK, w.Code)

	w = tp.do(http.MethodGet, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
