package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/jonathan/company-prep/internal/companies/companiestest"
	"github.com/jonathan/company-prep/internal/research"
	"github.com/jonathan/company-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCompany(t *testing.T, data []byte) types.Company {
	t.Helper()
	var c types.Company
	require.NoError(t, json.Unmarshal(data, &c))
	return c
}

func TestSearchCompany_Found(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store.Seed(companiestest.Company("Acme Corp"))

	w := ts.do(http.MethodGet, "/api/companies/search?q=acm", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Corp", decodeCompany(t, w.Body.Bytes()).Name)
	assert.Equal(t, []string{"acm"}, ts.store.Searches())
}

func TestSearchCompany_NotFoundEchoesQuery(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/companies/search?q=Nowhere+Ltd", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Company information not found", body["message"])
	assert.Equal(t, "Nowhere Ltd", body["query"])
	assert.Equal(t, []string{"Nowhere Ltd"}, ts.store.Searches())
	assert.Empty(t, ts.provider.Calls())
}

func TestSearchCompany_EmptyQuery(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, target := range []string{"/api/companies/search", "/api/companies/search?q=%20%20"} {
		w := ts.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.NotEmpty(t, decodeBody(t, w)["message"])
	}
	assert.Empty(t, ts.store.Searches())
}

func TestSearchCompany_StoreError(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store.Err = errors.New("db down")

	w := ts.do(http.MethodGet, "/api/companies/search?q=acme", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to search for company", decodeBody(t, w)["message"])
}

func TestResearchCompany_Created(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPost, "/api/companies/research", `{"name":"Beta Inc"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	c := decodeCompany(t, w.Body.Bytes())
	assert.Equal(t, "Beta Inc", c.Name)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", c.ID.String())
	assert.Equal(t, 1, ts.store.Count())

	w = ts.do(http.MethodGet, "/api/companies/search?q=Beta+Inc", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResearchCompany_ExistingIsReturnedUnchanged(t *testing.T) {
	ts := newTestServer(t, nil)
	seeded := ts.store.Seed(companiestest.Company("Acme Corp"))

	w := ts.do(http.MethodPost, "/api/companies/research", `{"name":"acme corp"}`)

	require.Equal(t, http.StatusOK, w.Code)
	c := decodeCompany(t, w.Body.Bytes())
	assert.Equal(t, seeded.ID, c.ID)
	assert.Empty(t, ts.provider.Calls())
	assert.Equal(t, 1, ts.store.Count())
}

func TestResearchCompany_TwiceStoresOnce(t *testing.T) {
	ts := newTestServer(t, nil)

	first := ts.do(http.MethodPost, "/api/companies/research", `{"name":"Gamma"}`)
	second := ts.do(http.MethodPost, "/api/companies/research", `{"name":"Gamma"}`)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, decodeCompany(t, first.Body.Bytes()).ID, decodeCompany(t, second.Body.Bytes()).ID)
	assert.Equal(t, 1, ts.store.Count())
}

func TestResearchCompany_PlaceholderWithoutAPIKey(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.provider.Err = research.ErrMissingAPIKey

	w := ts.do(http.MethodPost, "/api/companies/research", `{"name":"New Co"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	c := decodeCompany(t, w.Body.Bytes())
	assert.Equal(t, "New Co", c.Name)
	require.NotNil(t, c.Website)
	assert.Equal(t, "https://www.newco.com", *c.Website)
	assert.Contains(t, c.CoreBusiness.Summary, "Gemini API key required")
}

func TestResearchCompany_ProviderFailure(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.provider.Err = &research.ProviderError{Company: "Delta", Message: "quota exceeded"}

	w := ts.do(http.MethodPost, "/api/companies/research", `{"name":"Delta"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to research company", body["message"])
	assert.Contains(t, body["error"], "quota exceeded")
	assert.Equal(t, 0, ts.store.Count())
}

func TestResearchCompany_BadInput(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"not json", `name=Acme`, "Invalid request body"},
		{"missing name", `{}`, "Company name is required"},
		{"blank name", `{"name":"   "}`, "Company name is required"},
		{"too long", `{"name":"` + strings.Repeat("a", 201) + `"}`, "Company name must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, "/api/companies/research", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeBody(t, w)["message"])
		})
	}
	assert.Empty(t, ts.provider.Calls())
}

func TestListCompanies(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/companies", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"companies":[]}`, w.Body.String())

	ts.store.Seed(companiestest.Company("Acme Corp"))
	ts.store.Seed(companiestest.Company("Beta Inc"))
	ts.store.Seed(companiestest.Company("Gamma"))

	w = ts.do(http.MethodGet, "/api/companies?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list types.CompanyList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Companies, 2)
	assert.Equal(t, "Gamma", list.Companies[0].Name)
	assert.Equal(t, "Beta Inc", list.Companies[1].Name)
}

func TestListCompanies_StoreError(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store.Err = errors.New("db down")

	w := ts.do(http.MethodGet, "/api/companies", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to retrieve companies", decodeBody(t, w)["message"])
}

func TestGetCompany(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store.Seed(companiestest.Company("Acme Corp"))

	w := ts.do(http.MethodGet, "/api/companies/Acme%20Corp", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Corp", decodeCompany(t, w.Body.Bytes()).Name)

	// lookups by name are not searches
	assert.Empty(t, ts.store.Searches())
}

func TestGetCompany_EscapedNames(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, name := range []string{"100% Pure", "A%41 Labs", "AC/DC"} {
		ts.store.Seed(companiestest.Company(name))
	}

	for _, name := range []string{"100% Pure", "A%41 Labs", "AC/DC"} {
		w := ts.do(http.MethodGet, "/api/companies/"+url.PathEscape(name), "")
		require.Equal(t, http.StatusOK, w.Code, name)
		assert.Equal(t, name, decodeCompany(t, w.Body.Bytes()).Name)
	}
}

func TestGetCompany_NotFound(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/companies/Nobody", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Company not found", body["message"])
	_, hasQuery := body["query"]
	assert.False(t, hasQuery)
}

func TestGetCompany_EmptyName(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, target := range []string{"/api/companies/", "/api/companies/%20"} {
		w := ts.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "Company name is required", decodeBody(t, w)["message"])
	}
}

func TestRecentSearches(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, q := range []string{"Acme", "Beta", "Acme", "Gamma"} {
		ts.do(http.MethodGet, "/api/companies/search?q="+q, "")
	}

	w := ts.do(http.MethodGet, "/api/searches/recent?limit=3", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.RecentSearches
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Gamma", "Acme", "Beta"}, resp.Searches)
}

func TestRecentSearches_Empty(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/searches/recent", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"searches":[]}`, w.Body.String())
}
