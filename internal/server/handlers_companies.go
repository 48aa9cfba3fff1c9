package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/company-prep/internal/companies"
	"github.com/jonathan/company-prep/internal/types"
)

const maxRequestBody = 1 << 20

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// pathParam returns a decoded route parameter. chi routes on the decoded r.URL.Path
// unless the request carries a RawPath, in which case the parameter is still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// handleSearchCompany looks a company up by free-text query and records the search
func (s *Server) handleSearchCompany(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	company, err := s.companies.Search(r.Context(), query)
	if err != nil {
		switch HTTPStatus(err) {
		case http.StatusBadRequest:
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		case http.StatusNotFound:
			s.jsonResponse(w, http.StatusNotFound, types.NotFoundResponse{
				Message: "Company information not found",
				Query:   query,
			})
		default:
			s.requestLogger(r).Error().Err(err).Str("query", query).Msg("search failed")
			s.errorResponse(w, http.StatusInternalServerError, "Failed to search for company")
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

// handleResearchCompany returns the stored record for a name, researching it first when missing
func (s *Server) handleResearchCompany(w http.ResponseWriter, r *http.Request) {
	var req types.ResearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, researchValidationMessage(err))
		return
	}

	company, created, err := s.companies.Research(r.Context(), req.Name)
	if err != nil {
		if HTTPStatus(err) == http.StatusBadRequest {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.requestLogger(r).Error().Err(err).Str("company", req.Name).Msg("research failed")
		s.jsonResponse(w, http.StatusInternalServerError, types.ErrorResponse{
			Message: "Failed to research company",
			Error:   err.Error(),
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, company)
}

// handleListCompanies lists the most recently updated companies
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", companies.DefaultListLimit, companies.MaxListLimit)

	list, err := s.companies.List(r.Context(), limit)
	if err != nil {
		s.requestLogger(r).Error().Err(err).Msg("list companies failed")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}
	if list == nil {
		list = []types.Company{}
	}

	s.jsonResponse(w, http.StatusOK, types.CompanyList{Companies: list})
}

// handleGetCompany retrieves a company by name without recording a search
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company name")
		return
	}

	company, err := s.companies.Get(r.Context(), name)
	if err != nil {
		switch HTTPStatus(err) {
		case http.StatusBadRequest:
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		case http.StatusNotFound:
			s.errorResponse(w, http.StatusNotFound, "Company not found")
		default:
			s.requestLogger(r).Error().Err(err).Str("company", name).Msg("get company failed")
			s.errorResponse(w, http.StatusInternalServerError, "Failed to retrieve company")
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, company)
}

// researchValidationMessage turns validator failures on ResearchRequest into a user-facing message
func researchValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return "Company name must be at most " + verrs[0].Param() + " characters"
	}
	return "Company name is required"
}
