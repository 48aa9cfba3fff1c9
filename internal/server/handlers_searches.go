package server

import (
	"net/http"

	"github.com/jonathan/company-prep/internal/companies"
	"github.com/jonathan/company-prep/internal/types"
)

// handleRecentSearches returns distinct recent queries, most recent first
func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", companies.DefaultRecentLimit, companies.MaxRecentLimit)

	searches, err := s.companies.RecentSearches(r.Context(), limit)
	if err != nil {
		s.requestLogger(r).Error().Err(err).Msg("recent searches failed")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to retrieve recent searches")
		return
	}
	if searches == nil {
		searches = []string{}
	}

	s.jsonResponse(w, http.StatusOK, types.RecentSearches{Searches: searches})
}
