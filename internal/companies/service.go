// Package companies orchestrates lookups, research and search history for the API and CLI.
package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/company-prep/internal/db"
	"github.com/jonathan/company-prep/internal/research"
	"github.com/jonathan/company-prep/internal/schemas"
	"github.com/jonathan/company-prep/internal/types"
	"github.com/rs/zerolog"
)

// List and recent-search limits
const (
	DefaultListLimit   = 10
	MaxListLimit       = 100
	DefaultRecentLimit = 5
	MaxRecentLimit     = 50

	// recentOverfetch rows are read per requested search so duplicates
	// do not shrink the deduplicated result
	recentOverfetch = 5
)

// Store is the persistence the service needs; *db.DB implements it
type Store interface {
	GetCompanyByName(ctx context.Context, name string) (*types.Company, error)
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, bool, error)
	ListCompanies(ctx context.Context, limit int) ([]types.Company, error)
	AddSearchQuery(ctx context.Context, query string) (*db.SearchEntry, error)
	GetRecentSearches(ctx context.Context, limit int) ([]db.SearchEntry, error)
	Ping(ctx context.Context) error
}

// Provider produces a company record from its name; *research.Researcher implements it
type Provider interface {
	ResearchCompany(ctx context.Context, name string) (*types.Company, error)
}

// Service implements the company operations
type Service struct {
	store    Store
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a Service
func NewService(store Store, provider Provider, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Search records the query in the search log and looks the company up.
// The query is logged even when nothing matches. Returns ErrNotFound on a miss.
func (s *Service) Search(ctx context.Context, query string) (*types.Company, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, errEmptyQuery
	}

	if _, err := s.store.AddSearchQuery(ctx, query); err != nil {
		return nil, err
	}

	company, err := s.store.GetCompanyByName(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// Get looks a company up by name without recording a search
func (s *Service) Get(ctx context.Context, name string) (*types.Company, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errEmptyName
	}

	company, err := s.store.GetCompanyByName(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// Research returns the stored company for name, researching and storing it first
// when none exists. created reports whether this call inserted the record.
// Without an API key the placeholder record is stored instead.
func (s *Service) Research(ctx context.Context, name string) (company *types.Company, created bool, err error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, false, errEmptyName
	}

	existing, err := s.store.GetCompanyByName(ctx, trimmed)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	record, err := s.provider.ResearchCompany(ctx, trimmed)
	switch {
	case errors.Is(err, research.ErrMissingAPIKey):
		s.logger.Warn().Str("company", trimmed).Msg("Gemini API key not set, falling back to placeholder data")
		record = research.Placeholder(trimmed)
	case err != nil:
		return nil, false, err
	}

	record, err = schemas.ValidateRecord(record)
	if err != nil {
		return nil, false, fmt.Errorf("invalid company record for %s: %w", trimmed, err)
	}

	stored, created, err := s.store.CreateCompany(ctx, record)
	if err != nil {
		return nil, false, err
	}
	if !created {
		s.logger.Info().Str("company", trimmed).Str("id", stored.ID.String()).Msg("company stored concurrently, returning existing record")
	}
	return stored, created, nil
}

// List returns the most recently updated companies
func (s *Service) List(ctx context.Context, limit int) ([]types.Company, error) {
	return s.store.ListCompanies(ctx, clamp(limit, DefaultListLimit, MaxListLimit))
}

// RecentSearches returns up to limit distinct queries, most recent first
func (s *Service) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	limit = clamp(limit, DefaultRecentLimit, MaxRecentLimit)

	entries, err := s.store.GetRecentSearches(ctx, limit*recentOverfetch)
	if err != nil {
		return nil, err
	}
	return uniqueQueries(entries, limit), nil
}

// Health checks the store
func (s *Service) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// uniqueQueries keeps the first occurrence of each exact query text in entry order
func uniqueQueries(entries []db.SearchEntry, limit int) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, limit)
	for _, e := range entries {
		if seen[e.Query] {
			continue
		}
		seen[e.Query] = true
		out = append(out, e.Query)
		if len(out) == limit {
			break
		}
	}
	return out
}

func clamp(v, def, max int) int {
	if v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
