// Package companiestest provides in-memory fakes of the companies Store and Provider for tests.
package companiestest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/company-prep/internal/db"
	"github.com/jonathan/company-prep/internal/types"
)

// Store is an in-memory companies.Store using the same matching rules as the database
type Store struct {
	mu        sync.Mutex
	companies []types.Company
	searches  []db.SearchEntry
	now       func() time.Time

	// Err, when set, is returned by every method
	Err error
	// PingErr is returned by Ping
	PingErr error
}

// NewStore returns an empty store whose clock advances one second per write
func NewStore() *Store {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int
	return &Store{now: func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}}
}

// Seed stores c as if it had been created earlier and returns the stored copy
func (s *Store) Seed(c *types.Company) *types.Company {
	stored, _, _ := s.CreateCompany(context.Background(), c)
	return stored
}

// Searches returns every logged query in insertion order
func (s *Store) Searches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.searches))
	for i, e := range s.searches {
		out[i] = e.Query
	}
	return out
}

// Count returns the number of stored companies
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

func (s *Store) GetCompanyByName(_ context.Context, name string) (*types.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if normalized := db.NormalizeName(name); normalized != "" {
		for i := range s.companies {
			if db.NormalizeName(s.companies[i].Name) == normalized {
				c := s.companies[i]
				return &c, nil
			}
		}
	}

	var matches []types.Company
	lower := strings.ToLower(name)
	for _, c := range s.companies {
		if strings.Contains(strings.ToLower(c.Name), lower) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if len(matches[i].Name) != len(matches[j].Name) {
			return len(matches[i].Name) < len(matches[j].Name)
		}
		return matches[i].UpdatedAt.After(matches[j].UpdatedAt)
	})
	return &matches[0], nil
}

func (s *Store) CreateCompany(_ context.Context, c *types.Company) (*types.Company, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}

	normalized := db.NormalizeName(c.Name)
	for i := range s.companies {
		if db.NormalizeName(s.companies[i].Name) == normalized {
			existing := s.companies[i]
			return &existing, false, nil
		}
	}

	stored := *c
	stored.ID = uuid.New()
	stored.UpdatedAt = s.now()
	s.companies = append(s.companies, stored)
	return &stored, true, nil
}

func (s *Store) ListCompanies(_ context.Context, limit int) ([]types.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]types.Company, len(s.companies))
	copy(out, s.companies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) AddSearchQuery(_ context.Context, query string) (*db.SearchEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	e := db.SearchEntry{ID: int64(len(s.searches) + 1), Query: query, Timestamp: s.now()}
	s.searches = append(s.searches, e)
	return &e, nil
}

func (s *Store) GetRecentSearches(_ context.Context, limit int) ([]db.SearchEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]db.SearchEntry, 0, limit)
	for i := len(s.searches) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.searches[i])
	}
	return out, nil
}

func (s *Store) Ping(_ context.Context) error {
	return s.PingErr
}

// Provider is a scripted companies.Provider
type Provider struct {
	mu    sync.Mutex
	calls []string

	// Result builds the record for a name; nil returns Err
	Result func(name string) *types.Company
	Err    error
}

func (p *Provider) ResearchCompany(_ context.Context, name string) (*types.Company, error) {
	p.mu.Lock()
	p.calls = append(p.calls, name)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	if p.Result == nil {
		return nil, nil
	}
	return p.Result(name), nil
}

// Calls returns the names researched so far
func (p *Provider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// Company returns a minimal schema-valid record named name
func Company(name string) *types.Company {
	return &types.Company{
		Name:    name,
		Website: types.StringPtr("https://example.com"),
		CoreBusiness: types.CoreBusiness{
			Summary:      name + " builds things.",
			Industry:     "Manufacturing",
			Founders:     "Jane Doe",
			CurrentCEO:   "John Roe",
			Headquarters: "Springfield, USA",
		},
		Financials: types.Financials{Years: []types.FinancialYear{
			{Year: "2023", Revenue: "$10M", Growth: "12%", IsPositive: types.BoolPtr(true)},
			{Year: "2022", Revenue: "$9M", Growth: "N/A"},
		}},
		Funding: types.Funding{
			TotalRaised: "$5M", LatestRound: "Seed", LatestRoundDate: "2020", Utilization: "Hiring",
		},
		JobStability: types.JobStability{Policies: []types.TitledItem{{Title: "Remote", Description: "Hybrid"}}},
		Stability: types.Stability{
			LastLayoff: types.Layoff{Date: "None reported", Details: "No layoffs found"},
			Indicators: []types.StabilityIndicator{{Name: "Financial Health", Status: types.StatusStrong, Details: "Profitable"}},
		},
		InterviewConsiderations: types.InterviewConsiderations{
			Considerations: []types.TitledItem{{Title: "Culture", Description: "Collaborative"}},
			BusinessRoles:  []types.TitledItem{{Title: "Case study", Description: "Market sizing"}},
			TechnicalRoles: []types.TitledItem{{Title: "System design", Description: "Scaling"}},
		},
		References: types.References{Articles: []types.Article{{
			Title: name + " raises seed", URL: "https://news.example.com/a", Source: "Example News", Date: "2020-05-01",
		}}},
	}
}
