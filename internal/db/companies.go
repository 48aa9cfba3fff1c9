package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/company-prep/internal/types"
)

const companyColumns = `id, name, website, logo_url, core_business, financials, funding,
	job_stability, stability, interview_considerations, "references", other_details, updated_at`

// GetCompanyByName finds a company case-insensitively.
// An exact match on the normalized name wins; otherwise the shortest name containing
// the query is returned, most recently updated first on ties. Returns nil when nothing matches.
func (db *DB) GetCompanyByName(ctx context.Context, name string) (*types.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	if normalized := NormalizeName(name); normalized != "" {
		company, err := db.GetCompanyByNormalizedName(ctx, normalized)
		if err != nil || company != nil {
			return company, err
		}
	}

	company, err := scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+`
		 FROM companies
		 WHERE name ILIKE $1 ESCAPE '\'
		 ORDER BY length(name) ASC, updated_at DESC
		 LIMIT 1`,
		containsPattern(name),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get company by name: %w", err)
	}
	return company, nil
}

// GetCompanyByNormalizedName retrieves a company by its normalized name
func (db *DB) GetCompanyByNormalizedName(ctx context.Context, normalized string) (*types.Company, error) {
	company, err := scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE name_normalized = $1`,
		normalized,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// CreateCompany inserts a company and returns the stored row with its id and timestamp.
// If a company with the same normalized name already exists, that row is returned
// with created=false and nothing is written.
func (db *DB) CreateCompany(ctx context.Context, c *types.Company) (*types.Company, bool, error) {
	if c == nil {
		return nil, false, fmt.Errorf("company cannot be nil")
	}
	normalized := NormalizeName(c.Name)

	sections, err := encodeSections(c)
	if err != nil {
		return nil, false, err
	}

	stored, err := scanCompany(db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, name_normalized, website, logo_url, core_business, financials, funding,
		                        job_stability, stability, interview_considerations, "references", other_details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (name_normalized) DO NOTHING
		 RETURNING `+companyColumns,
		c.Name, normalized, c.Website, c.LogoURL,
		sections.coreBusiness, sections.financials, sections.funding, sections.jobStability,
		sections.stability, sections.interviewConsiderations, sections.references, sections.otherDetails,
	))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create company: %w", err)
	}
	if stored != nil {
		return stored, true, nil
	}

	existing, err := db.GetCompanyByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("failed to create company %q: conflicting row disappeared", c.Name)
	}
	return existing, false, nil
}

// ListCompanies returns the most recently updated companies, newest first
func (db *DB) ListCompanies(ctx context.Context, limit int) ([]types.Company, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []types.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

type encodedSections struct {
	coreBusiness            []byte
	financials              []byte
	funding                 []byte
	jobStability            []byte
	stability               []byte
	interviewConsiderations []byte
	references              []byte
	otherDetails            []byte
}

func encodeSections(c *types.Company) (*encodedSections, error) {
	var (
		s   encodedSections
		err error
	)
	fields := []struct {
		dst *[]byte
		src any
	}{
		{&s.coreBusiness, c.CoreBusiness},
		{&s.financials, c.Financials},
		{&s.funding, c.Funding},
		{&s.jobStability, c.JobStability},
		{&s.stability, c.Stability},
		{&s.interviewConsiderations, c.InterviewConsiderations},
		{&s.references, c.References},
	}
	for _, f := range fields {
		if *f.dst, err = json.Marshal(f.src); err != nil {
			return nil, fmt.Errorf("failed to marshal company section: %w", err)
		}
	}
	if c.OtherDetails != nil {
		if s.otherDetails, err = json.Marshal(c.OtherDetails); err != nil {
			return nil, fmt.Errorf("failed to marshal company section: %w", err)
		}
	}
	return &s, nil
}

// scanCompany reads one company row. pgx.ErrNoRows becomes (nil, nil).
func scanCompany(row pgx.Row) (*types.Company, error) {
	var (
		c                                  types.Company
		coreBusiness, financials, funding  []byte
		jobStability, stability, interview []byte
		references, otherDetails           []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.LogoURL,
		&coreBusiness, &financials, &funding, &jobStability, &stability, &interview,
		&references, &otherDetails, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sections := []struct {
		raw []byte
		dst any
	}{
		{coreBusiness, &c.CoreBusiness},
		{financials, &c.Financials},
		{funding, &c.Funding},
		{jobStability, &c.JobStability},
		{stability, &c.Stability},
		{interview, &c.InterviewConsiderations},
		{references, &c.References},
	}
	for _, s := range sections {
		if err := json.Unmarshal(s.raw, s.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal company section: %w", err)
		}
	}
	if len(otherDetails) > 0 {
		c.OtherDetails = &types.OtherDetails{}
		if err := json.Unmarshal(otherDetails, c.OtherDetails); err != nil {
			return nil, fmt.Errorf("failed to unmarshal company section: %w", err)
		}
	}
	return &c, nil
}
