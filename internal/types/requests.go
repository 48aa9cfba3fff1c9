package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ResearchRequest represents the request to research a company.
type ResearchRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Validate validates the ResearchRequest using the validator.
// Whitespace-only names are rejected like empty ones.
func (r *ResearchRequest) Validate() error {
	trimmed := ResearchRequest{Name: strings.TrimSpace(r.Name)}
	return validate.Struct(&trimmed)
}

// NotFoundResponse is returned by search when no company matches.
type NotFoundResponse struct {
	Message string `json:"message"`
	Query   string `json:"query,omitempty"`
}

// ErrorResponse is the generic failure body.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// CompanyList is the body of the list endpoint.
type CompanyList struct {
	Companies []Company `json:"companies"`
}

// RecentSearches is the body of the recent searches endpoint.
type RecentSearches struct {
	Searches []string `json:"searches"`
}
