package research

import (
	"regexp"
	"strings"

	"github.com/jonathan/company-prep/internal/types"
)

const (
	notAvailable       = "Not available"
	apiKeyRequiredNote = "Gemini API key required for comprehensive research."
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// PlaceholderWebsite guesses a website from the company name: https://www.<lowercase alnum>.com
func PlaceholderWebsite(name string) string {
	return "https://www." + nonAlnum.ReplaceAllString(strings.ToLower(name), "") + ".com"
}

// Placeholder returns the fixed record stored when no API key is configured.
// Every required field is filled so the record passes validation.
func Placeholder(name string) *types.Company {
	return &types.Company{
		Name:    name,
		Website: types.StringPtr(PlaceholderWebsite(name)),
		CoreBusiness: types.CoreBusiness{
			Summary:      apiKeyRequiredNote,
			Industry:     "Not available without API key",
			Founders:     notAvailable,
			CurrentCEO:   notAvailable,
			Headquarters: notAvailable,
		},
		Financials: types.Financials{
			Years: []types.FinancialYear{
				{Year: "2023", Revenue: notAvailable, Growth: "N/A"},
				{Year: "2022", Revenue: notAvailable, Growth: "N/A"},
				{Year: "2021", Revenue: notAvailable, Growth: "N/A"},
			},
			Source: "Gemini API required",
		},
		Funding: types.Funding{
			TotalRaised:     notAvailable,
			LatestRound:     notAvailable,
			LatestRoundDate: notAvailable,
			Utilization:     apiKeyRequiredNote,
		},
		JobStability: types.JobStability{
			Policies: []types.TitledItem{{
				Title:       "API Key Required",
				Description: "Please set the GEMINI_API_KEY environment variable to fetch real company data.",
			}},
		},
		Stability: types.Stability{
			LastLayoff: types.Layoff{
				Date:    notAvailable,
				Details: apiKeyRequiredNote,
			},
			Indicators: []types.StabilityIndicator{{
				Name:    "Data Availability",
				Status:  types.StatusUnknown,
				Details: "API key required",
			}},
		},
		InterviewConsiderations: types.InterviewConsiderations{
			Considerations: []types.TitledItem{{
				Title:       "API Integration Needed",
				Description: "Set the GEMINI_API_KEY to get AI-powered interview insights.",
			}},
			BusinessRoles: []types.TitledItem{{
				Title:       notAvailable,
				Description: "Business role insights require a Gemini API key.",
			}},
			TechnicalRoles: []types.TitledItem{{
				Title:       notAvailable,
				Description: "Technical role insights require a Gemini API key.",
			}},
		},
		References: types.References{
			Articles: []types.Article{{
				Title:  "No data available - Gemini API key required",
				URL:    "#",
				Source: notAvailable,
				Date:   notAvailable,
			}},
		},
	}
}
