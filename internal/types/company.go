// Package types provides type definitions for structured data used throughout the company-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Company is a researched company record with all of its sections
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website,omitempty"`
	LogoURL   *string   `json:"logoUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`

	CoreBusiness            CoreBusiness            `json:"coreBusiness"`
	Financials              Financials              `json:"financials"`
	Funding                 Funding                 `json:"funding"`
	JobStability            JobStability            `json:"jobStability"`
	Stability               Stability               `json:"stability"`
	InterviewConsiderations InterviewConsiderations `json:"interviewConsiderations"`
	References              References              `json:"references"`
	OtherDetails            *OtherDetails           `json:"otherDetails,omitempty"`
}

// CoreBusiness summarizes what the company does
type CoreBusiness struct {
	Summary      string `json:"summary"`
	Industry     string `json:"industry"`
	Founders     string `json:"founders"`
	CurrentCEO   string `json:"currentCEO"`
	Headquarters string `json:"headquarters"`
}

// FinancialYear is one row of the revenue table
type FinancialYear struct {
	Year    string `json:"year"`
	Revenue string `json:"revenue"`
	Growth  string `json:"growth,omitempty"`
	// IsPositive is omitted when growth is unknown
	IsPositive *bool `json:"isPositive,omitempty"`
}

// Financials holds yearly revenue figures
type Financials struct {
	Years            []FinancialYear `json:"years"`
	Source           string          `json:"source,omitempty"`
	ReliabilityAlert string          `json:"reliabilityAlert,omitempty"`
}

// Funding describes capital raised and how it is used
type Funding struct {
	TotalRaised     string `json:"totalRaised"`
	Rounds          string `json:"rounds,omitempty"`
	LatestRound     string `json:"latestRound"`
	LatestRoundDate string `json:"latestRoundDate"`
	Utilization     string `json:"utilization"`
}

// TitledItem is the {title, description} pair shared by policies, considerations and details
type TitledItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// JobStability lists employee policies
type JobStability struct {
	Policies []TitledItem `json:"policies"`
}

// Layoff describes the most recent layoff event
type Layoff struct {
	Date    string `json:"date"`
	Details string `json:"details"`
}

// StabilityIndicator is one named health signal
type StabilityIndicator struct {
	Name string `json:"name"`
	// Status is by convention one of Strong, Mixed, Weak, Unknown
	Status  string `json:"status"`
	Details string `json:"details"`
}

// Stability indicator status values
const (
	StatusStrong  = "Strong"
	StatusMixed   = "Mixed"
	StatusWeak    = "Weak"
	StatusUnknown = "Unknown"
)

// Stability holds layoff history and stability indicators
type Stability struct {
	LastLayoff Layoff               `json:"lastLayoff"`
	Indicators []StabilityIndicator `json:"indicators,omitempty"`
}

// InterviewConsiderations groups interview preparation tips by audience
type InterviewConsiderations struct {
	Considerations []TitledItem `json:"considerations"`
	BusinessRoles  []TitledItem `json:"businessRoles"`
	TechnicalRoles []TitledItem `json:"technicalRoles"`
}

// Article is a reference source
type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// References lists source articles
type References struct {
	Articles []Article `json:"articles"`
}

// OtherDetails holds free-form extra sections
type OtherDetails struct {
	Details []TitledItem `json:"details"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
