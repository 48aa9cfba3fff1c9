package web

import (
	"html"
	"regexp"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/jonathan/company-prep/internal/types"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strict       = bluemonday.StrictPolicy()
	schemePrefix = regexp.MustCompile(`^https?://(www\.)?`)
)

// Growth trends
const (
	TrendUp   = "up"
	TrendDown = "down"
)

// CompanyView is a company record prepared for display. AI text has all markup removed.
type CompanyView struct {
	Name         string
	Website      string
	WebsiteLabel string
	UpdatedAgo   string

	CoreBusiness types.CoreBusiness

	Years            []YearView
	FinancialsSource string
	ReliabilityAlert string

	Funding types.Funding

	Policies []types.TitledItem

	LastLayoff types.Layoff
	Indicators []IndicatorView

	Considerations []types.TitledItem
	BusinessRoles  []types.TitledItem
	TechnicalRoles []types.TitledItem

	Articles []types.Article

	// OtherDetails is nil when the record has no otherDetails section
	OtherDetails []types.TitledItem
	HasOther     bool
}

// YearView is one financials row
type YearView struct {
	Year    string
	Revenue string
	// Growth is "N/A" when unknown
	Growth string
	// Trend is TrendUp, TrendDown or empty when the direction is unknown
	Trend string
}

// IndicatorView is a stability indicator with its badge style
type IndicatorView struct {
	Name    string
	Status  string
	Details string
	Badge   string
}

// NewCompanyView builds the display model for c as seen at now
func NewCompanyView(c *types.Company, now time.Time) CompanyView {
	v := CompanyView{
		Name: clean(c.Name),
		CoreBusiness: types.CoreBusiness{
			Summary:      clean(c.CoreBusiness.Summary),
			Industry:     clean(c.CoreBusiness.Industry),
			Founders:     clean(c.CoreBusiness.Founders),
			CurrentCEO:   clean(c.CoreBusiness.CurrentCEO),
			Headquarters: clean(c.CoreBusiness.Headquarters),
		},
		FinancialsSource: clean(c.Financials.Source),
		ReliabilityAlert: clean(c.Financials.ReliabilityAlert),
		Funding: types.Funding{
			TotalRaised:     clean(c.Funding.TotalRaised),
			Rounds:          clean(c.Funding.Rounds),
			LatestRound:     clean(c.Funding.LatestRound),
			LatestRoundDate: clean(c.Funding.LatestRoundDate),
			Utilization:     clean(c.Funding.Utilization),
		},
		Policies: cleanItems(c.JobStability.Policies),
		LastLayoff: types.Layoff{
			Date:    clean(c.Stability.LastLayoff.Date),
			Details: clean(c.Stability.LastLayoff.Details),
		},
		Considerations: cleanItems(c.InterviewConsiderations.Considerations),
		BusinessRoles:  cleanItems(c.InterviewConsiderations.BusinessRoles),
		TechnicalRoles: cleanItems(c.InterviewConsiderations.TechnicalRoles),
	}

	if c.Website != nil && *c.Website != "" {
		v.Website = *c.Website
		v.WebsiteLabel = WebsiteLabel(*c.Website)
	}
	if !c.UpdatedAt.IsZero() {
		v.UpdatedAgo = humanize.RelTime(c.UpdatedAt, now, "ago", "from now")
	}

	for _, y := range c.Financials.Years {
		v.Years = append(v.Years, newYearView(y))
	}

	for _, ind := range c.Stability.Indicators {
		v.Indicators = append(v.Indicators, IndicatorView{
			Name:    clean(ind.Name),
			Status:  clean(ind.Status),
			Details: clean(ind.Details),
			Badge:   StatusBadge(ind.Status),
		})
	}

	for _, a := range c.References.Articles {
		v.Articles = append(v.Articles, types.Article{
			Title:  clean(a.Title),
			URL:    a.URL,
			Source: clean(a.Source),
			Date:   clean(a.Date),
		})
	}

	if c.OtherDetails != nil {
		v.HasOther = true
		v.OtherDetails = cleanItems(c.OtherDetails.Details)
	}
	return v
}

func newYearView(y types.FinancialYear) YearView {
	row := YearView{
		Year:    clean(y.Year),
		Revenue: clean(y.Revenue),
		Growth:  clean(y.Growth),
	}
	if row.Growth == "" || strings.EqualFold(row.Growth, "N/A") {
		row.Growth = "N/A"
		return row
	}
	if y.IsPositive != nil {
		if *y.IsPositive {
			row.Trend = TrendUp
		} else {
			row.Trend = TrendDown
		}
	}
	return row
}

// WebsiteLabel strips the scheme and a leading www. for display
func WebsiteLabel(website string) string {
	return strings.TrimSuffix(schemePrefix.ReplaceAllString(website, ""), "/")
}

// StatusBadge maps an indicator status to its badge class
func StatusBadge(status string) string {
	switch status {
	case types.StatusStrong:
		return "badge-strong"
	case types.StatusMixed:
		return "badge-mixed"
	case types.StatusWeak:
		return "badge-weak"
	default:
		return "badge-unknown"
	}
}

// clean removes markup from AI-produced text. html/template escapes on output,
// so entities bluemonday introduced are decoded again.
func clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func cleanItems(items []types.TitledItem) []types.TitledItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]types.TitledItem, 0, len(items))
	for _, it := range items {
		out = append(out, types.TitledItem{Title: clean(it.Title), Description: clean(it.Description)})
	}
	return out
}
