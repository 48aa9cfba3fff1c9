// Package observability provides boxed terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/company-prep/internal/types"
	"github.com/jonathan/company-prep/internal/web"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// contentWidth is the usable width inside a box
	contentWidth = boxWidth - 4
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are wrapped.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, contentWidth) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCompany prints every section of a company, one box per section
func (p *Printer) PrintCompany(v web.CompanyView) {
	var sb strings.Builder
	sb.WriteString(v.Name + "\n")
	if v.WebsiteLabel != "" {
		fmt.Fprintf(&sb, "Website:  %s\n", v.WebsiteLabel)
	}
	if v.UpdatedAgo != "" {
		fmt.Fprintf(&sb, "Updated:  %s\n", v.UpdatedAgo)
	}
	p.printBox("COMPANY", strings.TrimSuffix(sb.String(), "\n"))

	sb.Reset()
	cb := v.CoreBusiness
	fmt.Fprintf(&sb, "%s\n\n", cb.Summary)
	fmt.Fprintf(&sb, "Industry:      %s\n", cb.Industry)
	fmt.Fprintf(&sb, "Founders:      %s\n", cb.Founders)
	fmt.Fprintf(&sb, "Current CEO:   %s\n", cb.CurrentCEO)
	fmt.Fprintf(&sb, "Headquarters:  %s", cb.Headquarters)
	p.printBox("CORE BUSINESS", sb.String())

	p.printBox("FINANCIALS", financials(v))

	sb.Reset()
	fmt.Fprintf(&sb, "Total raised:   %s\n", v.Funding.TotalRaised)
	fmt.Fprintf(&sb, "Latest round:   %s (%s)\n", v.Funding.LatestRound, v.Funding.LatestRoundDate)
	if v.Funding.Rounds != "" {
		fmt.Fprintf(&sb, "Rounds:         %s\n", v.Funding.Rounds)
	}
	fmt.Fprintf(&sb, "Utilization:    %s", v.Funding.Utilization)
	p.printBox("FUNDING", sb.String())

	p.printBox("JOB STABILITY & EMPLOYEE POLICIES", items(v.Policies, "No notable employee policies found."))

	sb.Reset()
	fmt.Fprintf(&sb, "Last major layoff: %s\n%s", v.LastLayoff.Date, v.LastLayoff.Details)
	if len(v.Indicators) > 0 {
		sb.WriteString("\n\nStability indicators:")
		for _, ind := range v.Indicators {
			fmt.Fprintf(&sb, "\n  [%s] %s: %s", ind.Status, ind.Name, ind.Details)
		}
	}
	p.printBox("STABILITY", sb.String())

	sb.Reset()
	sb.WriteString("General\n")
	sb.WriteString(items(v.Considerations, "No general interview considerations found."))
	sb.WriteString("\n\nBusiness Roles\n")
	sb.WriteString(items(v.BusinessRoles, "No business role-specific considerations found."))
	sb.WriteString("\n\nTechnical Roles\n")
	sb.WriteString(items(v.TechnicalRoles, "No technical role-specific considerations found."))
	p.printBox("INTERVIEW CONSIDERATIONS", sb.String())

	sb.Reset()
	if len(v.Articles) == 0 {
		sb.WriteString("No references available.")
	}
	for i, a := range v.Articles {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "• %s\n  %s, %s\n  %s", a.Title, a.Source, a.Date, a.URL)
	}
	p.printBox("RECENT REFERENCES", sb.String())

	if v.HasOther {
		p.printBox("OTHER DETAILS", items(v.OtherDetails, "No additional information available"))
	}
}

func financials(v web.CompanyView) string {
	var sb strings.Builder
	if len(v.Years) == 0 {
		sb.WriteString("No financial data available.")
	} else {
		fmt.Fprintf(&sb, "%-8s %-24s %s", "Year", "Revenue", "YoY Growth")
		for _, y := range v.Years {
			growth := y.Growth
			switch y.Trend {
			case web.TrendUp:
				growth = "▲ " + growth
			case web.TrendDown:
				growth = "▼ " + growth
			}
			fmt.Fprintf(&sb, "\n%-8s %-24s %s", y.Year, y.Revenue, growth)
		}
	}
	if v.FinancialsSource != "" {
		fmt.Fprintf(&sb, "\n\nSource: %s", v.FinancialsSource)
	}
	if v.ReliabilityAlert != "" {
		fmt.Fprintf(&sb, "\n! %s", v.ReliabilityAlert)
	}
	return sb.String()
}

func items(list []types.TitledItem, empty string) string {
	if len(list) == 0 {
		return empty
	}
	var sb strings.Builder
	for i, it := range list {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "• %s: %s", it.Title, it.Description)
	}
	return sb.String()
}

// PrintList prints numbered entries, or the empty message when there are none
func (p *Printer) PrintList(title string, entries []string, empty string) {
	if len(entries) == 0 {
		p.printBox(title, empty)
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%2d. %s", i+1, e)
	}
	p.printBox(title, strings.Join(lines, "\n"))
}

// PrintNotice prints a short message in a box
func (p *Printer) PrintNotice(title, message string) {
	p.printBox(title, message)
}

// pad right-pads s with spaces to contentWidth runes
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= contentWidth {
		return s
	}
	return s + strings.Repeat(" ", contentWidth-n)
}

// wrap splits line on word boundaries into pieces of at most width runes.
// Words longer than width are cut.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	if len(indent) >= width/2 {
		indent = ""
	}
	var out []string
	current := ""
	for _, word := range strings.Fields(line) {
		for utf8.RuneCountInString(indent+word) > width {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			r := []rune(word)
			cut := width - utf8.RuneCountInString(indent)
			out = append(out, indent+string(r[:cut]))
			word = string(r[cut:])
		}
		switch {
		case current == "":
			current = indent + word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			out = append(out, current)
			current = indent + word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
