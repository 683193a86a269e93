package services

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/justsurfingit/hirely/internal/dtos"
)

const maxDescriptionLen = 1000

// JobContext is the listing a job chat is about, with display defaults applied.
type JobContext struct {
	JobTitle    string
	Company     string
	Location    string
	Salary      string
	Description string
}

// JobChatResponder answers a question about one listing.
type JobChatResponder interface {
	Respond(ctx context.Context, message string, job *JobContext) (string, error)
}

// NewJobContext fills the gaps in what the page sent.
func NewJobContext(d *dtos.JobDetails) *JobContext {
	jc := &JobContext{
		JobTitle: "this position",
		Company:  "the company",
		Location: "the location",
		Salary:   "Not specified",
	}
	if d == nil {
		return jc
	}

	if d.JobTitle != "" {
		jc.JobTitle = d.JobTitle
	}
	if d.EmployerName != "" {
		jc.Company = d.EmployerName
	}
	if d.LocationName != "" {
		jc.Location = d.LocationName
	}
	switch {
	case d.Salary != "":
		jc.Salary = d.Salary
	case d.MinimumSalary != nil || d.MaximumSalary != nil:
		jc.Salary = FormatSalary(d.MinimumSalary, d.MaximumSalary, d.Currency)
	}
	jc.Description = CleanDescription(d.JobDescription)
	return jc
}

// FormatSalary renders a salary band: "£30,000-£40,000", "£30,000+" or "Competitive".
func FormatSalary(lo, hi *float64, currency string) string {
	symbol := "$"
	if currency == "" || currency == "GBP" {
		symbol = "£"
	}

	hasMin := lo != nil && *lo != 0
	hasMax := hi != nil && *hi != 0
	switch {
	case hasMin && hasMax:
		return symbol + groupThousands(*lo) + "-" + symbol + groupThousands(*hi)
	case hasMin:
		return symbol + groupThousands(*lo) + "+"
	default:
		return "Competitive"
	}
}

func groupThousands(v float64) string {
	neg := v < 0
	v = math.Abs(v)
	whole := math.Floor(v)
	frac := math.Round((v-whole)*1000) / 1000
	if frac >= 1 {
		whole++
		frac = 0
	}

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac > 0 {
		f := strconv.FormatFloat(frac, 'f', 3, 64)
		b.WriteString(strings.TrimRight(f[1:], "0"))
	}
	return b.String()
}

var markup = regexp.MustCompile(`<[^>]*>`)

// CleanDescription drops HTML tags and caps the text at 1000 characters.
func CleanDescription(desc string) string {
	return truncate(markup.ReplaceAllString(desc, ""), maxDescriptionLen)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
