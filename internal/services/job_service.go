package services

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/reed"
)

const (
	defaultPageSize = 20
	defaultDistance = 15
	defaultCurrency = "GBP"
)

// ErrJobsNotConfigured is returned when the job API key is missing.
var ErrJobsNotConfigured = errors.New("services: job API not configured")

// JobSource is the upstream job API.
type JobSource interface {
	Search(ctx context.Context, params reed.SearchParams) (*reed.SearchResult, error)
	SearchRaw(ctx context.Context, params reed.SearchParams) ([]byte, error)
	GetJob(ctx context.Context, jobID string) ([]byte, error)
	GetJobDetail(ctx context.Context, jobID string) (*reed.JobDetail, error)
}

type JobService struct {
	Source JobSource
	Log    *logging.Logger
}

func NewJobService(src JobSource, log *logging.Logger) *JobService {
	return &JobService{
		Source: src,
		Log:    log,
	}
}

// categoryKeywords widens the board's category labels into search terms.
var categoryKeywords = map[string]string{
	"Hotels & Tourism":   "hospitality tourism hotel",
	"Financial Services": "finance banking financial",
	"Commerce":           "sales retail commerce",
	"Construction":       "construction building",
	"Media":              "media marketing creative",
	"Telecommunications": "telecom communications",
	"Education":          "education teaching",
	"Healthcare":         "healthcare medical",
	"Technology":         "IT technology software",
	"Engineering":        "engineering",
}

// CategoryKeywords builds the keyword string for a category label plus the
// user's own terms. Unknown labels are used as-is.
func CategoryKeywords(category, keywords string) string {
	category = strings.TrimSpace(category)
	keywords = strings.TrimSpace(keywords)

	prefix := ""
	if category != "" && category != "All Categories" {
		prefix = category
		if kw, ok := categoryKeywords[category]; ok {
			prefix = kw
		}
	}

	switch {
	case prefix == "":
		return keywords
	case keywords == "":
		return prefix
	default:
		return prefix + " " + keywords
	}
}

// ListRaw proxies a listing page. The upstream body is returned untouched.
func (s *JobService) ListRaw(ctx context.Context, q dtos.JobListQuery) ([]byte, error) {
	if s.Source == nil {
		return nil, ErrJobsNotConfigured
	}

	take := q.ResultsToTake
	if take <= 0 {
		take = defaultPageSize
	}
	skip := q.ResultsToSkip
	if skip < 0 {
		skip = 0
	}

	return s.Source.SearchRaw(ctx, reed.SearchParams{
		Keywords: CategoryKeywords(q.Category, q.Keywords),
		Location: q.LocationName,
		Take:     take,
		Skip:     skip,
	})
}

// GetRaw proxies a single listing.
func (s *JobService) GetRaw(ctx context.Context, jobID string) ([]byte, error) {
	if s.Source == nil {
		return nil, ErrJobsNotConfigured
	}
	return s.Source.GetJob(ctx, jobID)
}

// ChatDetails loads a listing in the shape the job chatbot expects, for
// callers that only know the job id.
func (s *JobService) ChatDetails(ctx context.Context, jobID string) (*dtos.JobDetails, error) {
	if s.Source == nil {
		return nil, ErrJobsNotConfigured
	}
	d, err := s.Source.GetJobDetail(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &dtos.JobDetails{
		JobTitle:       d.JobTitle,
		EmployerName:   d.EmployerName,
		LocationName:   d.LocationName,
		JobDescription: d.JobDescription,
		MinimumSalary:  d.MinimumSalary,
		MaximumSalary:  d.MaximumSalary,
		Currency:       d.Currency,
	}, nil
}

// Search runs a keyword search and reshapes it into the local field names
// with page metadata attached.
func (s *JobService) Search(ctx context.Context, q dtos.JobSearchQuery) (*dtos.JobSearchPage, error) {
	if s.Source == nil {
		return nil, ErrJobsNotConfigured
	}

	take := q.ResultsToReturn
	if take <= 0 {
		take = defaultPageSize
	}
	skip := q.ResultsToSkip
	if skip < 0 {
		skip = 0
	}
	distance := q.DistanceFromLocation
	if distance <= 0 {
		distance = defaultDistance
	}

	res, err := s.Source.Search(ctx, reed.SearchParams{
		Keywords:     q.Keywords,
		Location:     q.Location,
		Category:     q.Category,
		EmployerID:   q.EmployerID,
		DistanceMile: distance,
		Take:         take,
		Skip:         skip,
	})
	if err != nil {
		return nil, err
	}

	page := &dtos.JobSearchPage{
		Jobs:         make([]dtos.JobListing, 0, len(res.Results)),
		TotalResults: res.TotalResults,
		CurrentPage:  skip/take + 1,
		TotalPages:   (res.TotalResults + take - 1) / take,
	}
	for _, j := range res.Results {
		page.Jobs = append(page.Jobs, toListing(j))
	}
	s.Log.Debug("job search", "keywords", q.Keywords, "results", len(page.Jobs), "total", page.TotalResults)
	return page, nil
}

func toListing(j reed.Job) dtos.JobListing {
	currency := j.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return dtos.JobListing{
		ID:       j.JobID,
		Title:    j.JobTitle,
		Company:  j.EmployerName,
		Location: j.LocationName,
		Salary: dtos.Salary{
			Min:      j.MinimumSalary,
			Max:      j.MaximumSalary,
			Currency: currency,
		},
		Description:    j.JobDescription,
		URL:            j.JobURL,
		DatePosted:     j.Date,
		ExpirationDate: j.ExpirationDate,
		Applications:   j.Applications,
	}
}
