package reed

import (
	"fmt"
	"net/http"
)

// Config defines Reed API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the Reed job search API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a search request. Zero values are not forwarded,
// except Take/Skip which the caller has already defaulted.
type SearchParams struct {
	Keywords     string
	Location     string
	Category     string
	EmployerID   string
	DistanceMile int
	Take         int
	Skip         int
}

// Job is a single search result as Reed returns it.
type Job struct {
	JobID          int64    `json:"jobId"`
	EmployerID     int64    `json:"employerId"`
	EmployerName   string   `json:"employerName"`
	JobTitle       string   `json:"jobTitle"`
	LocationName   string   `json:"locationName"`
	MinimumSalary  *float64 `json:"minimumSalary,omitempty"`
	MaximumSalary  *float64 `json:"maximumSalary,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	ExpirationDate string   `json:"expirationDate"`
	Date           string   `json:"date"`
	JobDescription string   `json:"jobDescription"`
	Applications   int      `json:"applications"`
	JobURL         string   `json:"jobUrl"`
}

// SearchResult is the decoded body of /search.
type SearchResult struct {
	Results      []Job `json:"results"`
	TotalResults int   `json:"totalResults"`
}

// JobDetail is the decoded body of /jobs/{id}.
type JobDetail struct {
	JobID            int64    `json:"jobId"`
	EmployerID       int64    `json:"employerId"`
	EmployerName     string   `json:"employerName"`
	JobTitle         string   `json:"jobTitle"`
	LocationName     string   `json:"locationName"`
	MinimumSalary    *float64 `json:"minimumSalary,omitempty"`
	MaximumSalary    *float64 `json:"maximumSalary,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	ExpirationDate   string   `json:"expirationDate"`
	DatePosted       string   `json:"datePosted"`
	JobDescription   string   `json:"jobDescription"`
	ApplicationCount int      `json:"applicationCount"`
	JobURL           string   `json:"jobUrl"`
	ExternalURL      string   `json:"externalUrl,omitempty"`
}

// APIError carries a non-2xx upstream response.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reed: API error (%d): %s", e.StatusCode, e.Status)
}
