package dtos

// JobDetails is the job context a listing page sends with a question.
// Salary is normally preformatted; when it is empty the raw bounds are used.
type JobDetails struct {
	JobTitle       string   `json:"jobTitle"`
	EmployerName   string   `json:"employerName"`
	LocationName   string   `json:"locationName"`
	Salary         string   `json:"salary"`
	JobDescription string   `json:"jobDescription"`
	MinimumSalary  *float64 `json:"minimumSalary,omitempty"`
	MaximumSalary  *float64 `json:"maximumSalary,omitempty"`
	Currency       string   `json:"currency,omitempty"`
}

// ChatRequest carries either the job details or just the listing id; the
// details are looked up when only JobID is sent.
type ChatRequest struct {
	Message    string      `json:"message"`
	JobID      string      `json:"jobId,omitempty"`
	JobDetails *JobDetails `json:"jobDetails,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
