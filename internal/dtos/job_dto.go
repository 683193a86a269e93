package dtos

// JobListQuery is the query string of GET /api/jobs (raw passthrough).
type JobListQuery struct {
	Keywords      string
	LocationName  string
	Category      string
	ResultsToTake int
	ResultsToSkip int
}

// JobSearchQuery is the query string of GET /api/jobs/search.
type JobSearchQuery struct {
	Keywords             string
	Location             string
	Category             string
	EmployerID           string
	DistanceFromLocation int
	ResultsToReturn      int
	ResultsToSkip        int
}

type Salary struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency"`
}

// JobListing is a search result in the local field naming.
type JobListing struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Salary         Salary `json:"salary"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	DatePosted     string `json:"datePosted"`
	ExpirationDate string `json:"expirationDate"`
	Applications   int    `json:"applications"`
}

type JobSearchPage struct {
	Jobs         []JobListing `json:"jobs"`
	TotalResults int          `json:"totalResults"`
	CurrentPage  int          `json:"currentPage"`
	TotalPages   int          `json:"totalPages"`
}
