package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/dtos"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/reed"
	"github.com/justsurfingit/hirely/internal/services"
)

// JobHandler proxies the job board API.
type JobHandler struct {
	JobService *services.JobService
	Log        *logging.Logger
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService, log *logging.Logger) *JobHandler {
	return &JobHandler{
		JobService: j,
		Log:        log,
	}
}

// ListJobs is GET /api/jobs. The upstream body is passed through untouched.
func (h *JobHandler) ListJobs(c *gin.Context) {
	q := dtos.JobListQuery{
		Keywords:      c.Query("keywords"),
		LocationName:  c.Query("locationName"),
		Category:      c.Query("category"),
		ResultsToTake: queryInt(c, "resultsToTake"),
		ResultsToSkip: queryInt(c, "resultsToSkip"),
	}

	body, err := h.JobService.ListRaw(c.Request.Context(), q)
	if err != nil {
		h.jobError(c, err, "Failed to fetch jobs")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetJob is GET /api/jobs/:jobId.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := strings.TrimSpace(c.Param("jobId"))
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job ID is required"})
		return
	}

	body, err := h.JobService.GetRaw(c.Request.Context(), jobID)
	if err != nil {
		h.jobError(c, err, "Failed to fetch job details")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// SearchJobs is GET /api/jobs/search; it reshapes results and adds paging.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	q := dtos.JobSearchQuery{
		Keywords:             c.Query("keywords"),
		Location:             c.Query("location"),
		Category:             c.Query("category"),
		EmployerID:           c.Query("employerid"),
		DistanceFromLocation: queryInt(c, "distancefromlocation"),
		ResultsToReturn:      queryInt(c, "resultstoreturn"),
		ResultsToSkip:        queryInt(c, "resultstoskip"),
	}
	if strings.TrimSpace(q.Keywords) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Keywords parameter is required"})
		return
	}

	page, err := h.JobService.Search(c.Request.Context(), q)
	if err != nil {
		h.jobError(c, err, "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
}

// queryInt reads a numeric paging parameter. Anything unparsable reads as 0,
// which the service replaces with its default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return n
}

// jobError keeps the upstream status for API failures and hides everything else.
func (h *JobHandler) jobError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var apiErr *reed.APIError
	switch {
	case errors.Is(err, services.ErrJobsNotConfigured):
		h.Log.Error("job API key missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API configuration error"})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": fmt.Sprintf("Reed API error: %d", apiErr.StatusCode)})
	default:
		h.Log.Error(fallback, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
