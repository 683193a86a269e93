package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/models"
	"github.com/justsurfingit/hirely/internal/services"
)

// SavedJobsHandler exposes the caller's bookmarks. The owner always comes from
// the session; anonymous callers see an empty list.
type SavedJobsHandler struct {
	Service *services.SavedJobsService
}

func NewSavedJobsHandler(svc *services.SavedJobsService) *SavedJobsHandler {
	return &SavedJobsHandler{Service: svc}
}

func (h *SavedJobsHandler) List(c *gin.Context) {
	sess, _ := auth.SessionFrom(c)
	jobs := h.Service.List(c.Request.Context(), sess)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"jobs": jobs, "total": len(jobs)},
	})
}

func (h *SavedJobsHandler) Save(c *gin.Context) {
	var job models.SavedJob
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format"})
		return
	}
	if job.JobID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Job ID is required"})
		return
	}

	sess, _ := auth.SessionFrom(c)
	saved, err := h.Service.Save(c.Request.Context(), sess, job)
	if errors.Is(err, auth.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "saved": saved})
}

func (h *SavedJobsHandler) IsSaved(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	sess, _ := auth.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "saved": h.Service.IsSaved(c.Request.Context(), sess, jobID)})
}

func (h *SavedJobsHandler) Unsave(c *gin.Context) {
	jobID, ok := jobIDParam(c)
	if !ok {
		return
	}
	sess, _ := auth.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": h.Service.Unsave(c.Request.Context(), sess, jobID)})
}

// Clear removes every bookmark of the caller.
func (h *SavedJobsHandler) Clear(c *gin.Context) {
	sess, _ := auth.SessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"success": h.Service.ClearAll(c.Request.Context(), sess)})
}

func jobIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Job ID is required"})
		return 0, false
	}
	return id, true
}
