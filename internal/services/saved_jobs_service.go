package services

import (
	"context"
	"strings"
	"time"

	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/models"
)

// SavedJobRepository is the storage behind saved jobs. Create reports false
// when the (user, job) pair already exists.
type SavedJobRepository interface {
	Create(ctx context.Context, job *models.SavedJob) (bool, error)
	Exists(ctx context.Context, userID string, jobID int64) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]models.SavedJob, error)
	DeleteByUserAndJob(ctx context.Context, userID string, jobID int64) (int, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// SavedJobsService is best-effort: storage failures are logged and reported
// as false or an empty list, never returned to the caller.
type SavedJobsService struct {
	Repo    SavedJobRepository
	Log     *logging.Logger
	Timeout time.Duration
}

func NewSavedJobsService(repo SavedJobRepository, log *logging.Logger) *SavedJobsService {
	return &SavedJobsService{
		Repo:    repo,
		Log:     log,
		Timeout: 10 * time.Second,
	}
}

// Save bookmarks job for the session's user. Only a missing session is an error.
func (s *SavedJobsService) Save(ctx context.Context, sess *auth.Session, job models.SavedJob) (bool, error) {
	if sess == nil || sess.UID == "" {
		return false, auth.ErrUnauthenticated
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job.UserID = sess.UID
	job.DocID = models.SavedJobID(sess.UID, job.JobID)
	job.SavedAt = time.Time{}
	if job.Currency != nil && strings.TrimSpace(*job.Currency) == "" {
		job.Currency = nil
	}

	created, err := s.Repo.Create(ctx, &job)
	if err != nil {
		s.Log.Error("save job failed", "uid", sess.UID, "jobId", job.JobID, "err", err)
		return false, nil
	}
	if !created {
		s.Log.Debug("job already saved", "uid", sess.UID, "jobId", job.JobID)
	}
	return created, nil
}

// Unsave removes every record of jobID for the user.
func (s *SavedJobsService) Unsave(ctx context.Context, sess *auth.Session, jobID int64) bool {
	if sess == nil || sess.UID == "" {
		return false
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.Repo.DeleteByUserAndJob(ctx, sess.UID, jobID)
	if err != nil {
		s.Log.Error("unsave job failed", "uid", sess.UID, "jobId", jobID, "err", err)
		return false
	}
	return n > 0
}

func (s *SavedJobsService) IsSaved(ctx context.Context, sess *auth.Session, jobID int64) bool {
	if sess == nil || sess.UID == "" {
		return false
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.Repo.Exists(ctx, sess.UID, jobID)
	if err != nil {
		s.Log.Error("check saved job failed", "uid", sess.UID, "jobId", jobID, "err", err)
		return false
	}
	return ok
}

// List returns the user's saved jobs, newest first. Never nil.
func (s *SavedJobsService) List(ctx context.Context, sess *auth.Session) []models.SavedJob {
	if sess == nil || sess.UID == "" {
		return []models.SavedJob{}
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	jobs, err := s.Repo.FindByUser(ctx, sess.UID)
	if err != nil {
		s.Log.Error("list saved jobs failed", "uid", sess.UID, "err", err)
		return []models.SavedJob{}
	}
	if jobs == nil {
		jobs = []models.SavedJob{}
	}
	return jobs
}

func (s *SavedJobsService) ClearAll(ctx context.Context, sess *auth.Session) bool {
	if sess == nil || sess.UID == "" {
		return false
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.Repo.DeleteByUser(ctx, sess.UID)
	if err != nil {
		s.Log.Error("clear saved jobs failed", "uid", sess.UID, "err", err)
		return false
	}
	s.Log.Info("saved jobs cleared", "uid", sess.UID, "count", n)
	return true
}

func (s *SavedJobsService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}
