package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/justsurfingit/hirely/internal/models"
)

type memoryEntry struct {
	job models.SavedJob
	seq uint64
}

// MemorySavedJobs is a process-local store for development and tests.
type MemorySavedJobs struct {
	mu   sync.Mutex
	rows map[string]memoryEntry
	seq  uint64
	now  func() time.Time
}

func NewMemorySavedJobs() *MemorySavedJobs {
	return &MemorySavedJobs{
		rows: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (r *MemorySavedJobs) Create(_ context.Context, job *models.SavedJob) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.SavedJobID(job.UserID, job.JobID)
	if _, ok := r.rows[key]; ok {
		return false, nil
	}

	r.seq++
	stored := *job
	stored.DocID = key
	stored.SavedAt = r.now().UTC()
	r.rows[key] = memoryEntry{job: stored, seq: r.seq}
	job.SavedAt = stored.SavedAt
	return true, nil
}

func (r *MemorySavedJobs) Exists(_ context.Context, userID string, jobID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rows[models.SavedJobID(userID, jobID)]
	return ok, nil
}

func (r *MemorySavedJobs) FindByUser(_ context.Context, userID string) ([]models.SavedJob, error) {
	r.mu.Lock()
	entries := make([]memoryEntry, 0)
	for _, e := range r.rows {
		if e.job.UserID == userID {
			entries = append(entries, e)
		}
	}
	r.mu.Unlock()

	// Newest first; insertion order breaks clock ties.
	sort.Slice(entries, func(i, k int) bool {
		if !entries[i].job.SavedAt.Equal(entries[k].job.SavedAt) {
			return entries[i].job.SavedAt.After(entries[k].job.SavedAt)
		}
		return entries[i].seq > entries[k].seq
	})

	jobs := make([]models.SavedJob, len(entries))
	for i, e := range entries {
		jobs[i] = e.job
	}
	return jobs, nil
}

func (r *MemorySavedJobs) DeleteByUserAndJob(_ context.Context, userID string, jobID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.SavedJobID(userID, jobID)
	if _, ok := r.rows[key]; !ok {
		return 0, nil
	}
	delete(r.rows, key)
	return 1, nil
}

func (r *MemorySavedJobs) DeleteByUser(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key, e := range r.rows {
		if e.job.UserID == userID {
			delete(r.rows, key)
			n++
		}
	}
	return n, nil
}
