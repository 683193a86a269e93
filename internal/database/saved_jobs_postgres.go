package database

import (
	"context"
	"fmt"

	"github.com/justsurfingit/hirely/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresSavedJobs stores saved jobs in the saved_jobs table. The unique
// index on (user_id, job_id) makes duplicate saves a no-op.
type PostgresSavedJobs struct {
	DB *gorm.DB
}

func NewPostgresSavedJobs(db *gorm.DB) *PostgresSavedJobs {
	return &PostgresSavedJobs{DB: db}
}

func (r *PostgresSavedJobs) Create(ctx context.Context, job *models.SavedJob) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(job)
	if res.Error != nil {
		return false, fmt.Errorf("postgres: create saved job: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *PostgresSavedJobs) Exists(ctx context.Context, userID string, jobID int64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("postgres: query saved job: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresSavedJobs) FindByUser(ctx context.Context, userID string) ([]models.SavedJob, error) {
	var jobs []models.SavedJob
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: list saved jobs: %w", err)
	}
	return jobs, nil
}

func (r *PostgresSavedJobs) DeleteByUserAndJob(ctx context.Context, userID string, jobID int64) (int, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return 0, fmt.Errorf("postgres: delete saved job: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *PostgresSavedJobs) DeleteByUser(ctx context.Context, userID string) (int, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return 0, fmt.Errorf("postgres: clear saved jobs: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
