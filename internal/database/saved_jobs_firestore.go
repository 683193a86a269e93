package database

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/justsurfingit/hirely/internal/models"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const SavedJobsCollection = "savedJobs"

// FirestoreSavedJobs keeps saved jobs in one flat collection, filtered by
// equality on userId and jobId.
type FirestoreSavedJobs struct {
	client *firestore.Client
	coll   string
}

func NewFirestoreSavedJobs(client *firestore.Client) *FirestoreSavedJobs {
	return &FirestoreSavedJobs{client: client, coll: SavedJobsCollection}
}

// Create writes the job under its deterministic id. A second save of the same
// listing by the same user fails in the store with AlreadyExists.
func (r *FirestoreSavedJobs) Create(ctx context.Context, job *models.SavedJob) (bool, error) {
	ref := r.client.Collection(r.coll).Doc(job.DocID)
	if _, err := ref.Create(ctx, job); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, fmt.Errorf("firestore: create saved job: %w", err)
	}
	return true, nil
}

func (r *FirestoreSavedJobs) Exists(ctx context.Context, userID string, jobID int64) (bool, error) {
	docs, err := r.byUserAndJob(userID, jobID).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("firestore: query saved job: %w", err)
	}
	return len(docs) > 0, nil
}

func (r *FirestoreSavedJobs) FindByUser(ctx context.Context, userID string) ([]models.SavedJob, error) {
	docs, err := r.client.Collection(r.coll).Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: list saved jobs: %w", err)
	}

	jobs := make([]models.SavedJob, 0, len(docs))
	for _, d := range docs {
		var j models.SavedJob
		if err := d.DataTo(&j); err != nil {
			return nil, fmt.Errorf("firestore: decode %s: %w", d.Ref.ID, err)
		}
		j.DocID = d.Ref.ID
		jobs = append(jobs, j)
	}

	// Sorted here so the query needs no composite index.
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].SavedAt.After(jobs[k].SavedAt)
	})
	return jobs, nil
}

func (r *FirestoreSavedJobs) DeleteByUserAndJob(ctx context.Context, userID string, jobID int64) (int, error) {
	docs, err := r.byUserAndJob(userID, jobID).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("firestore: query saved job: %w", err)
	}
	return r.deleteAll(ctx, docs)
}

func (r *FirestoreSavedJobs) DeleteByUser(ctx context.Context, userID string) (int, error) {
	docs, err := r.client.Collection(r.coll).Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("firestore: list saved jobs: %w", err)
	}
	return r.deleteAll(ctx, docs)
}

func (r *FirestoreSavedJobs) byUserAndJob(userID string, jobID int64) firestore.Query {
	return r.client.Collection(r.coll).
		Where("userId", "==", userID).
		Where("jobId", "==", jobID)
}

func (r *FirestoreSavedJobs) deleteAll(ctx context.Context, docs []*firestore.DocumentSnapshot) (int, error) {
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for _, d := range docs {
		ref := d.Ref
		eg.Go(func() error {
			if _, err := ref.Delete(gctx); err != nil {
				return fmt.Errorf("firestore: delete %s: %w", ref.ID, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return len(docs), nil
}
