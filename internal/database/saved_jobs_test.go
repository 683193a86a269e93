package database_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/hirely/internal/database"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/models"
)

type savedJobStore interface {
	Create(ctx context.Context, job *models.SavedJob) (bool, error)
	Exists(ctx context.Context, userID string, jobID int64) (bool, error)
	FindByUser(ctx context.Context, userID string) ([]models.SavedJob, error)
	DeleteByUserAndJob(ctx context.Context, userID string, jobID int64) (int, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

func newJob(uid string, jobID int64) *models.SavedJob {
	return &models.SavedJob{
		DocID:        models.SavedJobID(uid, jobID),
		UserID:       uid,
		JobID:        jobID,
		JobTitle:     fmt.Sprintf("Job %d", jobID),
		EmployerName: "Acme",
	}
}

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, store savedJobStore, uid string) {
	ctx := context.Background()
	t.Cleanup(func() { _, _ = store.DeleteByUser(ctx, uid) })

	jobs, err := store.FindByUser(ctx, uid)
	if err != nil || len(jobs) != 0 {
		t.Fatalf("empty FindByUser = %v, %v", jobs, err)
	}

	created, err := store.Create(ctx, newJob(uid, 100))
	if err != nil || !created {
		t.Fatalf("first Create = %v, %v", created, err)
	}
	created, err = store.Create(ctx, newJob(uid, 100))
	if err != nil || created {
		t.Fatalf("duplicate Create = %v, %v; want false, nil", created, err)
	}

	if ok, err := store.Exists(ctx, uid, 100); err != nil || !ok {
		t.Errorf("Exists after save = %v, %v", ok, err)
	}
	if ok, err := store.Exists(ctx, uid+"-other", 100); err != nil || ok {
		t.Errorf("Exists for another user = %v, %v", ok, err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := store.Create(ctx, newJob(uid, 200)); err != nil {
		t.Fatalf("Create 200: %v", err)
	}

	jobs, err = store.FindByUser(ctx, uid)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(jobs) != 2 || jobs[0].JobID != 200 || jobs[1].JobID != 100 {
		t.Fatalf("FindByUser order = %+v, want [200 100]", jobs)
	}
	if jobs[0].SavedAt.IsZero() || jobs[0].DocID == "" {
		t.Errorf("savedAt/docId not assigned: %+v", jobs[0])
	}

	n, err := store.DeleteByUserAndJob(ctx, uid, 100)
	if err != nil || n != 1 {
		t.Errorf("DeleteByUserAndJob = %d, %v", n, err)
	}
	n, err = store.DeleteByUserAndJob(ctx, uid, 100)
	if err != nil || n != 0 {
		t.Errorf("second DeleteByUserAndJob = %d, %v; want 0, nil", n, err)
	}

	n, err = store.DeleteByUser(ctx, uid)
	if err != nil || n != 1 {
		t.Errorf("DeleteByUser = %d, %v", n, err)
	}
}

func runConcurrentCreate(t *testing.T, store savedJobStore, uid string) {
	ctx := context.Background()
	t.Cleanup(func() { _, _ = store.DeleteByUser(ctx, uid) })

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Create(ctx, newJob(uid, 42))
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("concurrent creates reported %d successes, want 1", created)
	}
	jobs, err := store.FindByUser(ctx, uid)
	if err != nil || len(jobs) != 1 {
		t.Errorf("stored %d records (%v), want exactly 1", len(jobs), err)
	}
}

func TestMemorySavedJobs(t *testing.T) {
	runStoreContract(t, database.NewMemorySavedJobs(), "user-a")
	runConcurrentCreate(t, database.NewMemorySavedJobs(), "user-b")
}

// Runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestFirestoreSavedJobs(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := database.NewFirestoreClient(ctx, "hirely-test", nil)
	if err != nil {
		t.Fatalf("NewFirestoreClient: %v", err)
	}
	defer client.Close()

	store := database.NewFirestoreSavedJobs(client)
	suffix := time.Now().UnixNano()
	runStoreContract(t, store, fmt.Sprintf("fs-contract-%d", suffix))
	runConcurrentCreate(t, store, fmt.Sprintf("fs-race-%d", suffix))
}

// Runs against a scratch database when HIRELY_TEST_DATABASE_URL is set.
func TestPostgresSavedJobs(t *testing.T) {
	dsn := os.Getenv("HIRELY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("HIRELY_TEST_DATABASE_URL not set")
	}
	db, err := database.Connect(dsn, logging.NewNop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer database.Close(db)

	store := database.NewPostgresSavedJobs(db)
	suffix := time.Now().UnixNano()
	runStoreContract(t, store, fmt.Sprintf("pg-contract-%d", suffix))
	runConcurrentCreate(t, store, fmt.Sprintf("pg-race-%d", suffix))
}
