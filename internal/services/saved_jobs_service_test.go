package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/justsurfingit/hirely/internal/auth"
	"github.com/justsurfingit/hirely/internal/database"
	"github.com/justsurfingit/hirely/internal/logging"
	"github.com/justsurfingit/hirely/internal/models"
	"github.com/justsurfingit/hirely/internal/services"
)

func newSavedJobs() *services.SavedJobsService {
	return services.NewSavedJobsService(database.NewMemorySavedJobs(), logging.NewNop())
}

var alice = &auth.Session{UID: "alice", Email: "alice@hirely.io"}

func TestSavedJobs_SaveIsIdempotentSequentially(t *testing.T) {
	svc := newSavedJobs()
	ctx := context.Background()

	first, err := svc.Save(ctx, alice, models.SavedJob{JobID: 7, JobTitle: "Chef"})
	if err != nil || !first {
		t.Fatalf("first save = %v, %v", first, err)
	}
	second, err := svc.Save(ctx, alice, models.SavedJob{JobID: 7, JobTitle: "Chef"})
	if err != nil || second {
		t.Fatalf("second save = %v, %v; want false, nil", second, err)
	}

	if got := svc.List(ctx, alice); len(got) != 1 {
		t.Errorf("stored %d records, want 1", len(got))
	}
}

func TestSavedJobs_ConcurrentSavesStoreOneRecord(t *testing.T) {
	svc := newSavedJobs()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Save(ctx, alice, models.SavedJob{JobID: 99})
		}()
	}
	wg.Wait()

	if got := svc.List(ctx, alice); len(got) != 1 {
		t.Errorf("stored %d records after concurrent saves, want 1", len(got))
	}
}

func TestSavedJobs_IsSavedTracksSaveAndUnsave(t *testing.T) {
	svc := newSavedJobs()
	ctx := context.Background()

	if svc.IsSaved(ctx, alice, 5) {
		t.Fatal("IsSaved before save")
	}
	if _, err := svc.Save(ctx, alice, models.SavedJob{JobID: 5}); err != nil {
		t.Fatal(err)
	}
	if !svc.IsSaved(ctx, alice, 5) {
		t.Error("IsSaved after save = false")
	}
	if !svc.Unsave(ctx, alice, 5) {
		t.Error("Unsave of saved job = false")
	}
	if svc.IsSaved(ctx, alice, 5) {
		t.Error("IsSaved after unsave = true")
	}
	if svc.Unsave(ctx, alice, 5) {
		t.Error("Unsave of missing job = true")
	}
}

func TestSavedJobs_OwnerComesFromSession(t *testing.T) {
	svc := newSavedJobs()
	ctx := context.Background()

	if _, err := svc.Save(ctx, alice, models.SavedJob{JobID: 1, UserID: "mallory"}); err != nil {
		t.Fatal(err)
	}
	got := svc.List(ctx, alice)
	if len(got) != 1 || got[0].UserID != "alice" {
		t.Fatalf("List = %+v", got)
	}
	if len(svc.List(ctx, &auth.Session{UID: "mallory"})) != 0 {
		t.Error("client-supplied userId was honoured")
	}
}

func TestSavedJobs_ListNewestFirstAndClear(t *testing.T) {
	svc := newSavedJobs()
	ctx := context.Background()

	if got := svc.List(ctx, alice); got == nil || len(got) != 0 {
		t.Fatalf("empty list = %#v, want empty non-nil slice", got)
	}

	for _, id := range []int64{1, 2, 3} {
		if _, err := svc.Save(ctx, alice, models.SavedJob{JobID: id}); err != nil {
			t.Fatal(err)
		}
	}
	got := svc.List(ctx, alice)
	if len(got) != 3 {
		t.Fatalf("List returned %d records, want 3", len(got))
	}
	if got[0].JobID != 3 || got[2].JobID != 1 {
		t.Errorf("order = %v, want newest first", []int64{got[0].JobID, got[1].JobID, got[2].JobID})
	}

	if !svc.ClearAll(ctx, alice) {
		t.Error("ClearAll = false")
	}
	if len(svc.List(ctx, alice)) != 0 {
		t.Error("records remain after ClearAll")
	}
}

func TestSavedJobs_Unauthenticated(t *testing.T) {
	svc := newSavedJobs()
	ctx := context.Background()

	if _, err := svc.Save(ctx, nil, models.SavedJob{JobID: 1}); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Save err = %v, want ErrUnauthenticated", err)
	}
	if svc.IsSaved(ctx, nil, 1) || svc.Unsave(ctx, nil, 1) || svc.ClearAll(ctx, nil) {
		t.Error("anonymous calls should report false")
	}
	if got := svc.List(ctx, nil); got == nil || len(got) != 0 {
		t.Errorf("anonymous List = %#v", got)
	}
}

type failingRepo struct{}

var errStore = errors.New("store unavailable")

func (failingRepo) Create(context.Context, *models.SavedJob) (bool, error) {
	return false, errStore
}

func (failingRepo) Exists(context.Context, string, int64) (bool, error) {
	return false, errStore
}

func (failingRepo) FindByUser(context.Context, string) ([]models.SavedJob, error) {
	return nil, errStore
}

func (failingRepo) DeleteByUserAndJob(context.Context, string, int64) (int, error) {
	return 0, errStore
}

func (failingRepo) DeleteByUser(context.Context, string) (int, error) {
	return 0, errStore
}

func TestSavedJobs_StorageFailuresAreSwallowed(t *testing.T) {
	svc := services.NewSavedJobsService(failingRepo{}, logging.NewNop())
	ctx := context.Background()

	saved, err := svc.Save(ctx, alice, models.SavedJob{JobID: 1})
	if err != nil || saved {
		t.Errorf("Save = %v, %v; want false, nil", saved, err)
	}
	if svc.IsSaved(ctx, alice, 1) || svc.Unsave(ctx, alice, 1) || svc.ClearAll(ctx, alice) {
		t.Error("failed calls should report false")
	}
	if got := svc.List(ctx, alice); got == nil || len(got) != 0 {
		t.Errorf("List on failure = %#v, want empty", got)
	}
}
