package chat

import (
	"context"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/polarbear333/rag-llm-based-recommender/internal/common"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&SearchJob{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestJob(t *testing.T) *SearchJob {
	t.Helper()
	id, err := common.NewULID()
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	return &SearchJob{
		ID:        id,
		VisitorID: "01TESTVISITOR000000000000",
		Query:     "noise cancelling headphones",
		Status:    JobQueued,
	}
}

func TestJobLifecycle_Succeeded(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	job := newTestJob(t)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	if err := repo.UpdateJobStatusRunning(ctx, job.ID); err != nil {
		t.Fatalf("mark running: %v", err)
	}
	got, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != JobRunning {
		t.Fatalf("expected running, got %q", got.Status)
	}

	if err := repo.MarkJobSucceeded(ctx, job.ID, 4); err != nil {
		t.Fatalf("mark succeeded: %v", err)
	}
	got, err = repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != JobSucceeded {
		t.Fatalf("expected succeeded, got %q", got.Status)
	}
	if got.ResultMessageID == nil || *got.ResultMessageID != 4 {
		t.Fatalf("result message id not recorded: %v", got.ResultMessageID)
	}
	if got.Error != nil {
		t.Fatalf("error set on a succeeded job: %q", *got.Error)
	}
}

func TestJobLifecycle_Failed(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	job := newTestJob(t)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	if err := repo.MarkJobFailed(ctx, job.ID, "engine timeout"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	got, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != JobFailed {
		t.Fatalf("expected failed, got %q", got.Status)
	}
	if got.Error == nil || *got.Error != "engine timeout" {
		t.Fatalf("failure reason not recorded: %v", got.Error)
	}
}

func TestGetJobByID_Unknown(t *testing.T) {
	repo := NewRepo(openTestDB(t))

	if _, err := repo.GetJobByID(context.Background(), "01UNKNOWNJOB0000000000000"); err == nil {
		t.Fatalf("expected an error for an unknown job id")
	}
}
