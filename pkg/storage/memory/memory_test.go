package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skoenig/rubric/pkg/classify"
	"github.com/skoenig/rubric/pkg/storage"
)

func makeRun(startedAt time.Time) *classify.Run {
	return &classify.Run{
		ID:          uuid.New(),
		Model:       "test-model",
		StartedAt:   startedAt,
		CompletedAt: startedAt.Add(time.Minute),
		Assignments: map[string][]string{
			"owner/r1": {"AI: LLM"},
		},
		Stats: classify.Stats{Items: 1, Batches: 1},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	run := makeRun(time.Now())
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if got.ID != run.ID {
		t.Errorf("ID = %v, want %v", got.ID, run.ID)
	}
	if got.Model != "test-model" {
		t.Errorf("Model = %q, want %q", got.Model, "test-model")
	}
	if len(got.Assignments) != 1 {
		t.Errorf("len(Assignments) = %d, want 1", len(got.Assignments))
	}
}

func TestGetNotFound(t *testing.T) {
	s := New(0)

	_, err := s.GetRun(context.Background(), uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveDuplicateConflicts(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	run := makeRun(time.Now())
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if err := s.SaveRun(ctx, run); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	run := makeRun(time.Now())
	s.SaveRun(ctx, run)

	if err := s.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	if _, err := s.GetRun(ctx, run.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.DeleteRun(ctx, run.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	base := time.Now()
	oldest := makeRun(base.Add(-2 * time.Hour))
	middle := makeRun(base.Add(-time.Hour))
	newest := makeRun(base)
	for _, r := range []*classify.Run{middle, oldest, newest} {
		if err := s.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	if runs[0].ID != newest.ID || runs[2].ID != oldest.ID {
		t.Errorf("runs not ordered newest first: %v, %v, %v", runs[0].ID, runs[1].ID, runs[2].ID)
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

func TestLRUEviction(t *testing.T) {
	s := New(2)
	ctx := context.Background()

	first := makeRun(time.Now())
	second := makeRun(time.Now())
	third := makeRun(time.Now())

	s.SaveRun(ctx, first)
	s.SaveRun(ctx, second)

	// Touch first so second becomes the eviction candidate.
	if _, err := s.GetRun(ctx, first.ID); err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if err := s.SaveRun(ctx, third); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	if _, err := s.GetRun(ctx, second.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected second run evicted, got %v", err)
	}
	if _, err := s.GetRun(ctx, first.ID); err != nil {
		t.Errorf("first run should survive eviction, got %v", err)
	}
	if _, err := s.GetRun(ctx, third.ID); err != nil {
		t.Errorf("third run should be present, got %v", err)
	}
}

func TestHealthCheckAndClose(t *testing.T) {
	s := New(0)

	if err := s.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck = %v, want nil", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close = %v, want nil", err)
	}
}
