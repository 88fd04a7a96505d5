package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduweb/internal/domain"
	services "eduweb/internal/domain/services/catalog"
)

func newProgressService(f *fixture) services.ProgressService {
	return NewProgressService(f.progress, f.lessons, f.validator, testLogger())
}

func TestCreateProgressValidation(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   string
		lessonID int64
		wantErr  error
	}{
		{name: "valid", userID: "11111111-2222-3333-4444-555555555555", lessonID: 0, wantErr: nil},
		{name: "malformed user id", userID: "not-a-uuid", lessonID: 0, wantErr: domain.ErrValidation},
		{name: "missing lesson", userID: "11111111-2222-3333-4444-555555555555", lessonID: 99, wantErr: domain.ErrValidation},
		{name: "duplicate pair", userID: testUserID, lessonID: 0, wantErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessonID := tt.lessonID
			if lessonID == 0 {
				lessonID = f.lessonID
			}
			_, err := svc.CreateProgress(ctx, &services.CreateProgressRequest{
				UserID:   tt.userID,
				LessonID: lessonID,
			})
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CreateProgress() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateProgress() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateProgressStampsCompletedAt(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)

	created, err := svc.CreateProgress(context.Background(), &services.CreateProgressRequest{
		UserID:      "11111111-2222-3333-4444-555555555555",
		LessonID:    f.lesson2ID,
		IsCompleted: true,
	})
	if err != nil {
		t.Fatalf("CreateProgress() error = %v", err)
	}
	if created.CompletedAt == nil {
		t.Error("completed row should carry a completed_at timestamp")
	}
}

func TestUpdateProgressTransitions(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)
	ctx := context.Background()

	created, err := svc.CreateProgress(ctx, &services.CreateProgressRequest{
		UserID:   "11111111-2222-3333-4444-555555555555",
		LessonID: f.lesson2ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Empty patch is rejected.
	if _, err := svc.UpdateProgress(ctx, created.ID, &services.UpdateProgressRequest{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty patch error = %v, want ErrValidation", err)
	}

	// Completing without a timestamp stamps now.
	done := true
	updated, err := svc.UpdateProgress(ctx, created.ID, &services.UpdateProgressRequest{IsCompleted: &done})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.IsCompleted || updated.CompletedAt == nil {
		t.Errorf("completion should stamp completed_at, got %+v", updated)
	}

	// Explicit timestamp wins.
	when := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	updated, err = svc.UpdateProgress(ctx, created.ID, &services.UpdateProgressRequest{CompletedAt: &when})
	if err != nil {
		t.Fatal(err)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(when) {
		t.Errorf("completed_at = %v, want %v", updated.CompletedAt, when)
	}

	// Un-completing clears the timestamp.
	undone := false
	updated, err = svc.UpdateProgress(ctx, created.ID, &services.UpdateProgressRequest{IsCompleted: &undone})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsCompleted || updated.CompletedAt != nil {
		t.Errorf("un-completion should clear completed_at, got %+v", updated)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)
	ctx := context.Background()
	userID := "11111111-2222-3333-4444-555555555555"

	first, err := svc.Complete(ctx, userID, f.lesson2ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !first.IsCompleted || first.CompletedAt == nil {
		t.Fatalf("Complete() row = %+v, want completed with timestamp", first)
	}

	second, err := svc.Complete(ctx, userID, f.lesson2ID)
	if err != nil {
		t.Fatalf("repeat Complete() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat Complete() created a new row: %d != %d", second.ID, first.ID)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("repeat Complete() moved the timestamp: %v != %v", second.CompletedAt, first.CompletedAt)
	}
}

func TestCompleteUpgradesIncompleteRow(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)
	ctx := context.Background()
	userID := "11111111-2222-3333-4444-555555555555"

	created, err := svc.CreateProgress(ctx, &services.CreateProgressRequest{UserID: userID, LessonID: f.lesson2ID})
	if err != nil {
		t.Fatal(err)
	}

	completed, err := svc.Complete(ctx, userID, f.lesson2ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completed.ID != created.ID {
		t.Errorf("Complete() should reuse the existing row: %d != %d", completed.ID, created.ID)
	}
	if !completed.IsCompleted || completed.CompletedAt == nil {
		t.Errorf("Complete() row = %+v, want completed", completed)
	}
}

func TestCompleteRejectsMissingLesson(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)

	_, err := svc.Complete(context.Background(), testUserID, 99)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Complete() error = %v, want ErrValidation", err)
	}
}

func TestStats(t *testing.T) {
	f := newPopulatedFixture()
	svc := newProgressService(f)
	ctx := context.Background()

	// Fixture: 2 lessons total, testUserID has completed one.
	stats, err := svc.Stats(ctx, testUserID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalLessons != 2 || stats.CompletedLessons != 1 {
		t.Errorf("stats = %+v, want 1/2 completed", stats)
	}
	if stats.CompletionPercentage != 50 {
		t.Errorf("CompletionPercentage = %d, want 50", stats.CompletionPercentage)
	}

	// A user with no progress gets zeros and no last activity.
	stats, err = svc.Stats(ctx, "11111111-2222-3333-4444-555555555555")
	if err != nil {
		t.Fatal(err)
	}
	if stats.CompletedLessons != 0 || stats.CompletionPercentage != 0 || stats.LastActivity != nil {
		t.Errorf("fresh user stats = %+v, want zeros", stats)
	}
}

func TestStatsEmptyCatalog(t *testing.T) {
	f := newFixture()
	svc := newProgressService(f)

	stats, err := svc.Stats(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %d, want 0 with no lessons", stats.CompletionPercentage)
	}
}
