package catalog

import (
	"context"
	"errors"
	"testing"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
)

func TestValidateCourseCategory(t *testing.T) {
	f := newPopulatedFixture()
	ctx := context.Background()
	missing := int64(99)

	tests := []struct {
		name       string
		categoryID *int64
		wantErr    bool
	}{
		{name: "nil is uncategorized", categoryID: nil, wantErr: false},
		{name: "existing category", categoryID: &f.categoryID, wantErr: false},
		{name: "missing category", categoryID: &missing, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.validator.ValidateCourseCategory(ctx, tt.categoryID)
			if tt.wantErr {
				var parent *domain.MissingParentError
				if !errors.As(err, &parent) {
					t.Fatalf("error = %v, want MissingParentError", err)
				}
				if parent.Field != "category_id" || parent.Kind != "category" {
					t.Errorf("MissingParentError = %+v", parent)
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("MissingParentError should match ErrValidation")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRequiredParents(t *testing.T) {
	f := newPopulatedFixture()
	ctx := context.Background()

	if err := f.validator.ValidateModuleCourse(ctx, f.courseID); err != nil {
		t.Errorf("existing course rejected: %v", err)
	}
	if err := f.validator.ValidateModuleCourse(ctx, 99); err == nil {
		t.Error("missing course accepted")
	}

	if err := f.validator.ValidateLessonModule(ctx, f.moduleID); err != nil {
		t.Errorf("existing module rejected: %v", err)
	}
	if err := f.validator.ValidateLessonModule(ctx, 99); err == nil {
		t.Error("missing module accepted")
	}

	if err := f.validator.ValidateProgressLesson(ctx, f.lessonID); err != nil {
		t.Errorf("existing lesson rejected: %v", err)
	}
	if err := f.validator.ValidateProgressLesson(ctx, 99); err == nil {
		t.Error("missing lesson accepted")
	}
}

func TestValidateFavoriteItem(t *testing.T) {
	f := newPopulatedFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		item    models.FavoriteItem
		wantErr bool
	}{
		{name: "course target", item: models.FavoriteItem{Type: models.ItemTypeCourse, ID: f.courseID}},
		{name: "module target", item: models.FavoriteItem{Type: models.ItemTypeModule, ID: f.moduleID}},
		{name: "lesson target", item: models.FavoriteItem{Type: models.ItemTypeLesson, ID: f.lessonID}},
		{name: "missing course", item: models.FavoriteItem{Type: models.ItemTypeCourse, ID: 99}, wantErr: true},
		{name: "wrong table", item: models.FavoriteItem{Type: models.ItemTypeLesson, ID: f.courseID + 100}, wantErr: true},
		{name: "bogus type", item: models.FavoriteItem{Type: "category", ID: f.categoryID}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.validator.ValidateFavoriteItem(ctx, tt.item)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckDuplicateProgress(t *testing.T) {
	f := newPopulatedFixture()
	ctx := context.Background()

	// The populated fixture has a progress row for (testUserID, lessonID).
	err := f.validator.CheckDuplicateProgress(ctx, testUserID, f.lessonID)

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	if conflict.ResourceType != "progress" || conflict.ExistingID == 0 {
		t.Errorf("ConflictError = %+v, want progress with existing id", conflict)
	}

	// Other lesson, other user: no conflict.
	if err := f.validator.CheckDuplicateProgress(ctx, testUserID, f.lesson2ID); err != nil {
		t.Errorf("fresh lesson should not conflict: %v", err)
	}
	if err := f.validator.CheckDuplicateProgress(ctx, "11111111-2222-3333-4444-555555555555", f.lessonID); err != nil {
		t.Errorf("fresh user should not conflict: %v", err)
	}
}

func TestCheckDuplicateFavorite(t *testing.T) {
	f := newPopulatedFixture()
	ctx := context.Background()

	err := f.validator.CheckDuplicateFavorite(ctx, testUserID, models.FavoriteItem{Type: models.ItemTypeCourse, ID: f.courseID})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
	if conflict.ResourceType != "favorite" {
		t.Errorf("ConflictError.ResourceType = %q, want favorite", conflict.ResourceType)
	}

	// Same id under a different type tag is a different item.
	if err := f.validator.CheckDuplicateFavorite(ctx, testUserID, models.FavoriteItem{Type: models.ItemTypeModule, ID: f.courseID + 100}); err != nil {
		t.Errorf("different item should not conflict: %v", err)
	}
}
