package catalog

import (
	"context"
	"errors"
	"testing"

	"eduweb/internal/domain"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

func newModuleService(f *fixture) services.ModuleService {
	return NewModuleService(f.modules, f.lessons, f.validator, f.deleter, f.counter, testLogger())
}

func newLessonService(f *fixture) services.LessonService {
	return NewLessonService(f.lessons, f.progress, f.validator, f.deleter, f.counter, testLogger())
}

func TestCreateModuleValidatesCourse(t *testing.T) {
	f := newPopulatedFixture()
	svc := newModuleService(f)
	ctx := context.Background()

	created, err := svc.CreateModule(ctx, &services.CreateModuleRequest{CourseID: f.courseID, Title: "Deployment"})
	if err != nil {
		t.Fatalf("CreateModule() error = %v", err)
	}
	if created.CourseID != f.courseID {
		t.Errorf("CourseID = %d, want %d", created.CourseID, f.courseID)
	}

	_, err = svc.CreateModule(ctx, &services.CreateModuleRequest{CourseID: 99, Title: "Dangling"})
	var parent *domain.MissingParentError
	if !errors.As(err, &parent) {
		t.Fatalf("CreateModule() error = %v, want MissingParentError", err)
	}
	if parent.Field != "course_id" {
		t.Errorf("failing field = %q, want course_id", parent.Field)
	}
}

func TestUpdateModuleReparent(t *testing.T) {
	f := newPopulatedFixture()
	svc := newModuleService(f)
	ctx := context.Background()

	other, err := f.courses.GetByID(ctx, f.courseID)
	if err != nil {
		t.Fatal(err)
	}
	other.ID = 0
	other.Slug = "second-course"
	if err := f.courses.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	// Moving the module to an existing course works.
	updated, err := svc.UpdateModule(ctx, f.moduleID, &services.UpdateModuleRequest{CourseID: &other.ID})
	if err != nil {
		t.Fatalf("UpdateModule() error = %v", err)
	}
	if updated.CourseID != other.ID {
		t.Errorf("CourseID = %d, want %d", updated.CourseID, other.ID)
	}

	// Moving it to a missing course is rejected.
	missing := int64(99)
	_, err = svc.UpdateModule(ctx, f.moduleID, &services.UpdateModuleRequest{CourseID: &missing})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("UpdateModule() error = %v, want ErrValidation", err)
	}
}

func TestCreateLessonValidatesModule(t *testing.T) {
	f := newPopulatedFixture()
	svc := newLessonService(f)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *services.CreateLessonRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  &services.CreateLessonRequest{ModuleID: f.moduleID, Title: "Middleware", VideoURL: "https://videos.example.com/middleware"},
		},
		{
			name:    "missing module",
			req:     &services.CreateLessonRequest{ModuleID: 99, Title: "Dangling"},
			wantErr: true,
		},
		{
			name:    "malformed video url",
			req:     &services.CreateLessonRequest{ModuleID: f.moduleID, Title: "Bad URL", VideoURL: "not a url"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLesson(ctx, tt.req)
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateLesson() error = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CreateLesson() error = %v", err)
			}
		})
	}
}

func TestModuleListLessons(t *testing.T) {
	f := newPopulatedFixture()
	svc := newModuleService(f)
	ctx := context.Background()

	lessons, total, err := svc.ListLessons(ctx, f.moduleID, repos.ListOptions{Limit: 50})
	if err != nil {
		t.Fatalf("ListLessons() error = %v", err)
	}
	if total != 2 || len(lessons) != 2 {
		t.Errorf("ListLessons() = %d rows (total %d), want 2", len(lessons), total)
	}

	if _, _, err := svc.ListLessons(ctx, 99, repos.ListOptions{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing module error = %v, want ErrNotFound", err)
	}
}
