package catalog

import (
	"context"
	"errors"
	"testing"

	"eduweb/internal/domain"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

func newCategoryService(f *fixture) services.CategoryService {
	return NewCategoryService(f.categories, f.courses, f.deleter, f.counter, testLogger())
}

func TestCreateCategory(t *testing.T) {
	f := newPopulatedFixture()
	svc := newCategoryService(f)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *services.CreateCategoryRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  &services.CreateCategoryRequest{Name: "Design", Slug: "design"},
		},
		{
			name:    "duplicate name",
			req:     &services.CreateCategoryRequest{Name: "Programming", Slug: "programming-2"},
			wantErr: domain.ErrConflict,
		},
		{
			name:    "duplicate slug",
			req:     &services.CreateCategoryRequest{Name: "Coding", Slug: "programming"},
			wantErr: domain.ErrConflict,
		},
		{
			name:    "malformed slug",
			req:     &services.CreateCategoryRequest{Name: "Bad", Slug: "Bad_Slug"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing name",
			req:     &services.CreateCategoryRequest{Slug: "nameless"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CreateCategory(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateCategory() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCategory() error = %v", err)
			}
			if !got.IsActive {
				t.Error("categories default to active")
			}
		})
	}
}

func TestUpdateCategoryUniquenessExcludesSelf(t *testing.T) {
	f := newPopulatedFixture()
	svc := newCategoryService(f)
	ctx := context.Background()

	// Re-submitting the category's own name and slug is fine.
	name := "Programming"
	slug := "programming"
	if _, err := svc.UpdateCategory(ctx, f.categoryID, &services.UpdateCategoryRequest{Name: &name, Slug: &slug}); err != nil {
		t.Errorf("UpdateCategory() error = %v", err)
	}

	// Taking another category's slug is a conflict.
	other, err := svc.CreateCategory(ctx, &services.CreateCategoryRequest{Name: "Design", Slug: "design"})
	if err != nil {
		t.Fatal(err)
	}
	taken := "programming"
	_, err = svc.UpdateCategory(ctx, other.ID, &services.UpdateCategoryRequest{Slug: &taken})
	var dup *domain.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("UpdateCategory() error = %v, want DuplicateKeyError", err)
	}
}

func TestCategoryListCourses(t *testing.T) {
	f := newPopulatedFixture()
	svc := newCategoryService(f)
	ctx := context.Background()

	courses, total, err := svc.ListCourses(ctx, f.categoryID, repos.ListOptions{Limit: 50}, repos.CourseFilter{})
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if total != 1 || len(courses) != 1 {
		t.Errorf("ListCourses() = %d rows (total %d), want 1", len(courses), total)
	}

	if _, _, err := svc.ListCourses(ctx, 99, repos.ListOptions{}, repos.CourseFilter{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing category error = %v, want ErrNotFound", err)
	}
}
