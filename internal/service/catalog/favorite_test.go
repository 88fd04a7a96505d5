package catalog

import (
	"context"
	"errors"
	"testing"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

func newFavoriteService(f *fixture) services.FavoriteService {
	return NewFavoriteService(f.favorites, f.validator, testLogger())
}

func TestCreateFavorite(t *testing.T) {
	f := newPopulatedFixture()
	svc := newFavoriteService(f)
	userID := "11111111-2222-3333-4444-555555555555"

	tests := []struct {
		name    string
		req     *services.CreateFavoriteRequest
		wantErr error
	}{
		{
			name: "valid course favorite",
			req:  &services.CreateFavoriteRequest{UserID: userID, ItemType: "course", ItemID: 1},
		},
		{
			name:    "bogus item type",
			req:     &services.CreateFavoriteRequest{UserID: userID, ItemType: "category", ItemID: 1},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "malformed user id",
			req:     &services.CreateFavoriteRequest{UserID: "nope", ItemType: "course", ItemID: 1},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "dangling target",
			req:     &services.CreateFavoriteRequest{UserID: userID, ItemType: "lesson", ItemID: 99},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "duplicate",
			req:     &services.CreateFavoriteRequest{UserID: testUserID, ItemType: "course", ItemID: 1},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CreateFavorite(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateFavorite() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateFavorite() error = %v", err)
			}
			if got.ItemType != models.ItemTypeCourse || got.ItemID != tt.req.ItemID {
				t.Errorf("created favorite = %+v", got)
			}
		})
	}
}

func TestDeleteByUserItem(t *testing.T) {
	f := newPopulatedFixture()
	svc := newFavoriteService(f)
	ctx := context.Background()
	item := models.FavoriteItem{Type: models.ItemTypeCourse, ID: f.courseID}

	if err := svc.DeleteByUserItem(ctx, testUserID, item); err != nil {
		t.Fatalf("DeleteByUserItem() error = %v", err)
	}

	// Gone now, so the second call reports not found.
	err := svc.DeleteByUserItem(ctx, testUserID, item)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("repeat DeleteByUserItem() error = %v, want ErrNotFound", err)
	}
}

func TestListForUser(t *testing.T) {
	f := newPopulatedFixture()
	svc := newFavoriteService(f)

	favorites, total, err := svc.ListForUser(context.Background(), testUserID, repos.ListOptions{Limit: 50})
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if total != 3 || len(favorites) != 3 {
		t.Errorf("ListForUser() = %d rows (total %d), want 3", len(favorites), total)
	}

	if _, _, err := svc.ListForUser(context.Background(), "nope", repos.ListOptions{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("malformed user id error = %v, want ErrValidation", err)
	}
}
