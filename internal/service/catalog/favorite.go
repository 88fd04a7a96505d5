package catalog

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/catalog"
	repos "eduweb/internal/domain/repositories/catalog"
	services "eduweb/internal/domain/services/catalog"
)

type favoriteService struct {
	favoriteRepo repos.FavoriteRepository
	validator    *ReferenceValidator
	logger       *slog.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	favoriteRepo repos.FavoriteRepository,
	validator *ReferenceValidator,
	logger *slog.Logger,
) services.FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		validator:    validator,
		logger:       logger,
	}
}

func (s *favoriteService) ListFavorites(ctx context.Context, opts repos.ListOptions, filter repos.FavoriteFilter) ([]models.Favorite, int, error) {
	return s.favoriteRepo.List(ctx, opts, filter)
}

func (s *favoriteService) GetFavorite(ctx context.Context, id int64) (*models.Favorite, error) {
	return s.favoriteRepo.GetByID(ctx, id)
}

// CreateFavorite resolves the polymorphic target through its type tag,
// rejects duplicates with the existing row's id, then persists the favorite
func (s *favoriteService) CreateFavorite(ctx context.Context, req *services.CreateFavoriteRequest) (*models.Favorite, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}

	itemType, err := models.ParseItemType(req.ItemType)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error(), Field: "item_type"}
	}
	item := models.FavoriteItem{Type: itemType, ID: req.ItemID}

	if err := s.validator.ValidateFavoriteItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.validator.CheckDuplicateFavorite(ctx, req.UserID, item); err != nil {
		return nil, err
	}

	favorite := &models.Favorite{
		UserID:   req.UserID,
		ItemType: itemType,
		ItemID:   req.ItemID,
	}

	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}

	s.logger.Info("favorite created", "id", favorite.ID, "user_id", favorite.UserID,
		"item_type", string(favorite.ItemType), "item_id", favorite.ItemID)
	return s.favoriteRepo.GetByID(ctx, favorite.ID)
}

func (s *favoriteService) DeleteFavorite(ctx context.Context, id int64) error {
	if err := s.favoriteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("favorite deleted", "id", id)
	return nil
}

// DeleteByUserItem removes the favorite identified by its natural key
func (s *favoriteService) DeleteByUserItem(ctx context.Context, userID string, item models.FavoriteItem) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if _, err := models.ParseItemType(string(item.Type)); err != nil {
		return &domain.ValidationError{Message: err.Error(), Field: "item_type"}
	}

	deleted, err := s.favoriteRepo.DeleteByUserItem(ctx, userID, item)
	if err != nil {
		return err
	}
	if !deleted {
		return &domain.NotFoundError{Message: fmt.Sprintf("favorite for %s %d not found", item.Type, item.ID)}
	}

	s.logger.Info("favorite deleted", "user_id", userID, "item_type", string(item.Type), "item_id", item.ID)
	return nil
}

// ListForUser lists a user's favorites, newest first
func (s *favoriteService) ListForUser(ctx context.Context, userID string, opts repos.ListOptions) ([]models.Favorite, int, error) {
	if err := validateUserID(userID); err != nil {
		return nil, 0, err
	}

	return s.favoriteRepo.List(ctx, opts, repos.FavoriteFilter{UserID: &userID})
}

func (s *favoriteService) validateCreateRequest(req *services.CreateFavoriteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ItemType, validation.Required),
		validation.Field(&req.ItemID, validation.Required, validation.Min(int64(1))),
	)
}
