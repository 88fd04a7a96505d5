package reporting

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"eduweb/internal/config"
	"eduweb/internal/domain"
	models "eduweb/internal/domain/models/reporting"
	repos "eduweb/internal/domain/repositories/reporting"
	services "eduweb/internal/domain/services/reporting"
)

type recordedSessionService struct {
	sessionRepo repos.RecordedSessionRepository
	logger      *slog.Logger
}

// NewRecordedSessionService creates a new recorded session service
func NewRecordedSessionService(sessionRepo repos.RecordedSessionRepository, logger *slog.Logger) services.RecordedSessionService {
	return &recordedSessionService{sessionRepo: sessionRepo, logger: logger}
}

func (s *recordedSessionService) ListSessions(ctx context.Context, limit, offset int, filter repos.SessionFilter) ([]models.RecordedSession, int, error) {
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.sessionRepo.List(ctx, limit, offset, filter)
}

func (s *recordedSessionService) GetSession(ctx context.Context, id int64) (*models.RecordedSession, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// UpdateSession patches the editorial fields and returns the refreshed row
func (s *recordedSessionService) UpdateSession(ctx context.Context, id int64, req *services.UpdateSessionRequest) (*models.RecordedSession, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	patch := repos.SessionPatch{
		Title:          req.Title,
		Description:    req.Description,
		VideoEmbedCode: req.VideoEmbedCode,
		RecordedAt:     req.RecordedAt,
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	if err := s.sessionRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	s.logger.Info("recorded session updated", "id", id)
	return s.sessionRepo.GetByID(ctx, id)
}

func (s *recordedSessionService) DeleteSession(ctx context.Context, id int64) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("recorded session deleted", "id", id)
	return nil
}

func (s *recordedSessionService) validateUpdateRequest(req *services.UpdateSessionRequest) error {
	var rules []*validation.FieldRules

	if req.Title != nil {
		rules = append(rules, validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxNameLength)))
	}

	return validation.ValidateStruct(req, rules...)
}
