package reporting

import (
	"context"
	"time"

	models "eduweb/internal/domain/models/reporting"
	repos "eduweb/internal/domain/repositories/reporting"
)

// RecordedSessionService exposes the external reporting database's recorded
// classroom sessions. Read-mostly; only the editorial fields are writable.
type RecordedSessionService interface {
	ListSessions(ctx context.Context, limit, offset int, filter repos.SessionFilter) ([]models.RecordedSession, int, error)

	GetSession(ctx context.Context, id int64) (*models.RecordedSession, error)

	UpdateSession(ctx context.Context, id int64, req *UpdateSessionRequest) (*models.RecordedSession, error)

	DeleteSession(ctx context.Context, id int64) error
}

// UpdateSessionRequest represents a partial recorded-session update. Nil
// fields are left untouched.
type UpdateSessionRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	VideoEmbedCode *string    `json:"video_embeded_code"`
	RecordedAt     *time.Time `json:"recorded_at"`
}
