package reporting

import (
	"context"
	"time"

	models "eduweb/internal/domain/models/reporting"
)

// SessionFilter narrows recorded-session listings.
type SessionFilter struct {
	Search     string // matches session title/description and educator name
	EducatorID *int64
}

// SessionPatch carries the editorial fields a caller may update. Nil fields
// are left untouched.
type SessionPatch struct {
	Title          *string
	Description    *string
	VideoEmbedCode *string
	RecordedAt     *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p *SessionPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.VideoEmbedCode == nil && p.RecordedAt == nil
}

// RecordedSessionRepository reads and patches the external reporting
// database's recorded classroom sessions.
type RecordedSessionRepository interface {
	// List returns a page of sessions plus the unpaginated total
	List(ctx context.Context, limit, offset int, filter SessionFilter) ([]models.RecordedSession, int, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id int64) (*models.RecordedSession, error)

	// Update patches the editorial fields of a session
	Update(ctx context.Context, id int64, patch SessionPatch) error

	// Delete removes a session row
	Delete(ctx context.Context, id int64) error

	// Ping verifies the reporting database connection
	Ping(ctx context.Context) error
}
