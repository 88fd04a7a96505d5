package reporting

import (
	"time"
)

// RecordedSession is a row from the external reporting database's
// classroom_recorded_sessions view, joined with its classroom, educator and
// category. The reporting schema is owned by another system; this service
// only reads rows and patches the editorial fields.
type RecordedSession struct {
	ID             int64      `json:"id" db:"id"`
	ClassroomID    int64      `json:"classroom_id" db:"classroom_id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	VideoEmbedCode string     `json:"video_embeded_code" db:"video_embeded_code"`
	RecordedAt     *time.Time `json:"recorded_at" db:"recorded_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	ClassroomName *string `json:"classroom_name" db:"classroom_name"`
	EducatorID    *int64  `json:"educator_id" db:"educator_id"`
	EducatorName  *string `json:"educator_name" db:"educator_name"`
	CategoryName  *string `json:"category_name" db:"category_name"`
}
