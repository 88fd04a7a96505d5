package catalog

import (
	"time"
)

type Lesson struct {
	ID               int64     `json:"id" db:"id"`
	ModuleID         int64     `json:"module_id" db:"module_id"`
	Title            string    `json:"title" db:"title"`
	VideoURL         string    `json:"video_url" db:"video_url"`
	SupportContent   string    `json:"support_content" db:"support_content"` // HTML, stored opaque
	Order            int       `json:"order" db:"order"`
	DripDelayMinutes int       `json:"drip_delay_minutes" db:"drip_delay_minutes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`

	// Module is the joined module summary, populated on reads only.
	Module *ModuleRef `json:"module,omitempty" db:"-"`
}
