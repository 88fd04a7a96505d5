package catalog

import (
	"time"
)

type Module struct {
	ID           int64     `json:"id" db:"id"`
	CourseID     int64     `json:"course_id" db:"course_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	ModuleImages []string  `json:"module_images" db:"module_images"`
	Order        int       `json:"order" db:"order"`
	IsLocked     bool      `json:"is_locked" db:"is_locked"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Course is the joined course summary, populated on reads only.
	Course *CourseRef `json:"course,omitempty" db:"-"`
}

// ModuleRef is the compact module shape embedded in lesson payloads.
type ModuleRef struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	CourseID int64  `json:"course_id"`
}

func (m *Module) Ref() *ModuleRef {
	return &ModuleRef{ID: m.ID, Title: m.Title, CourseID: m.CourseID}
}
