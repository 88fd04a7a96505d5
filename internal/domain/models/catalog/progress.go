package catalog

import (
	"time"
)

// Progress records one user's state against one lesson.
// (user_id, lesson_id) is logically unique; the store does not enforce it.
type Progress struct {
	ID          int64      `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	LessonID    int64      `json:"lesson_id" db:"lesson_id"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Lesson is the joined lesson summary, populated on reads only.
	Lesson *LessonRef `json:"lesson,omitempty" db:"-"`
}

// LessonRef is the compact lesson shape embedded in progress payloads.
type LessonRef struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ModuleID int64  `json:"module_id"`
}

// ProgressStats summarizes a user's completion across the whole catalog.
type ProgressStats struct {
	UserID               string     `json:"user_id"`
	TotalLessons         int        `json:"total_lessons"`
	CompletedLessons     int        `json:"completed_lessons"`
	CompletionPercentage int        `json:"completion_percentage"`
	LastActivity         *time.Time `json:"last_activity"`
}
