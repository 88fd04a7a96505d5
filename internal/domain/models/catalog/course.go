package catalog

import (
	"time"
)

type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Author      string    `json:"author" db:"author"`
	Language    string    `json:"language" db:"language"`
	CategoryID  *int64    `json:"category_id" db:"category_id"` // NULL = uncategorized
	Order       int       `json:"order" db:"order"`
	CoverImages []string  `json:"cover_images" db:"cover_images"`
	IsLocked    bool      `json:"is_locked" db:"is_locked"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Category is the joined category summary, populated on reads only.
	Category *CategoryRef `json:"category,omitempty" db:"-"`
}

// CourseRef is the compact course shape embedded in module payloads.
type CourseRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (c *Course) Ref() *CourseRef {
	return &CourseRef{ID: c.ID, Title: c.Title, Slug: c.Slug}
}
