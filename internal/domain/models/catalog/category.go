package catalog

import (
	"time"
)

type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	Icon        string    `json:"icon" db:"icon"`
	Order       int       `json:"order" db:"order"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategoryRef is the compact category shape embedded in course payloads.
type CategoryRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color}
}
