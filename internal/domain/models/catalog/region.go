package catalog

import (
	"time"
)

// Region declares which subset of the catalog, and which languages, apply to
// a geography. Regions reference the catalog; the catalog never references
// regions, so deleting one has no cascading effect.
type Region struct {
	ID                  int64     `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Slug                string    `json:"slug" db:"slug"`
	Description         string    `json:"description" db:"description"`
	IncludedCategoryIDs []int64   `json:"included_category_ids" db:"included_category_ids"`
	ExcludedCourseIDs   []int64   `json:"excluded_course_ids" db:"excluded_course_ids"`
	AvailableLanguages  []string  `json:"available_languages" db:"available_languages"`
	PreferredUILanguage string    `json:"preferred_ui_language" db:"preferred_ui_language"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// HasLanguage reports whether code is one of the region's available languages.
func (r *Region) HasLanguage(code string) bool {
	for _, l := range r.AvailableLanguages {
		if l == code {
			return true
		}
	}
	return false
}
