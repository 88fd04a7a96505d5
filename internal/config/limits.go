package config

const (
	// MaxNameLength is the maximum length for category, region and course
	// titles/names. Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxNameLength = 255

	// MaxSlugLength is the maximum length for URL slugs.
	// Same as names for consistency.
	MaxSlugLength = 255

	// MaxShortDescriptionLength applies to category and region descriptions.
	MaxShortDescriptionLength = 1000

	// MaxDescriptionLength applies to course, module and lesson descriptions.
	MaxDescriptionLength = 2000

	// MaxLanguageCodeLength bounds region language codes ("es", "pt-BR").
	MaxLanguageCodeLength = 10

	// DefaultPageSize is the page size used when a list request carries no
	// explicit limit.
	DefaultPageSize = 50

	// MaxPageSize caps the limit a caller may request on list endpoints.
	MaxPageSize = 100
)
