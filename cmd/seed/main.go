package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"eduweb/internal/config"
	services "eduweb/internal/domain/services/catalog"
	"eduweb/internal/repository/postgres"
	serviceCatalog "eduweb/internal/service/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed catalog data")
	clearData := flag.Bool("clear-data", false, "Clear all catalog data (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Clearing runs in reverse hierarchy order. There are no FK constraints
	// to enforce it, but leaving orphans behind mid-run would trip the
	// application-level checks on the next seed pass.
	log.Println("Clearing existing catalog data...")
	if err := clearCatalogData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}

	if *clearData {
		log.Println("Data cleared successfully")
		return
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(seedYAML, &fixture); err != nil {
		log.Fatalf("Failed to parse seed fixture: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	courseRepo := postgres.NewCourseRepository(repoConfig)
	moduleRepo := postgres.NewModuleRepository(repoConfig)
	lessonRepo := postgres.NewLessonRepository(repoConfig)
	progressRepo := postgres.NewProgressRepository(repoConfig)
	favoriteRepo := postgres.NewFavoriteRepository(repoConfig)
	regionRepo := postgres.NewRegionRepository(repoConfig)

	// Seed through the service layer so the same reference and uniqueness
	// checks the API enforces run against the fixture.
	validator := serviceCatalog.NewReferenceValidator(
		categoryRepo, courseRepo, moduleRepo, lessonRepo, progressRepo, favoriteRepo,
	)
	counter := serviceCatalog.NewDependencyCounter(
		courseRepo, moduleRepo, lessonRepo, progressRepo, favoriteRepo,
	)
	deleter := serviceCatalog.NewCascadeDeleter(
		categoryRepo, courseRepo, moduleRepo, lessonRepo, progressRepo, favoriteRepo,
		counter, logger,
	)

	categoryService := serviceCatalog.NewCategoryService(categoryRepo, courseRepo, deleter, counter, logger)
	courseService := serviceCatalog.NewCourseService(courseRepo, moduleRepo, validator, deleter, counter, logger)
	moduleService := serviceCatalog.NewModuleService(moduleRepo, lessonRepo, validator, deleter, counter, logger)
	lessonService := serviceCatalog.NewLessonService(lessonRepo, progressRepo, validator, deleter, counter, logger)
	regionService := serviceCatalog.NewRegionService(regionRepo, categoryRepo, courseRepo, logger)

	if err := seedCatalog(ctx, &fixture, categoryService, courseService, moduleService, lessonService, regionService); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}

type seedFixture struct {
	Categories []struct {
		Name        string `yaml:"name"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
		Color       string `yaml:"color"`
		Icon        string `yaml:"icon"`
		Order       int    `yaml:"order"`
	} `yaml:"categories"`
	Courses []struct {
		Title       string   `yaml:"title"`
		Slug        string   `yaml:"slug"`
		Description string   `yaml:"description"`
		Author      string   `yaml:"author"`
		Language    string   `yaml:"language"`
		Category    string   `yaml:"category"`
		Order       int      `yaml:"order"`
		CoverImages []string `yaml:"cover_images"`
		IsLocked    bool     `yaml:"is_locked"`
	} `yaml:"courses"`
	Modules []struct {
		Course      string `yaml:"course"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Order       int    `yaml:"order"`
	} `yaml:"modules"`
	Lessons []struct {
		Course           string `yaml:"course"`
		Module           string `yaml:"module"`
		Title            string `yaml:"title"`
		VideoURL         string `yaml:"video_url"`
		SupportContent   string `yaml:"support_content"`
		Order            int    `yaml:"order"`
		DripDelayMinutes int    `yaml:"drip_delay_minutes"`
	} `yaml:"lessons"`
	Regions []struct {
		Name                string   `yaml:"name"`
		Slug                string   `yaml:"slug"`
		Description         string   `yaml:"description"`
		IncludedCategories  []string `yaml:"included_categories"`
		ExcludedCourses     []string `yaml:"excluded_courses"`
		AvailableLanguages  []string `yaml:"available_languages"`
		PreferredUILanguage string   `yaml:"preferred_ui_language"`
	} `yaml:"regions"`
}

func seedCatalog(
	ctx context.Context,
	fixture *seedFixture,
	categoryService services.CategoryService,
	courseService services.CourseService,
	moduleService services.ModuleService,
	lessonService services.LessonService,
	regionService services.RegionService,
) error {
	categoryIDs := make(map[string]int64)
	for _, c := range fixture.Categories {
		created, err := categoryService.CreateCategory(ctx, &services.CreateCategoryRequest{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Color:       c.Color,
			Icon:        c.Icon,
			Order:       c.Order,
		})
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = created.ID
		log.Printf("  category %s (ID %d)", c.Slug, created.ID)
	}

	courseIDs := make(map[string]int64)
	for _, c := range fixture.Courses {
		req := &services.CreateCourseRequest{
			Title:       c.Title,
			Slug:        c.Slug,
			Description: c.Description,
			Author:      c.Author,
			Language:    c.Language,
			Order:       c.Order,
			CoverImages: c.CoverImages,
		}
		if c.Category != "" {
			id, ok := categoryIDs[c.Category]
			if !ok {
				return fmt.Errorf("course %q references unknown category %q", c.Slug, c.Category)
			}
			req.CategoryID = &id
		}
		if c.IsLocked {
			locked := true
			req.IsLocked = &locked
		}
		created, err := courseService.CreateCourse(ctx, req)
		if err != nil {
			return fmt.Errorf("course %q: %w", c.Slug, err)
		}
		courseIDs[c.Slug] = created.ID
		log.Printf("  course %s (ID %d)", c.Slug, created.ID)
	}

	// Modules are keyed by course slug + title for lesson resolution.
	moduleIDs := make(map[string]int64)
	for _, m := range fixture.Modules {
		courseID, ok := courseIDs[m.Course]
		if !ok {
			return fmt.Errorf("module %q references unknown course %q", m.Title, m.Course)
		}
		created, err := moduleService.CreateModule(ctx, &services.CreateModuleRequest{
			CourseID:    courseID,
			Title:       m.Title,
			Description: m.Description,
			Order:       m.Order,
		})
		if err != nil {
			return fmt.Errorf("module %q: %w", m.Title, err)
		}
		moduleIDs[m.Course+"/"+m.Title] = created.ID
		log.Printf("  module %s/%s (ID %d)", m.Course, m.Title, created.ID)
	}

	for _, l := range fixture.Lessons {
		moduleID, ok := moduleIDs[l.Course+"/"+l.Module]
		if !ok {
			return fmt.Errorf("lesson %q references unknown module %q in course %q", l.Title, l.Module, l.Course)
		}
		created, err := lessonService.CreateLesson(ctx, &services.CreateLessonRequest{
			ModuleID:         moduleID,
			Title:            l.Title,
			VideoURL:         l.VideoURL,
			SupportContent:   l.SupportContent,
			Order:            l.Order,
			DripDelayMinutes: l.DripDelayMinutes,
		})
		if err != nil {
			return fmt.Errorf("lesson %q: %w", l.Title, err)
		}
		log.Printf("  lesson %s (ID %d)", l.Title, created.ID)
	}

	for _, r := range fixture.Regions {
		req := &services.CreateRegionRequest{
			Name:                r.Name,
			Slug:                r.Slug,
			Description:         r.Description,
			AvailableLanguages:  r.AvailableLanguages,
			PreferredUILanguage: r.PreferredUILanguage,
		}
		for _, slug := range r.IncludedCategories {
			id, ok := categoryIDs[slug]
			if !ok {
				return fmt.Errorf("region %q references unknown category %q", r.Slug, slug)
			}
			req.IncludedCategoryIDs = append(req.IncludedCategoryIDs, id)
		}
		for _, slug := range r.ExcludedCourses {
			id, ok := courseIDs[slug]
			if !ok {
				return fmt.Errorf("region %q references unknown course %q", r.Slug, slug)
			}
			req.ExcludedCourseIDs = append(req.ExcludedCourseIDs, id)
		}
		created, err := regionService.CreateRegion(ctx, req)
		if err != nil {
			return fmt.Errorf("region %q: %w", r.Slug, err)
		}
		log.Printf("  region %s (ID %d)", r.Slug, created.ID)
	}

	return nil
}

// runSchema creates tables if they don't exist. The schema deliberately
// carries no foreign keys, no ON DELETE actions, and no unique constraints
// beyond the primary keys: referential integrity, uniqueness, and cascades
// are all enforced in the application layer, and the tables must not fight
// it with their own rules.
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Categories + ` (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			"order" INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Courses + ` (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT '',
			category_id BIGINT,
			"order" INTEGER NOT NULL DEFAULT 0,
			cover_images TEXT[] NOT NULL DEFAULT '{}',
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Modules + ` (
			id BIGSERIAL PRIMARY KEY,
			course_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			module_images TEXT[] NOT NULL DEFAULT '{}',
			"order" INTEGER NOT NULL DEFAULT 0,
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Lessons + ` (
			id BIGSERIAL PRIMARY KEY,
			module_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			video_url TEXT NOT NULL DEFAULT '',
			support_content TEXT NOT NULL DEFAULT '',
			"order" INTEGER NOT NULL DEFAULT 0,
			drip_delay_minutes INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.UserProgress + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			lesson_id BIGINT NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Favorites + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			item_type TEXT NOT NULL,
			item_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Regions + ` (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			included_category_ids BIGINT[] NOT NULL DEFAULT '{}',
			excluded_course_ids BIGINT[] NOT NULL DEFAULT '{}',
			available_languages TEXT[] NOT NULL DEFAULT '{}',
			preferred_ui_language TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	// Plain indexes only. The slug indexes are intentionally non-unique:
	// duplicate detection happens in the services so it can return a
	// structured conflict instead of a driver error.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `categories_slug ON ` + tables.Categories + `(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `courses_slug ON ` + tables.Courses + `(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `courses_category ON ` + tables.Courses + `(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `modules_course ON ` + tables.Modules + `(course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `lessons_module ON ` + tables.Lessons + `(module_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `user_progress_user ON ` + tables.UserProgress + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `user_progress_lesson ON ` + tables.UserProgress + `(lesson_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `favorites_user ON ` + tables.Favorites + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `favorites_item ON ` + tables.Favorites + `(item_type, item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `regions_slug ON ` + tables.Regions + `(slug)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Favorites,
		tables.UserProgress,
		tables.Lessons,
		tables.Modules,
		tables.Courses,
		tables.Categories,
		tables.Regions,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}

// clearCatalogData deletes all rows, children before parents
func clearCatalogData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Favorites,
		tables.UserProgress,
		tables.Lessons,
		tables.Modules,
		tables.Courses,
		tables.Categories,
		tables.Regions,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	return nil
}
