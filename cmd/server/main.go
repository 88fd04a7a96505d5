package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"eduweb/internal/auth"
	"eduweb/internal/config"
	"eduweb/internal/handler"
	"eduweb/internal/middleware"
	"eduweb/internal/repository/mysql"
	"eduweb/internal/repository/postgres"
	serviceCatalog "eduweb/internal/service/catalog"
	serviceReporting "eduweb/internal/service/reporting"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool for the catalog database
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("catalog database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Connect to the external reporting database (recorded sessions)
	reportingDB, err := mysql.Open(cfg.ReportingDSN)
	if err != nil {
		log.Fatalf("Failed to open reporting database: %v", err)
	}
	defer reportingDB.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

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
	sessionRepo := mysql.NewRecordedSessionRepository(reportingDB, logger)

	// Integrity engine: the store has no FK constraints or cascades, so
	// reference checks, dependency counting, and cascading deletes all run
	// here in the application layer.
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

	// Create services
	categoryService := serviceCatalog.NewCategoryService(categoryRepo, courseRepo, deleter, counter, logger)
	courseService := serviceCatalog.NewCourseService(courseRepo, moduleRepo, validator, deleter, counter, logger)
	moduleService := serviceCatalog.NewModuleService(moduleRepo, lessonRepo, validator, deleter, counter, logger)
	lessonService := serviceCatalog.NewLessonService(lessonRepo, progressRepo, validator, deleter, counter, logger)
	progressService := serviceCatalog.NewProgressService(progressRepo, lessonRepo, validator, logger)
	favoriteService := serviceCatalog.NewFavoriteService(favoriteRepo, validator, logger)
	regionService := serviceCatalog.NewRegionService(regionRepo, categoryRepo, courseRepo, logger)
	sessionService := serviceReporting.NewRecordedSessionService(sessionRepo, logger)

	// Create handlers
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	courseHandler := handler.NewCourseHandler(courseService, logger)
	moduleHandler := handler.NewModuleHandler(moduleService, logger)
	lessonHandler := handler.NewLessonHandler(lessonService, logger)
	progressHandler := handler.NewProgressHandler(progressService, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, logger)
	regionHandler := handler.NewRegionHandler(regionService, logger)
	recordedHandler := handler.NewRecordedCourseHandler(sessionService, logger)
	healthHandler := handler.NewHealthHandler(pool, sessionRepo, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Category routes
	mux.HandleFunc("GET /api/categories", categoryHandler.ListCategories)
	mux.HandleFunc("POST /api/categories", categoryHandler.CreateCategory)
	mux.HandleFunc("GET /api/categories/{id}", categoryHandler.GetCategory)
	mux.HandleFunc("PUT /api/categories/{id}", categoryHandler.UpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.DeleteCategory)
	mux.HandleFunc("GET /api/categories/{id}/dependents", categoryHandler.GetDependents)
	mux.HandleFunc("GET /api/categories/{id}/courses", categoryHandler.ListCourses)

	// Course routes
	mux.HandleFunc("GET /api/courses", courseHandler.ListCourses)
	mux.HandleFunc("POST /api/courses", courseHandler.CreateCourse)
	mux.HandleFunc("GET /api/courses/{id}", courseHandler.GetCourse)
	mux.HandleFunc("PUT /api/courses/{id}", courseHandler.UpdateCourse)
	mux.HandleFunc("DELETE /api/courses/{id}", courseHandler.DeleteCourse)
	mux.HandleFunc("GET /api/courses/{id}/dependents", courseHandler.GetDependents)
	mux.HandleFunc("GET /api/courses/{id}/modules", courseHandler.ListModules)

	// Module routes
	mux.HandleFunc("GET /api/modules", moduleHandler.ListModules)
	mux.HandleFunc("POST /api/modules", moduleHandler.CreateModule)
	mux.HandleFunc("GET /api/modules/{id}", moduleHandler.GetModule)
	mux.HandleFunc("PUT /api/modules/{id}", moduleHandler.UpdateModule)
	mux.HandleFunc("DELETE /api/modules/{id}", moduleHandler.DeleteModule)
	mux.HandleFunc("GET /api/modules/{id}/dependents", moduleHandler.GetDependents)
	mux.HandleFunc("GET /api/modules/{id}/lessons", moduleHandler.ListLessons)

	// Lesson routes
	mux.HandleFunc("GET /api/lessons", lessonHandler.ListLessons)
	mux.HandleFunc("POST /api/lessons", lessonHandler.CreateLesson)
	mux.HandleFunc("GET /api/lessons/{id}", lessonHandler.GetLesson)
	mux.HandleFunc("PUT /api/lessons/{id}", lessonHandler.UpdateLesson)
	mux.HandleFunc("DELETE /api/lessons/{id}", lessonHandler.DeleteLesson)
	mux.HandleFunc("GET /api/lessons/{id}/dependents", lessonHandler.GetDependents)
	mux.HandleFunc("GET /api/lessons/{id}/progress", lessonHandler.ListProgress)

	// User progress routes
	mux.HandleFunc("GET /api/user-progress", progressHandler.ListProgress)
	mux.HandleFunc("POST /api/user-progress", progressHandler.CreateProgress)
	mux.HandleFunc("POST /api/user-progress/complete", progressHandler.Complete)
	mux.HandleFunc("GET /api/user-progress/user/{user_id}/stats", progressHandler.Stats)
	mux.HandleFunc("GET /api/user-progress/{id}", progressHandler.GetProgress)
	mux.HandleFunc("PUT /api/user-progress/{id}", progressHandler.UpdateProgress)
	mux.HandleFunc("DELETE /api/user-progress/{id}", progressHandler.DeleteProgress)

	// Favorite routes
	mux.HandleFunc("GET /api/favorites", favoriteHandler.ListFavorites)
	mux.HandleFunc("POST /api/favorites", favoriteHandler.CreateFavorite)
	mux.HandleFunc("GET /api/favorites/user/{user_id}", favoriteHandler.ListForUser)
	mux.HandleFunc("DELETE /api/favorites/user/{user_id}/item/{item_type}/{item_id}", favoriteHandler.DeleteByUserItem)
	mux.HandleFunc("GET /api/favorites/{id}", favoriteHandler.GetFavorite)
	mux.HandleFunc("DELETE /api/favorites/{id}", favoriteHandler.DeleteFavorite)

	// Region routes
	mux.HandleFunc("GET /api/regions", regionHandler.ListRegions)
	mux.HandleFunc("POST /api/regions", regionHandler.CreateRegion)
	mux.HandleFunc("GET /api/regions/{id}", regionHandler.GetRegion)
	mux.HandleFunc("PUT /api/regions/{id}", regionHandler.UpdateRegion)
	mux.HandleFunc("DELETE /api/regions/{id}", regionHandler.DeleteRegion)

	// Recorded course routes (reporting database)
	mux.HandleFunc("GET /api/recorded-courses", recordedHandler.ListSessions)
	mux.HandleFunc("GET /api/recorded-courses/{id}", recordedHandler.GetSession)
	mux.HandleFunc("PUT /api/recorded-courses/{id}", recordedHandler.UpdateSession)
	mux.HandleFunc("DELETE /api/recorded-courses/{id}", recordedHandler.DeleteSession)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
