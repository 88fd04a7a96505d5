package handler

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	repos "eduweb/internal/domain/repositories/reporting"
	"eduweb/internal/httputil"
)

// HealthHandler reports liveness of the service and both databases.
type HealthHandler struct {
	pool          *pgxpool.Pool
	reportingRepo repos.RecordedSessionRepository
	logger        *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(pool *pgxpool.Pool, reportingRepo repos.RecordedSessionRepository, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		pool:          pool,
		reportingRepo: reportingRepo,
		logger:        logger,
	}
}

type healthResponse struct {
	Status            string `json:"status"`
	Database          string `json:"database"`
	ReportingDatabase string `json:"reporting_database"`
}

// Health checks connectivity to the catalog and reporting databases
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:            "ok",
		Database:          "up",
		ReportingDatabase: "up",
	}
	status := http.StatusOK

	if err := h.pool.Ping(r.Context()); err != nil {
		h.logger.Error("catalog database unreachable", "error", err)
		resp.Database = "down"
	}
	if err := h.reportingRepo.Ping(r.Context()); err != nil {
		h.logger.Error("reporting database unreachable", "error", err)
		resp.ReportingDatabase = "down"
	}
	if resp.Database == "down" || resp.ReportingDatabase == "down" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	httputil.RespondJSON(w, status, resp)
}
