package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"studydesk/internal/database"
	"studydesk/internal/planner"
)

// HTTPServer serves the JSON API over a plain ServeMux. Method dispatch
// happens inside each handler.
type HTTPServer struct {
	db       *database.DB
	planner  *planner.Planner
	logger   *zerolog.Logger
	redis    *redis.Client
	cacheTTL time.Duration
	genLimit *rate.Limiter
}

// Option configures optional server dependencies.
type Option func(*HTTPServer)

// WithRedisCache enables read-through caching of the latest generated plan.
func WithRedisCache(client *redis.Client, ttl time.Duration) Option {
	return func(s *HTTPServer) {
		s.redis = client
		s.cacheTTL = ttl
	}
}

// WithGenerateLimit rate-limits plan generation.
func WithGenerateLimit(perSec float64, burst int) Option {
	return func(s *HTTPServer) {
		s.genLimit = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

func NewHTTPServer(db *database.DB, pl *planner.Planner, logger *zerolog.Logger, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		db:      db,
		planner: pl,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the full API mux.
func (s *HTTPServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/courses", s.handleCourses)
	mux.HandleFunc("/api/courses/", s.handleCourseByID)
	mux.HandleFunc("/api/class-schedule", s.handleClassSchedule)
	mux.HandleFunc("/api/class-schedule/", s.handleClassScheduleByID)
	mux.HandleFunc("/api/assignments", s.handleAssignments)
	mux.HandleFunc("/api/assignments/", s.handleAssignmentByID)
	mux.HandleFunc("/api/grades", s.handleGrades)
	mux.HandleFunc("/api/grades/summary", s.handleGradeSummary)
	mux.HandleFunc("/api/grades/export", s.handleGradeExport)
	mux.HandleFunc("/api/grades/", s.handleGradeByID)
	mux.HandleFunc("/api/tasks", s.handleTasks)
	mux.HandleFunc("/api/tasks/", s.handleTaskByID)
	mux.HandleFunc("/api/notes", s.handleNotes)
	mux.HandleFunc("/api/notes/", s.handleNoteByID)
	mux.HandleFunc("/api/exams", s.handleExams)
	mux.HandleFunc("/api/exams/", s.handleExamByID)
	mux.HandleFunc("/api/activities", s.handleActivities)
	mux.HandleFunc("/api/activities/parse", s.handleParseActivities)
	mux.HandleFunc("/api/activities/", s.handleActivityByID)
	mux.HandleFunc("/api/planner/generate", s.handleGeneratePlan)
	mux.HandleFunc("/api/planner/latest", s.handleLatestPlan)
	mux.HandleFunc("/api/planner/export", s.handlePlanExport)
	mux.HandleFunc("/api/dashboard/stats", s.handleDashboardStats)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// pathID extracts the numeric id after prefix, e.g. /api/courses/42.
func pathID(r *http.Request, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// storageError maps database errors to HTTP responses.
func (s *HTTPServer) storageError(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrIncompleteActivity):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("Storage operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
