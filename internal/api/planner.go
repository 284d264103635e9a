package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"studydesk/internal/export"
	"studydesk/internal/metrics"
	"studydesk/internal/models"
	"studydesk/internal/planner"
)

// PlanResponse wraps a generated or stored weekly plan.
type PlanResponse struct {
	Token     string             `json:"token"`
	WeekStart string             `json:"week_start"`
	CreatedAt time.Time          `json:"created_at"`
	Plan      *models.WeeklyPlan `json:"plan"`
}

// handleGeneratePlan runs the allocator over current commitments and persists
// the result as a new snapshot.
// POST /api/planner/generate
func (s *HTTPServer) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("planner_generate")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.genLimit != nil && !s.genLimit.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many generation requests")
		return
	}

	ctx := r.Context()
	courses, err := s.db.ListCourses(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	classes, err := s.db.ListClassSessions(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	activities, err := s.db.ListActivities(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	assignments, err := s.db.ListAssignments(ctx, models.StatusPending)
	if err != nil {
		s.storageError(w, err)
		return
	}
	exams, err := s.db.ListExams(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}

	now := time.Now()
	reqs := planner.EstimateRequirements(courses, assignments, exams, now)
	plan := s.planner.Generate(classes, activities, reqs)

	snap, err := s.db.SaveSnapshot(ctx, weekStart(now), &plan)
	if err != nil {
		s.storageError(w, err)
		return
	}

	metrics.IncScheduleGenerated()
	metrics.AddStudyHours(plan.StudyHours.Allocated)
	s.dropCache(ctx, latestPlanCacheKey)

	s.logger.Info().
		Str("token", snap.Token).
		Float64("recommended", plan.StudyHours.Recommended).
		Float64("allocated", plan.StudyHours.Allocated).
		Msg("Generated weekly study plan")

	writeJSON(w, http.StatusOK, PlanResponse{
		Token:     snap.Token,
		WeekStart: snap.WeekStart.Format("2006-01-02"),
		CreatedAt: snap.CreatedAt,
		Plan:      &plan,
	})
}

// handleLatestPlan returns the most recent snapshot, reading through the
// optional redis cache.
// GET /api/planner/latest
func (s *HTTPServer) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("planner_latest")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	var resp PlanResponse
	if s.readCache(ctx, latestPlanCacheKey, &resp) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := s.latestPlanResponse(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	s.writeCache(ctx, latestPlanCacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

// handlePlanExport streams the latest plan as an xlsx workbook.
// GET /api/planner/export
func (s *HTTPServer) handlePlanExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("planner_export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp, err := s.latestPlanResponse(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}

	filename := fmt.Sprintf("study_plan_%s.xlsx", resp.WeekStart)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteWeeklyPlan(w, resp.Plan); err != nil {
		s.logger.Error().Err(err).Msg("Plan export failed")
	}
}

func (s *HTTPServer) latestPlanResponse(ctx context.Context) (PlanResponse, error) {
	snap, err := s.db.LatestSnapshot(ctx)
	if err != nil {
		return PlanResponse{}, err
	}
	var plan models.WeeklyPlan
	if err := json.Unmarshal([]byte(snap.PlanJSON), &plan); err != nil {
		return PlanResponse{}, fmt.Errorf("decode stored plan: %w", err)
	}
	return PlanResponse{
		Token:     snap.Token,
		WeekStart: snap.WeekStart.Format("2006-01-02"),
		CreatedAt: snap.CreatedAt,
		Plan:      &plan,
	}, nil
}

// weekStart returns the Sunday that starts the week containing t.
func weekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -int(t.Weekday()))
}
