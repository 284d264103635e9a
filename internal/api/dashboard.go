package api

import (
	"net/http"
	"time"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// DashboardStats is the aggregate view backing the landing page.
type DashboardStats struct {
	Courses            int     `json:"courses"`
	PendingAssignments int     `json:"pending_assignments"`
	DueThisWeek        int     `json:"due_this_week"`
	PendingTasks       int     `json:"pending_tasks"`
	UpcomingExams      int     `json:"upcoming_exams"`
	Activities         int     `json:"activities"`
	HoursRecommended   float64 `json:"hours_recommended"`
	HoursAllocated     float64 `json:"hours_allocated"`
}

// handleDashboardStats aggregates counts across the workspace.
// GET /api/dashboard/stats
func (s *HTTPServer) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("dashboard_stats")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	var stats DashboardStats

	courses, err := s.db.ListCourses(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	stats.Courses = len(courses)

	assignments, err := s.db.ListAssignments(ctx, models.StatusPending)
	if err != nil {
		s.storageError(w, err)
		return
	}
	stats.PendingAssignments = len(assignments)
	weekAhead := time.Now().AddDate(0, 0, 7)
	for _, a := range assignments {
		if a.DueDate.Before(weekAhead) {
			stats.DueThisWeek++
		}
	}

	tasks, err := s.db.ListTasks(ctx, models.StatusPending)
	if err != nil {
		s.storageError(w, err)
		return
	}
	stats.PendingTasks = len(tasks)

	exams, err := s.db.ListExams(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	now := time.Now()
	for _, e := range exams {
		if e.ExamDate.After(now) {
			stats.UpcomingExams++
		}
	}

	activities, err := s.db.ListActivities(ctx)
	if err != nil {
		s.storageError(w, err)
		return
	}
	stats.Activities = len(activities)

	if snap, err := s.db.LatestSnapshot(ctx); err == nil {
		stats.HoursRecommended = snap.HoursRecommended
		stats.HoursAllocated = snap.HoursAllocated
	}

	writeJSON(w, http.StatusOK, stats)
}
