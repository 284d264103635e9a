package api

import (
	"net/http"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleClassSchedule lists and creates fixed weekly class sessions.
// GET|POST /api/class-schedule
func (s *HTTPServer) handleClassSchedule(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("class_schedule")
	switch r.Method {
	case http.MethodGet:
		sessions, err := s.db.ListClassSessions(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		if sessions == nil {
			sessions = []models.ClassSession{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"schedule": sessions})

	case http.MethodPost:
		var session models.ClassSession
		if err := decodeJSON(r, &session); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if session.CourseID <= 0 {
			writeError(w, http.StatusBadRequest, "course_id is required")
			return
		}
		if session.DayOfWeek < 0 || session.DayOfWeek > 6 {
			writeError(w, http.StatusBadRequest, "day_of_week must be 0-6")
			return
		}
		id, err := s.db.CreateClassSession(r.Context(), &session)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		session.ID = id
		writeJSON(w, http.StatusCreated, session)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleClassScheduleByID deletes one class session.
// DELETE /api/class-schedule/{id}
func (s *HTTPServer) handleClassScheduleByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("class_schedule")
	id, ok := pathID(r, "/api/class-schedule/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.db.DeleteClassSession(r.Context(), id); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
