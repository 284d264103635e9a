package api

import (
	"net/http"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleAssignments lists and creates assignments.
// GET /api/assignments?status=pending  |  POST /api/assignments
func (s *HTTPServer) handleAssignments(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("assignments")
	switch r.Method {
	case http.MethodGet:
		assignments, err := s.db.ListAssignments(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			s.storageError(w, err)
			return
		}
		if assignments == nil {
			assignments = []models.Assignment{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"assignments": assignments})

	case http.MethodPost:
		var a models.Assignment
		if err := decodeJSON(r, &a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if a.CourseID <= 0 || a.Title == "" || a.DueDate.IsZero() {
			writeError(w, http.StatusBadRequest, "course_id, title and due_date are required")
			return
		}
		id, err := s.db.CreateAssignment(r.Context(), &a)
		if err != nil {
			s.storageError(w, err)
			return
		}
		a.ID = id
		writeJSON(w, http.StatusCreated, a)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAssignmentByID updates or deletes one assignment.
// PUT|DELETE /api/assignments/{id}
func (s *HTTPServer) handleAssignmentByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("assignments")
	id, ok := pathID(r, "/api/assignments/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var a models.Assignment
		if err := decodeJSON(r, &a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		a.ID = id
		if err := s.db.UpdateAssignment(r.Context(), &a); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		if err := s.db.DeleteAssignment(r.Context(), id); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
