package api

import (
	"net/http"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleCourses lists and creates courses.
// GET|POST /api/courses
func (s *HTTPServer) handleCourses(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("courses")
	switch r.Method {
	case http.MethodGet:
		courses, err := s.db.ListCourses(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		if courses == nil {
			courses = []models.Course{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"courses": courses})

	case http.MethodPost:
		var course models.Course
		if err := decodeJSON(r, &course); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if course.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		id, err := s.db.CreateCourse(r.Context(), &course)
		if err != nil {
			s.storageError(w, err)
			return
		}
		course.ID = id
		writeJSON(w, http.StatusCreated, course)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCourseByID fetches, updates, or deletes one course.
// GET|PUT|DELETE /api/courses/{id}
func (s *HTTPServer) handleCourseByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("courses")
	id, ok := pathID(r, "/api/courses/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		course, err := s.db.GetCourse(r.Context(), id)
		if err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, course)

	case http.MethodPut:
		var course models.Course
		if err := decodeJSON(r, &course); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		course.ID = id
		if err := s.db.UpdateCourse(r.Context(), &course); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, course)

	case http.MethodDelete:
		if err := s.db.DeleteCourse(r.Context(), id); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
