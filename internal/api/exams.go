package api

import (
	"net/http"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleExams lists and creates exams.
// GET|POST /api/exams
func (s *HTTPServer) handleExams(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("exams")
	switch r.Method {
	case http.MethodGet:
		exams, err := s.db.ListExams(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		if exams == nil {
			exams = []models.Exam{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"exams": exams})

	case http.MethodPost:
		var e models.Exam
		if err := decodeJSON(r, &e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if e.CourseID <= 0 || e.Title == "" || e.ExamDate.IsZero() {
			writeError(w, http.StatusBadRequest, "course_id, title and exam_date are required")
			return
		}
		id, err := s.db.CreateExam(r.Context(), &e)
		if err != nil {
			s.storageError(w, err)
			return
		}
		e.ID = id
		writeJSON(w, http.StatusCreated, e)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleExamByID deletes one exam.
// DELETE /api/exams/{id}
func (s *HTTPServer) handleExamByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("exams")
	id, ok := pathID(r, "/api/exams/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exam id")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.db.DeleteExam(r.Context(), id); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
