package api

import (
	"fmt"
	"net/http"
	"time"

	"studydesk/internal/export"
	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleGrades lists and creates grades.
// GET|POST /api/grades
func (s *HTTPServer) handleGrades(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("grades")
	switch r.Method {
	case http.MethodGet:
		grades, err := s.db.ListGrades(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		if grades == nil {
			grades = []models.Grade{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"grades": grades})

	case http.MethodPost:
		var g models.Grade
		if err := decodeJSON(r, &g); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if g.CourseID <= 0 || g.AssignmentName == "" || g.MaxGrade <= 0 {
			writeError(w, http.StatusBadRequest, "course_id, assignment_name and a positive max_grade are required")
			return
		}
		id, err := s.db.CreateGrade(r.Context(), &g)
		if err != nil {
			s.storageError(w, err)
			return
		}
		g.ID = id
		writeJSON(w, http.StatusCreated, g)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleGradeSummary returns per-course weighted standings.
// GET /api/grades/summary
func (s *HTTPServer) handleGradeSummary(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("grades_summary")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	summaries, err := s.db.SummarizeGrades(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summaries})
}

// handleGradeExport streams an xlsx grade report.
// GET /api/grades/export
func (s *HTTPServer) handleGradeExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("grades_export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	grades, err := s.db.ListGrades(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	summaries, err := s.db.SummarizeGrades(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}

	filename := fmt.Sprintf("grades_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteGradeReport(w, grades, summaries); err != nil {
		s.logger.Error().Err(err).Msg("Grade export failed")
	}
}

// handleGradeByID deletes one grade.
// DELETE /api/grades/{id}
func (s *HTTPServer) handleGradeByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("grades")
	id, ok := pathID(r, "/api/grades/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid grade id")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.db.DeleteGrade(r.Context(), id); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
