package api

import (
	"net/http"
	"strconv"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleNotes lists and creates notes.
// GET /api/notes?course_id=1  |  POST /api/notes
func (s *HTTPServer) handleNotes(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("notes")
	switch r.Method {
	case http.MethodGet:
		var courseID int64
		if raw := r.URL.Query().Get("course_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid course_id")
				return
			}
			courseID = id
		}
		notes, err := s.db.ListNotes(r.Context(), courseID)
		if err != nil {
			s.storageError(w, err)
			return
		}
		if notes == nil {
			notes = []models.Note{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"notes": notes})

	case http.MethodPost:
		var n models.Note
		if err := decodeJSON(r, &n); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if n.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		id, err := s.db.CreateNote(r.Context(), &n)
		if err != nil {
			s.storageError(w, err)
			return
		}
		n.ID = id
		writeJSON(w, http.StatusCreated, n)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleNoteByID updates or deletes one note.
// PUT|DELETE /api/notes/{id}
func (s *HTTPServer) handleNoteByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("notes")
	id, ok := pathID(r, "/api/notes/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var n models.Note
		if err := decodeJSON(r, &n); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		n.ID = id
		if err := s.db.UpdateNote(r.Context(), &n); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, n)

	case http.MethodDelete:
		if err := s.db.DeleteNote(r.Context(), id); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
