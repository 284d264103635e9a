package api

import (
	"net/http"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
)

// handleTasks lists and creates standalone to-do items.
// GET /api/tasks?status=pending  |  POST /api/tasks
func (s *HTTPServer) handleTasks(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("tasks")
	switch r.Method {
	case http.MethodGet:
		tasks, err := s.db.ListTasks(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			s.storageError(w, err)
			return
		}
		if tasks == nil {
			tasks = []models.Task{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})

	case http.MethodPost:
		var t models.Task
		if err := decodeJSON(r, &t); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if t.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		id, err := s.db.CreateTask(r.Context(), &t)
		if err != nil {
			s.storageError(w, err)
			return
		}
		t.ID = id
		writeJSON(w, http.StatusCreated, t)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleTaskByID updates or deletes one task.
// PUT|DELETE /api/tasks/{id}
func (s *HTTPServer) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("tasks")
	id, ok := pathID(r, "/api/tasks/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var t models.Task
		if err := decodeJSON(r, &t); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		t.ID = id
		if err := s.db.UpdateTask(r.Context(), &t); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodDelete:
		if err := s.db.DeleteTask(r.Context(), id); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
