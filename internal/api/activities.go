package api

import (
	"net/http"

	"studydesk/internal/metrics"
	"studydesk/internal/models"
	"studydesk/internal/parser"
)

// ParseRequest is the body of a free-text parse call.
type ParseRequest struct {
	Text string `json:"text"`
	// Save persists every fully-specified activity in the same call.
	Save bool `json:"save,omitempty"`
}

// ParseResponse carries the extracted activities. Saved reports how many were
// persisted when save was requested; activities lacking a day or times are
// returned but never stored.
type ParseResponse struct {
	Activities []models.Activity `json:"activities"`
	Saved      int               `json:"saved"`
}

// handleActivities lists and creates personal activities.
// GET|POST /api/activities
func (s *HTTPServer) handleActivities(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("activities")
	switch r.Method {
	case http.MethodGet:
		activities, err := s.db.ListActivities(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		if activities == nil {
			activities = []models.Activity{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"activities": activities})

	case http.MethodPost:
		var a models.Activity
		if err := decodeJSON(r, &a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if a.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		id, err := s.db.CreateActivity(r.Context(), &a)
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

// handleParseActivities turns free text into structured activities.
// POST /api/activities/parse
func (s *HTTPServer) handleParseActivities(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("activities_parse")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ParseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	activities := parser.ParseActivities(req.Text)
	metrics.AddActivitiesParsed(len(activities))

	resp := ParseResponse{Activities: activities}
	if req.Save {
		for i := range activities {
			if !activities[i].Complete() {
				continue
			}
			id, err := s.db.CreateActivity(r.Context(), &activities[i])
			if err != nil {
				s.storageError(w, err)
				return
			}
			resp.Activities[i].ID = id
			resp.Saved++
		}
	}
	if resp.Activities == nil {
		resp.Activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleActivityByID updates or deletes one activity.
// PUT|DELETE /api/activities/{id}
func (s *HTTPServer) handleActivityByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("activities")
	id, ok := pathID(r, "/api/activities/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var a models.Activity
		if err := decodeJSON(r, &a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		a.ID = id
		if err := s.db.UpdateActivity(r.Context(), &a); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		if err := s.db.DeleteActivity(r.Context(), id); err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
