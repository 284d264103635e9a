package api

import (
	"net/http"

	"studydesk/internal/metrics"
)

// handleSettings reads and writes user preferences.
// GET /api/settings  |  PUT /api/settings {"key": "value", ...}
func (s *HTTPServer) handleSettings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("settings")
	switch r.Method {
	case http.MethodGet:
		settings, err := s.db.AllSettings(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var updates map[string]string
		if err := decodeJSON(r, &updates); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(updates) == 0 {
			writeError(w, http.StatusBadRequest, "no settings provided")
			return
		}
		for key, value := range updates {
			if err := s.db.SetSetting(r.Context(), key, value); err != nil {
				s.storageError(w, err)
				return
			}
		}
		settings, err := s.db.AllSettings(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
