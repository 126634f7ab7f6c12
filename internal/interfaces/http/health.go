package http

import "net/http"

// HandleHealth is the unauthenticated liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
