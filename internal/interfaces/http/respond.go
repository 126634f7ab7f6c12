package http

import (
	"encoding/json"
	"net/http"
)

// collectionResponse is the envelope for every paginated listing.
type collectionResponse struct {
	Data       any `json:"data"`
	Pagination any `json:"pagination"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
