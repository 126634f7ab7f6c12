package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"paisa/internal/domain/report"
	"paisa/internal/shared/middleware"
)

type ReportHandler struct {
	reportRepo report.Repository
}

func NewReportHandler(reportRepo report.Repository) *ReportHandler {
	return &ReportHandler{reportRepo: reportRepo}
}

type CreateReportRequest struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Messages    []report.Message `json:"messages"`
}

type ReportResponse struct {
	ID          int64             `json:"id"`
	Type        report.ReportType `json:"type"`
	Description string            `json:"description"`
	Messages    []report.Message  `json:"messages"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// HandleReports accepts user reports. The collection is write-only through
// the API; there is no read endpoint.
func (h *ReportHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	typ, err := report.ParseReportType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := report.CreateReportParams{
		Type:        typ,
		Description: req.Description,
		Messages:    req.Messages,
	}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.reportRepo.Create(r.Context(), identity.ID, params)
	if err != nil {
		log.Printf("Error creating report for user %d: %v", identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	messages := rep.Messages
	if messages == nil {
		messages = []report.Message{}
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data": ReportResponse{
			ID:          rep.ID,
			Type:        rep.Type,
			Description: rep.Description,
			Messages:    messages,
			CreatedAt:   rep.CreatedAt,
		},
	})
}
