package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"paisa/internal/domain/transaction"
	"paisa/internal/shared/middleware"
)

type TransactionHandler struct {
	txRepo transaction.Repository
}

func NewTransactionHandler(txRepo transaction.Repository) *TransactionHandler {
	return &TransactionHandler{txRepo: txRepo}
}

type CreateTransactionRequest struct {
	Label  string   `json:"label"`
	Amount *float64 `json:"amount"`
	Type   string   `json:"type"`
	Tags   []int64  `json:"tags"`
	Date   *string  `json:"date"`
}

// UpdateTransactionRequest is a partial update. An absent tags key leaves
// the tag set unchanged; an explicit empty array clears it.
type UpdateTransactionRequest struct {
	Label  *string  `json:"label"`
	Amount *float64 `json:"amount"`
	Tags   []int64  `json:"tags"`
	Date   *string  `json:"date"`
}

type TransactionResponse struct {
	ID     int64            `json:"id"`
	Label  string           `json:"label"`
	Amount float64          `json:"amount"`
	Type   transaction.Type `json:"type"`
	Tags   []int64          `json:"tags"`
	Date   time.Time        `json:"date"`
}

func toTransactionResponse(t *transaction.Transaction) TransactionResponse {
	tags := t.TagIDs
	if tags == nil {
		tags = []int64{}
	}
	return TransactionResponse{
		ID:     t.ID,
		Label:  t.Label,
		Amount: t.Amount,
		Type:   t.Type,
		Tags:   tags,
		Date:   t.Date,
	}
}

// projectTransaction renders only the requested public fields. An empty
// fields list means the full default shape.
func projectTransaction(t *transaction.Transaction, fields []string) any {
	if len(fields) == 0 {
		return toTransactionResponse(t)
	}

	full := toTransactionResponse(t)
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f {
		case "id":
			out["id"] = full.ID
		case "label":
			out["label"] = full.Label
		case "amount":
			out["amount"] = full.Amount
		case "type":
			out["type"] = full.Type
		case "tags":
			out["tags"] = full.Tags
		case "date":
			out["date"] = full.Date
		}
	}
	return out
}

// HandleTransactions routes collection requests based on method.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTransactions(w, r)
	case http.MethodPost:
		h.handleCreateTransaction(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleTransactionByID routes requests for a specific transaction.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetTransaction(w, r)
	case http.MethodPatch:
		h.handleUpdateTransaction(w, r)
	case http.MethodDelete:
		h.handleDeleteTransaction(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter, err := transaction.ParseFilter(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := transaction.ParseCursorPage(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.txRepo.List(r.Context(), identity.ID, filter, page)
	if err != nil {
		log.Printf("Error listing transactions for user %d: %v", identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	rows, info := transaction.ResolveCursorWindow(rows, page)

	data := make([]TransactionResponse, 0, len(rows))
	for _, t := range rows {
		data = append(data, toTransactionResponse(t))
	}

	respondJSON(w, http.StatusOK, collectionResponse{Data: data, Pagination: info})
}

func (h *TransactionHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusBadRequest, "amount is required")
		return
	}

	typ, err := transaction.ParseType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := transaction.CreateParams{
		Label:  req.Label,
		Amount: *req.Amount,
		Type:   typ,
		TagIDs: req.Tags,
	}
	if req.Date != nil {
		d, err := transaction.ParseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		params.Date = &d
	}

	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	params.Normalize()

	t, err := h.txRepo.Create(r.Context(), identity.ID, params)
	if err != nil {
		if errors.Is(err, transaction.ErrUnknownTag) {
			respondError(w, http.StatusBadRequest, "One or more tags do not exist")
			return
		}
		log.Printf("Error creating transaction for user %d: %v", identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (h *TransactionHandler) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	t, err := h.txRepo.GetByID(r.Context(), identity.ID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		log.Printf("Error getting transaction %d for user %d: %v", id, identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (h *TransactionHandler) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := transaction.UpdateParams{
		Label:  req.Label,
		Amount: req.Amount,
		TagIDs: req.Tags,
	}
	if req.Date != nil {
		d, err := transaction.ParseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		params.Date = &d
	}

	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	params.Normalize()

	t, err := h.txRepo.Update(r.Context(), identity.ID, id, params)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			respondError(w, http.StatusNotFound, "Transaction not found")
		case errors.Is(err, transaction.ErrUnknownTag):
			respondError(w, http.StatusBadRequest, "One or more tags do not exist")
		default:
			log.Printf("Error updating transaction %d for user %d: %v", id, identity.ID, err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (h *TransactionHandler) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	if err := h.txRepo.SoftDelete(r.Context(), identity.ID, id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		log.Printf("Error deleting transaction %d for user %d: %v", id, identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

// HandleSearch serves the page-numbered compound search.
func (h *TransactionHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query, err := transaction.ParseSearchQuery(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := transaction.ParsePage(r.URL.Query())

	rows, err := h.txRepo.Search(r.Context(), identity.ID, query, page)
	if err != nil {
		log.Printf("Error searching transactions for user %d: %v", identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	rows, info := transaction.ResolvePageWindow(rows, page)

	data := make([]any, 0, len(rows))
	for _, t := range rows {
		data = append(data, projectTransaction(t, query.Select))
	}

	respondJSON(w, http.StatusOK, collectionResponse{Data: data, Pagination: info})
}
