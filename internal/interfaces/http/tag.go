package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"paisa/internal/domain/tag"
	"paisa/internal/shared/middleware"
)

type TagHandler struct {
	tagRepo tag.Repository
}

func NewTagHandler(tagRepo tag.Repository) *TagHandler {
	return &TagHandler{tagRepo: tagRepo}
}

type CreateTagRequest struct {
	Label string `json:"label"`
}

type UpdateTagRequest struct {
	Label string `json:"label"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

func toTagResponse(t *tag.Tag) TagResponse {
	return TagResponse{ID: t.ID, Label: t.Label}
}

// HandleTags routes collection requests based on method.
func (h *TagHandler) HandleTags(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTags(w, r)
	case http.MethodPost:
		h.handleCreateTag(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleTagByID routes requests for a specific tag.
func (h *TagHandler) HandleTagByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPatch:
		h.handleUpdateTag(w, r)
	case http.MethodDelete:
		h.handleDeleteTag(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TagHandler) handleListTags(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tags, err := h.tagRepo.ListByOwner(r.Context(), identity.ID)
	if err != nil {
		log.Printf("Error listing tags for user %d: %v", identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		response = append(response, toTagResponse(t))
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *TagHandler) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := tag.CreateTagParams{Label: req.Label}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.tagRepo.Create(r.Context(), identity.ID, params)
	if err != nil {
		log.Printf("Error creating tag for user %d: %v", identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, toTagResponse(t))
}

func (h *TagHandler) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tagID, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tag id")
		return
	}

	var req UpdateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := tag.UpdateTagParams{Label: req.Label}
	if err := params.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.tagRepo.Update(r.Context(), identity.ID, tagID, params)
	if err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			respondError(w, http.StatusNotFound, "Tag not found")
			return
		}
		log.Printf("Error updating tag %d for user %d: %v", tagID, identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, toTagResponse(t))
}

func (h *TagHandler) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tagID, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tag id")
		return
	}

	if err := h.tagRepo.SoftDelete(r.Context(), identity.ID, tagID); err != nil {
		if errors.Is(err, tag.ErrTagNotFound) {
			respondError(w, http.StatusNotFound, "Tag not found")
			return
		}
		log.Printf("Error deleting tag %d for user %d: %v", tagID, identity.ID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Tag deleted"})
}

// pathID extracts the numeric id path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
