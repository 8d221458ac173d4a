package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/service"
)

// GroupHandler handles HTTP requests for the group registry.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// GroupPayload is the request body for group creation and update.
// A null or omitted memberIds on update leaves membership untouched; a
// present list (including an empty one) fully replaces it.
type GroupPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload GroupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), payload.Name, payload.Description, payload.MemberIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// GetByUser handles GET /api/groups/user/{userId}.
func (h *GroupHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	groups, err := h.groups.GetGroupsByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupList(groups))
}

// Search handles GET /api/groups/search?name=.
func (h *GroupHandler) Search(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.SearchGroups(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupList(groups))
}

// Update handles PUT /api/groups/{id}.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	var payload GroupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	group, err := h.groups.UpdateGroup(r.Context(), groupID, payload.Name, payload.Description, payload.MemberIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /api/groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.groups.DeleteGroup(r.Context(), groupID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// AddMember handles POST /api/groups/{groupId}/members/{userId}.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	userID := chi.URLParam(r, "userId")
	if err := h.groups.AddMember(r.Context(), groupID, userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RemoveMember handles DELETE /api/groups/{groupId}/members/{userId}.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	userID := chi.URLParam(r, "userId")
	if err := h.groups.RemoveMember(r.Context(), groupID, userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func groupList(groups []*models.Group) []*models.Group {
	if groups == nil {
		return []*models.Group{}
	}
	return groups
}
