package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/service"
)

// FriendHandler handles HTTP requests for friendships.
type FriendHandler struct {
	friends *service.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// FriendRequestPayload is the request body for sending a friend request.
type FriendRequestPayload struct {
	RequesterID string `json:"requesterId"`
	RecipientID string `json:"recipientId"`
}

// RespondPayload is the request body for answering a friend request.
type RespondPayload struct {
	Accept bool `json:"accept"`
}

// SendRequest handles POST /api/friends/request.
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var payload FriendRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	friendship, err := h.friends.SendRequest(r.Context(), payload.RequesterID, payload.RecipientID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, friendship)
}

// Respond handles POST /api/friends/{friendshipId}/respond.
func (h *FriendHandler) Respond(w http.ResponseWriter, r *http.Request) {
	friendshipID := chi.URLParam(r, "friendshipId")

	var payload RespondPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	friendship, err := h.friends.RespondToRequest(r.Context(), friendshipID, payload.Accept)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, friendship)
}

// GetFriends handles GET /api/friends/user/{userId}.
func (h *FriendHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	friends, err := h.friends.GetFriends(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if friends == nil {
		friends = []*models.User{}
	}
	respondJSON(w, http.StatusOK, friends)
}

// GetPendingRequests handles GET /api/friends/user/{userId}/pending.
func (h *FriendHandler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	requests, err := h.friends.GetPendingRequests(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.Friendship{}
	}
	respondJSON(w, http.StatusOK, requests)
}
