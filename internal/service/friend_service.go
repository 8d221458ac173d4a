package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/storage"
)

// Friendship validation failures. The API layer maps these to 400-class
// responses.
var (
	ErrSelfFriendship   = errors.New("cannot send a friend request to yourself")
	ErrFriendshipExists = errors.New("a friendship already exists between these users")
	ErrAlreadyResponded = errors.New("friend request has already been responded to")
)

// FriendService manages friend requests and accepted friendships.
type FriendService struct {
	store storage.Store
}

// NewFriendService creates a new FriendService with the given storage
// backend.
func NewFriendService(store storage.Store) *FriendService {
	return &FriendService{store: store}
}

// SendRequest creates a PENDING friendship from requester to recipient.
// At most one friendship record exists per user pair, in either direction.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, recipientID string) (*models.Friendship, error) {
	if _, err := s.store.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, recipientID); err != nil {
		return nil, err
	}
	if requesterID == recipientID {
		return nil, ErrSelfFriendship
	}

	existing, err := s.store.GetFriendshipBetween(ctx, requesterID, recipientID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("SendRequest failed to check existing friendship", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w (status %s)", ErrFriendshipExists, existing.Status)
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		RecipientID: recipientID,
	}
	if err := s.store.CreateFriendship(ctx, friendship); err != nil {
		slog.Error("SendRequest failed", "error", err)
		return nil, err
	}

	slog.Info("Friend request sent",
		"friendship_id", friendship.ID,
		"requester_id", requesterID,
		"recipient_id", recipientID,
	)
	return friendship, nil
}

// RespondToRequest accepts or rejects a PENDING friend request.
func (s *FriendService) RespondToRequest(ctx context.Context, friendshipID string, accept bool) (*models.Friendship, error) {
	friendship, err := s.store.GetFriendship(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if friendship.Status != models.FriendshipPending {
		return nil, fmt.Errorf("%w (status %s)", ErrAlreadyResponded, friendship.Status)
	}

	status := models.FriendshipRejected
	if accept {
		status = models.FriendshipAccepted
	}
	if err := s.store.UpdateFriendshipStatus(ctx, friendshipID, status); err != nil {
		slog.Error("RespondToRequest failed", "friendship_id", friendshipID, "error", err)
		return nil, err
	}
	friendship.Status = status

	slog.Info("Friend request responded", "friendship_id", friendshipID, "status", status)
	return friendship, nil
}

// GetFriends returns the users linked to the given user by an ACCEPTED
// friendship.
func (s *FriendService) GetFriends(ctx context.Context, userID string) ([]*models.User, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetFriendsOfUser(ctx, userID)
}

// GetPendingRequests returns PENDING requests addressed to the user.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID string) ([]*models.Friendship, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetPendingFriendRequests(ctx, userID)
}
