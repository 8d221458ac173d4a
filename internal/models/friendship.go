package models

// FriendshipStatus is the state of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
	FriendshipRejected FriendshipStatus = "REJECTED"
)

// Friendship links two users. At most one record exists per user pair,
// regardless of direction.
type Friendship struct {
	// ID is the unique identifier for the friendship (UUID format).
	ID string `json:"id"`

	// RequesterID is the user who sent the request.
	RequesterID string `json:"requesterId"`

	// RecipientID is the user who received it.
	RecipientID string `json:"recipientId"`

	// Status starts PENDING and moves to ACCEPTED or REJECTED.
	Status FriendshipStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the request was sent.
	CreatedAt int64 `json:"createdAt"`
}
