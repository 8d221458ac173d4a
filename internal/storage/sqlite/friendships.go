package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/storage"
)

// CreateFriendship persists a new PENDING friendship request.
func (s *SQLiteStore) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	if friendship.ID == "" {
		friendship.ID = uuid.New().String()
	}
	if friendship.CreatedAt == 0 {
		friendship.CreatedAt = time.Now().Unix()
	}
	friendship.Status = models.FriendshipPending

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO friendships (id, requester_id, recipient_id, status, created_at) VALUES (?, ?, ?, ?, ?)",
		friendship.ID, friendship.RequesterID, friendship.RecipientID,
		friendship.Status, friendship.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert friendship: %w", err)
	}
	return nil
}

// GetFriendship retrieves a friendship by ID.
func (s *SQLiteStore) GetFriendship(ctx context.Context, friendshipID string) (*models.Friendship, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, requester_id, recipient_id, status, created_at FROM friendships WHERE id = ?",
		friendshipID,
	)
	friendship, err := scanFriendship(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("friendship %s: %w", friendshipID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	return friendship, nil
}

// GetFriendshipBetween retrieves the friendship linking two users in either
// direction.
func (s *SQLiteStore) GetFriendshipBetween(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, requester_id, recipient_id, status, created_at
		 FROM friendships
		 WHERE (requester_id = ? AND recipient_id = ?)
		    OR (requester_id = ? AND recipient_id = ?)`,
		userA, userB, userB, userA,
	)
	friendship, err := scanFriendship(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("friendship between %s and %s: %w", userA, userB, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	return friendship, nil
}

// UpdateFriendshipStatus sets the status of an existing friendship.
func (s *SQLiteStore) UpdateFriendshipStatus(ctx context.Context, friendshipID string, status models.FriendshipStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE friendships SET status = ? WHERE id = ?",
		status, friendshipID,
	)
	if err != nil {
		return fmt.Errorf("failed to update friendship: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("friendship %s: %w", friendshipID, storage.ErrNotFound)
	}
	return nil
}

// GetFriendsOfUser returns users linked by an ACCEPTED friendship, in either
// direction.
func (s *SQLiteStore) GetFriendsOfUser(ctx context.Context, userID string) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+prefixedUserColumns("u")+`
		 FROM users u
		 JOIN friendships f ON (f.requester_id = u.id AND f.recipient_id = ?)
		                    OR (f.recipient_id = u.id AND f.requester_id = ?)
		 WHERE f.status = ?`,
		userID, userID, models.FriendshipAccepted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetPendingFriendRequests returns PENDING friendships addressed to the user.
func (s *SQLiteStore) GetPendingFriendRequests(ctx context.Context, userID string) ([]*models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, requester_id, recipient_id, status, created_at FROM friendships WHERE recipient_id = ? AND status = ?",
		userID, models.FriendshipPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}
	defer rows.Close()

	var friendships []*models.Friendship
	for rows.Next() {
		friendship, err := scanFriendship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		friendships = append(friendships, friendship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friendships: %w", err)
	}
	return friendships, nil
}

func scanFriendship(row scanner) (*models.Friendship, error) {
	friendship := &models.Friendship{}
	err := row.Scan(&friendship.ID, &friendship.RequesterID, &friendship.RecipientID,
		&friendship.Status, &friendship.CreatedAt)
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

func prefixedUserColumns(alias string) string {
	return alias + ".id, " + alias + ".username, " + alias + ".password, " + alias + ".email, " +
		alias + ".first_name, " + alias + ".last_name, " + alias + ".profile_picture, " + alias + ".created_at"
}
