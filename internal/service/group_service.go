package service

import (
	"context"
	"log/slog"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/storage"
)

// GroupService owns group records and group-membership sets.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup resolves the member IDs in one batch and persists the group.
// IDs that do not resolve are silently dropped, matching batch-find
// semantics; no per-ID failure is raised.
func (s *GroupService) CreateGroup(ctx context.Context, name, description string, memberIDs []string) (*models.Group, error) {
	members, err := s.store.GetUsersByIDs(ctx, memberIDs)
	if err != nil {
		slog.Error("CreateGroup failed to resolve members", "error", err)
		return nil, err
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		MemberIDs:   userIDs(members),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.MemberIDs))
	return group, nil
}

// GetGroupsByUser returns every group whose member set contains the user.
func (s *GroupService) GetGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetGroupsByMember(ctx, userID)
}

// SearchGroups returns groups whose name contains the pattern,
// case-insensitively. Unordered.
func (s *GroupService) SearchGroups(ctx context.Context, namePattern string) ([]*models.Group, error) {
	return s.store.SearchGroups(ctx, namePattern)
}

// UpdateGroup overwrites name and description unconditionally. A non-nil
// memberIDs fully replaces the membership set; nil leaves it untouched.
func (s *GroupService) UpdateGroup(ctx context.Context, groupID, name, description string, memberIDs []string) (*models.Group, error) {
	group := &models.Group{
		ID:          groupID,
		Name:        name,
		Description: description,
	}

	replaceMembers := memberIDs != nil
	if replaceMembers {
		members, err := s.store.GetUsersByIDs(ctx, memberIDs)
		if err != nil {
			slog.Error("UpdateGroup failed to resolve members", "group_id", groupID, "error", err)
			return nil, err
		}
		group.MemberIDs = userIDs(members)
	}

	if err := s.store.UpdateGroup(ctx, group, replaceMembers); err != nil {
		slog.Error("UpdateGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	// Re-fetch so the response reflects stored state.
	updated, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("UpdateGroup failed to fetch updated group", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Group updated", "group_id", groupID)
	return updated, nil
}

// DeleteGroup removes the group. Expenses referencing it are left in place
// with the dangling reference.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMember adds the user to the group's member set. Adding a present
// member is a no-op.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.AddGroupMember(ctx, groupID, userID); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "user_id", userID, "error", err)
		return err
	}
	slog.Info("Member added", "group_id", groupID, "user_id", userID)
	return nil
}

// RemoveMember removes the user from the group's member set. Removing an
// absent member is a no-op.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.RemoveGroupMember(ctx, groupID, userID); err != nil {
		slog.Error("RemoveMember failed", "group_id", groupID, "user_id", userID, "error", err)
		return err
	}
	slog.Info("Member removed", "group_id", groupID, "user_id", userID)
	return nil
}

func userIDs(users []*models.User) []string {
	ids := make([]string, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	return ids
}
