package service

import (
	"context"
	"log/slog"

	"github.com/kavidoi/re-solve/internal/models"
	"github.com/kavidoi/re-solve/internal/storage"
)

// UserService holds user identity records for the directory.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUserParams carries the fields for a new user record.
type CreateUserParams struct {
	Username       string
	Password       string
	Email          string
	FirstName      string
	LastName       string
	ProfilePicture string
}

// CreateUser persists a new user. The password is stored exactly as given.
// Username uniqueness is enforced by the storage layer.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	user := &models.User{
		Username:       params.Username,
		Password:       params.Password,
		Email:          params.Email,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		ProfilePicture: params.ProfilePicture,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "username", params.Username, "error", err)
		return nil, err
	}

	slog.Info("User created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}
