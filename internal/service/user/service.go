package user

import (
	"context"
	"fmt"

	"github.com/versecrew/versecrew-backend-go/internal/domain/user"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type UserService struct {
	db *database.DB
	user.UserRepository
}

func NewUserService(db *database.DB, userRepository user.UserRepository) user.Service {
	return &UserService{
		db:             db,
		UserRepository: userRepository,
	}
}

// SyncAccount mirrors the identity-service profile into this service. The
// SPA calls it after login; the row is created on first sight and refreshed
// afterwards. Handle changes reset the verified flag since the proof was for
// the old handle.
func (s *UserService) SyncAccount(ctx context.Context, userID string, req user.SyncAccountRequest) (user.UserResponse, error) {
	existing, err := s.UserRepository.GetByID(ctx, userID)
	handleChanged := err == nil && existing.Handle != req.Handle

	u := user.User{
		ID:          userID,
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	}

	synced, err := s.UserRepository.Upsert(ctx, u)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to upsert account: %w", err)
	}

	if handleChanged && existing.HandleVerified {
		if err := s.UserRepository.SetHandleVerified(ctx, userID, false); err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to reset handle verification: %w", err)
		}
		synced.HandleVerified = false
	}

	return user.ToResponse(synced), nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToResponse(u), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) error {
	if _, err := s.UserRepository.GetByID(ctx, req.ID); err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.UserRepository.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func (s *UserService) GetByHandle(ctx context.Context, handle string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByHandle(ctx, handle)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user by handle: %w", err)
	}
	return user.ToResponse(u), nil
}
