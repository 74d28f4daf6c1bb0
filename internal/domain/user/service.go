package user

import (
	"context"
)

type Service interface {
	SyncAccount(ctx context.Context, userID string, req SyncAccountRequest) (UserResponse, error)
	GetProfile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	GetByHandle(ctx context.Context, handle string) (UserResponse, error)
}
