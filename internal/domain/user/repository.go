package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByHandle(ctx context.Context, handle string) (User, error)
	// Upsert creates the account row on first sight and refreshes profile
	// fields on subsequent syncs. The identity service owns the ID.
	Upsert(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, req UpdateProfileRequest) error
	SetHandleVerified(ctx context.Context, id string, verified bool) error
}
