package comment

import "context"

type Repository interface {
	Create(ctx context.Context, c *Comment) (*Comment, error)
	GetByID(ctx context.Context, id string) (*Comment, error)
	// HasRatedComment reports whether the user already has a comment
	// with a rating on the organization, optionally excluding one
	// comment id (for edits).
	HasRatedComment(ctx context.Context, orgID, authorID string, excludeID *string) (bool, error)
	ListByOrganization(ctx context.Context, orgID string, filter ListCommentsFilter) ([]*Comment, int, error)
	Update(ctx context.Context, c *Comment) (*Comment, error)
	Delete(ctx context.Context, id string) error
	// RatingAggregate recomputes the rating count and average over all
	// rated comments of the organization.
	RatingAggregate(ctx context.Context, orgID string) (*RatingAggregate, error)
}
