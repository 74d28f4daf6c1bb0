package performance

import (
	"context"
	"time"
)

// ReviewRepository - interface for performance_reviews table
type ReviewRepository interface {
	Create(ctx context.Context, review Review) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	ListByOrganization(ctx context.Context, organizationID string, filter ListReviewsFilter) ([]Review, int64, error)
	ListByReviewee(ctx context.Context, revieweeID string, filter ListReviewsFilter) ([]Review, int64, error)
	Update(ctx context.Context, review Review) error
	// HasOverlapping runs the inclusive period overlap test against existing
	// reviews for the reviewee in the org, excluding excludeID when updating.
	HasOverlapping(ctx context.Context, organizationID, revieweeID string, start, end time.Time, excludeID *string) (bool, error)
}

// GoalRepository - interface for performance_goals table
type GoalRepository interface {
	Create(ctx context.Context, goal Goal) (Goal, error)
	GetByID(ctx context.Context, id string) (Goal, error)
	ListByUser(ctx context.Context, organizationID, userID string) ([]Goal, error)
	ListByReview(ctx context.Context, reviewID string) ([]Goal, error)
	Update(ctx context.Context, goal Goal) error
	// CompletionRate returns completed/total over an org's goals, excluding
	// cancelled ones. Total of zero yields a zero rate.
	CompletionRate(ctx context.Context, organizationID string) (float64, error)
}
