package performance

import (
	"context"
	"io"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
)

// By-id lookups take the organization id from the URL scope; a review or
// goal belonging to another organization is reported as not found.
type PerformanceService interface {
	// Reviews
	CreateReview(ctx context.Context, req CreateReviewRequest) (ReviewResponse, error)
	GetReview(ctx context.Context, organizationID, id string) (ReviewResponse, error)
	ListOrgReviews(ctx context.Context, organizationID string, filter ListReviewsFilter) (ListReviewsResponse, error)
	ListMyReviews(ctx context.Context, revieweeID string, filter ListReviewsFilter) (ListReviewsResponse, error)
	UpdateReview(ctx context.Context, req UpdateReviewRequest) (ReviewResponse, error)
	SubmitReview(ctx context.Context, organizationID, reviewID string) (ReviewResponse, error)
	AcknowledgeReview(ctx context.Context, organizationID, reviewID, callerUserID string) error
	// ExportReviewPDF renders a submitted review as a PDF, stores it and
	// returns the storage path plus a reader for immediate download.
	ExportReviewPDF(ctx context.Context, organizationID, reviewID string) (string, io.ReadCloser, error)

	// Goals
	CreateGoal(ctx context.Context, req CreateGoalRequest) (GoalResponse, error)
	GetGoal(ctx context.Context, organizationID, id string) (GoalResponse, error)
	ListUserGoals(ctx context.Context, organizationID, userID string) ([]GoalResponse, error)
	ListReviewGoals(ctx context.Context, organizationID, reviewID string) ([]GoalResponse, error)
	// UpdateGoalProgress is open to the goal owner; anyone else needs
	// the reviews.manage permission.
	UpdateGoalProgress(ctx context.Context, caller member.Member, req UpdateGoalProgressRequest) (GoalResponse, error)
	CancelGoal(ctx context.Context, organizationID, goalID string) error
}
