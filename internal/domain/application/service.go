package application

import (
	"context"
)

// By-id operations carry the organization id from the URL scope; an
// application filed with a different organization is reported as not found.
type ApplicationService interface {
	Submit(ctx context.Context, req SubmitApplicationRequest) (ApplicationResponse, error)
	Get(ctx context.Context, organizationID, id string) (ApplicationResponse, error)
	ListByOrganization(ctx context.Context, organizationID string, filter ListApplicationsFilter) (ListApplicationsResponse, error)
	ListMine(ctx context.Context, userID string, filter ListApplicationsFilter) (ListApplicationsResponse, error)

	// Review workflow. Every move is checked against the transition table.
	StartReview(ctx context.Context, organizationID, applicationID, reviewerID string) error
	ScheduleInterview(ctx context.Context, req ScheduleInterviewRequest) error
	// ReturnToReview walks an interview_scheduled application back to
	// under_review, e.g. when the interview is cancelled.
	ReturnToReview(ctx context.Context, organizationID, applicationID, reviewerID string) error
	Approve(ctx context.Context, organizationID, applicationID, reviewerID string) error
	Reject(ctx context.Context, req RejectApplicationRequest) error
	SaveReviewNotes(ctx context.Context, req UpdateReviewNotesRequest) error
}
