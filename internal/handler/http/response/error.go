package response

import (
	"errors"
	"net/http"

	"github.com/versecrew/versecrew-backend-go/internal/domain/application"
	"github.com/versecrew/versecrew-backend-go/internal/domain/comment"
	"github.com/versecrew/versecrew-backend-go/internal/domain/document"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
	"github.com/versecrew/versecrew-backend-go/internal/domain/user"
	"github.com/versecrew/versecrew-backend-go/internal/domain/verification"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Not found
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, application.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, onboarding.ErrTemplateNotFound):
		NotFound(w, "Onboarding template not found")
	case errors.Is(err, onboarding.ErrProgressNotFound):
		NotFound(w, "Onboarding progress not found")
	case errors.Is(err, performance.ErrReviewNotFound):
		NotFound(w, "Review not found")
	case errors.Is(err, performance.ErrGoalNotFound):
		NotFound(w, "Goal not found")
	case errors.Is(err, comment.ErrCommentNotFound):
		NotFound(w, "Comment not found")
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrDocumentNotPublished):
		NotFound(w, "Document not found")
	case errors.Is(err, verification.ErrCodeNotFound):
		NotFound(w, "No active verification code for this subject")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Conflicts
	case errors.Is(err, user.ErrHandleTaken):
		Conflict(w, "Handle already in use")
	case errors.Is(err, organization.ErrSIDTaken):
		Conflict(w, "Organization SID already registered")
	case errors.Is(err, organization.ErrOrganizationArchived):
		Conflict(w, "Organization is archived")
	case errors.Is(err, organization.ErrAlreadyVerified),
		errors.Is(err, verification.ErrAlreadyVerified):
		Conflict(w, "Subject is already verified")
	case errors.Is(err, member.ErrAlreadyMember),
		errors.Is(err, application.ErrAlreadyMember):
		Conflict(w, "User is already a member of this organization")
	case errors.Is(err, application.ErrDuplicateApplication):
		Conflict(w, "An application for this organization already exists")
	case errors.Is(err, application.ErrInvalidStatusTransition):
		Conflict(w, "Invalid application status transition")
	case errors.Is(err, onboarding.ErrTemplateNameTaken):
		Conflict(w, "A template for this role already exists")
	case errors.Is(err, onboarding.ErrTemplateInactive):
		Conflict(w, "Onboarding template is inactive")
	case errors.Is(err, onboarding.ErrAlreadyAssigned):
		Conflict(w, "User already has active progress for this template")
	case errors.Is(err, onboarding.ErrProgressFinished):
		Conflict(w, "Onboarding progress is already completed")
	case errors.Is(err, onboarding.ErrTemplateHasProgress):
		Conflict(w, "Template has progress records and cannot be deleted")
	case errors.Is(err, performance.ErrReviewPeriodOverlap):
		Conflict(w, "A review already covers part of this period")
	case errors.Is(err, performance.ErrInvalidReviewTransition):
		Conflict(w, "Invalid review status transition")
	case errors.Is(err, performance.ErrReviewNotDraft):
		Conflict(w, "Review is no longer a draft")
	case errors.Is(err, performance.ErrGoalFinished):
		Conflict(w, "Goal is completed or cancelled")
	case errors.Is(err, comment.ErrAlreadyRated):
		Conflict(w, "You have already rated this organization")
	case errors.Is(err, document.ErrAlreadyAcknowledged):
		Conflict(w, "Document already acknowledged")

	// Bad requests
	case errors.Is(err, application.ErrRecruitingClosed):
		BadRequest(w, "Organization is not recruiting", nil)
	case errors.Is(err, application.ErrRejectionReasonRequired):
		BadRequest(w, "A rejection reason is required", nil)
	case errors.Is(err, onboarding.ErrTaskNotFound):
		BadRequest(w, "Task does not belong to this template", nil)
	case errors.Is(err, onboarding.ErrDuplicateTaskIDs):
		BadRequest(w, "Template tasks must have unique ids", nil)
	case errors.Is(err, performance.ErrInvalidPeriod):
		BadRequest(w, "Invalid review period", nil)
	case errors.Is(err, performance.ErrRatingsRequired):
		BadRequest(w, "At least one rating is required before submitting", nil)
	case errors.Is(err, performance.ErrSelfReview):
		BadRequest(w, "A reviewer cannot review themselves", nil)
	case errors.Is(err, document.ErrAckNotRequired):
		BadRequest(w, "Document does not require acknowledgment", nil)
	case errors.Is(err, verification.ErrCodeExpired):
		BadRequest(w, "Verification code has expired", nil)
	case errors.Is(err, verification.ErrCodeNotOnPage):
		BadRequest(w, "Verification code was not found on the page", nil)

	// Forbidden
	case errors.Is(err, member.ErrCannotRemoveOwner):
		Forbidden(w, "The organization owner cannot be removed")
	case errors.Is(err, member.ErrCannotChangeOwnerRole):
		Forbidden(w, "The organization owner role cannot be changed")
	case errors.Is(err, member.ErrOwnerRoleNotGrantable):
		Forbidden(w, "Ownership is transferred, not granted")
	case errors.Is(err, performance.ErrNotReviewee):
		Forbidden(w, "Only the reviewee can acknowledge a review")
	case errors.Is(err, performance.ErrNotGoalOwner):
		Forbidden(w, "Only the goal owner can update its progress")
	case errors.Is(err, onboarding.ErrNotAssignee):
		Forbidden(w, "Only the assignee can update this checklist")
	case errors.Is(err, comment.ErrNotAuthor):
		Forbidden(w, "Only the author can modify this comment")
	case errors.Is(err, document.ErrNotVisible):
		Forbidden(w, "Document is not visible to your role")
	case errors.Is(err, verification.ErrSubjectMismatch):
		Forbidden(w, "You cannot verify this subject")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Notification belongs to another user")

	// Upstream failures
	case errors.Is(err, verification.ErrPageUnavailable):
		BadGateway(w, "Could not fetch the public RSI page")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
