package performance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/storage"
)

type PerformanceService struct {
	db *database.DB
	performance.ReviewRepository
	performance.GoalRepository
	memberRepo   member.MemberRepository
	fileStorage  storage.FileStorage
	notifService notification.Service
}

func NewPerformanceService(
	db *database.DB,
	reviewRepository performance.ReviewRepository,
	goalRepository performance.GoalRepository,
	memberRepository member.MemberRepository,
	fileStorage storage.FileStorage,
	notifService notification.Service,
) performance.PerformanceService {
	return &PerformanceService{
		db:               db,
		ReviewRepository: reviewRepository,
		GoalRepository:   goalRepository,
		memberRepo:       memberRepository,
		fileStorage:      fileStorage,
		notifService:     notifService,
	}
}

// CreateReview opens a draft. The period is checked twice: once here against
// every existing review for the reviewee (inclusive overlap test), and once
// by the exclusion constraint in the schema for concurrent creators.
func (s *PerformanceService) CreateReview(ctx context.Context, req performance.CreateReviewRequest) (performance.ReviewResponse, error) {
	if req.RevieweeID == req.ReviewerID {
		return performance.ReviewResponse{}, performance.ErrSelfReview
	}

	if _, err := s.memberRepo.GetByOrgAndUser(ctx, req.OrganizationID, req.RevieweeID); err != nil {
		return performance.ReviewResponse{}, fmt.Errorf("failed to get reviewee membership: %w", err)
	}

	start, end := req.Period()
	if err := performance.ValidatePeriod(start, end); err != nil {
		return performance.ReviewResponse{}, err
	}

	overlap, err := s.ReviewRepository.HasOverlapping(ctx, req.OrganizationID, req.RevieweeID, start, end, nil)
	if err != nil {
		return performance.ReviewResponse{}, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlap {
		return performance.ReviewResponse{}, performance.ErrReviewPeriodOverlap
	}

	review := performance.Review{
		OrganizationID: req.OrganizationID,
		RevieweeID:     req.RevieweeID,
		ReviewerID:     req.ReviewerID,
		PeriodStart:    start,
		PeriodEnd:      end,
		Summary:        req.Summary,
		Status:         performance.ReviewStatusDraft,
	}

	created, err := s.ReviewRepository.Create(ctx, review)
	if err != nil {
		return performance.ReviewResponse{}, fmt.Errorf("failed to create review: %w", err)
	}

	return performance.ToReviewResponse(created), nil
}

func (s *PerformanceService) GetReview(ctx context.Context, organizationID, id string) (performance.ReviewResponse, error) {
	review, err := s.reviewForOrg(ctx, organizationID, id)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	return performance.ToReviewResponse(review), nil
}

func (s *PerformanceService) ListOrgReviews(ctx context.Context, organizationID string, filter performance.ListReviewsFilter) (performance.ListReviewsResponse, error) {
	normalizeReviewFilter(&filter)

	reviews, total, err := s.ReviewRepository.ListByOrganization(ctx, organizationID, filter)
	if err != nil {
		return performance.ListReviewsResponse{}, fmt.Errorf("failed to list reviews: %w", err)
	}

	return toReviewList(reviews, total, filter), nil
}

func (s *PerformanceService) ListMyReviews(ctx context.Context, revieweeID string, filter performance.ListReviewsFilter) (performance.ListReviewsResponse, error) {
	normalizeReviewFilter(&filter)

	reviews, total, err := s.ReviewRepository.ListByReviewee(ctx, revieweeID, filter)
	if err != nil {
		return performance.ListReviewsResponse{}, fmt.Errorf("failed to list reviews: %w", err)
	}

	return toReviewList(reviews, total, filter), nil
}

// UpdateReview edits ratings and summary while the review is still a draft.
func (s *PerformanceService) UpdateReview(ctx context.Context, req performance.UpdateReviewRequest) (performance.ReviewResponse, error) {
	review, err := s.reviewForOrg(ctx, req.OrganizationID, req.ReviewID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if review.Status != performance.ReviewStatusDraft {
		return performance.ReviewResponse{}, performance.ErrReviewNotDraft
	}

	if req.Ratings != nil {
		review.Ratings = req.Ratings
	}
	if req.Summary != nil {
		review.Summary = req.Summary
	}

	if err := s.ReviewRepository.Update(ctx, review); err != nil {
		return performance.ReviewResponse{}, fmt.Errorf("failed to update review: %w", err)
	}

	return performance.ToReviewResponse(review), nil
}

// SubmitReview finalizes the ratings: the overall score is computed here,
// stored, and never edited again.
func (s *PerformanceService) SubmitReview(ctx context.Context, organizationID, reviewID string) (performance.ReviewResponse, error) {
	review, err := s.reviewForOrg(ctx, organizationID, reviewID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}

	if err := performance.ValidateReviewTransition(review.Status, performance.ReviewStatusSubmitted); err != nil {
		return performance.ReviewResponse{}, err
	}
	if len(review.Ratings) == 0 {
		return performance.ReviewResponse{}, performance.ErrRatingsRequired
	}

	now := time.Now()
	overall := performance.OverallRating(review.Ratings)
	review.Status = performance.ReviewStatusSubmitted
	review.OverallRating = &overall
	review.SubmittedAt = &now

	if err := s.ReviewRepository.Update(ctx, review); err != nil {
		return performance.ReviewResponse{}, fmt.Errorf("failed to submit review: %w", err)
	}

	s.queue(ctx, notification.CreateNotificationRequest{
		OrganizationID: review.OrganizationID,
		RecipientID:    review.RevieweeID,
		SenderID:       &review.ReviewerID,
		Type:           notification.TypeReviewSubmitted,
		Title:          "Performance review submitted",
		Message:        "A performance review covering your recent period is ready for you.",
		Data:           map[string]interface{}{"review_id": review.ID},
	})

	return performance.ToReviewResponse(review), nil
}

// AcknowledgeReview is the reviewee countersigning. Nobody else can do it,
// including the reviewer.
func (s *PerformanceService) AcknowledgeReview(ctx context.Context, organizationID, reviewID, callerUserID string) error {
	review, err := s.reviewForOrg(ctx, organizationID, reviewID)
	if err != nil {
		return err
	}
	if review.RevieweeID != callerUserID {
		return performance.ErrNotReviewee
	}

	if err := performance.ValidateReviewTransition(review.Status, performance.ReviewStatusAcknowledged); err != nil {
		return err
	}

	now := time.Now()
	review.Status = performance.ReviewStatusAcknowledged
	review.AcknowledgedAt = &now

	if err := s.ReviewRepository.Update(ctx, review); err != nil {
		return fmt.Errorf("failed to acknowledge review: %w", err)
	}

	s.queue(ctx, notification.CreateNotificationRequest{
		OrganizationID: review.OrganizationID,
		RecipientID:    review.ReviewerID,
		SenderID:       &review.RevieweeID,
		Type:           notification.TypeReviewAcknowledged,
		Title:          "Review acknowledged",
		Message:        "The reviewee has acknowledged their performance review.",
		Data:           map[string]interface{}{"review_id": review.ID},
	})

	return nil
}

// ExportReviewPDF renders a submitted or acknowledged review as a one-page
// PDF summary, persists it next to the org's other files and hands back a
// reader for immediate download.
func (s *PerformanceService) ExportReviewPDF(ctx context.Context, organizationID, reviewID string) (string, io.ReadCloser, error) {
	review, err := s.reviewForOrg(ctx, organizationID, reviewID)
	if err != nil {
		return "", nil, err
	}
	if review.Status == performance.ReviewStatusDraft {
		return "", nil, performance.ErrReviewNotDraft
	}

	goals, err := s.GoalRepository.ListByReview(ctx, reviewID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list review goals: %w", err)
	}

	var buf bytes.Buffer
	if err := renderReviewPDF(&buf, review, goals); err != nil {
		return "", nil, fmt.Errorf("failed to render review PDF: %w", err)
	}

	path := fmt.Sprintf("organizations/%s/reviews/%s.pdf", review.OrganizationID, review.ID)
	storedPath, err := s.fileStorage.Upload(ctx, bytes.NewReader(buf.Bytes()), path, "application/pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to store review PDF: %w", err)
	}

	reader, err := s.fileStorage.Download(ctx, storedPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open stored review PDF: %w", err)
	}

	return storedPath, reader, nil
}

func (s *PerformanceService) CreateGoal(ctx context.Context, req performance.CreateGoalRequest) (performance.GoalResponse, error) {
	if _, err := s.memberRepo.GetByOrgAndUser(ctx, req.OrganizationID, req.UserID); err != nil {
		return performance.GoalResponse{}, fmt.Errorf("failed to get membership: %w", err)
	}

	if req.ReviewID != nil {
		review, err := s.ReviewRepository.GetByID(ctx, *req.ReviewID)
		if err != nil {
			return performance.GoalResponse{}, fmt.Errorf("failed to get review: %w", err)
		}
		if review.OrganizationID != req.OrganizationID {
			return performance.GoalResponse{}, performance.ErrReviewNotFound
		}
	}

	goal := performance.Goal{
		OrganizationID:     req.OrganizationID,
		UserID:             req.UserID,
		ReviewID:           req.ReviewID,
		Title:              req.Title,
		Description:        req.Description,
		TargetDate:         req.Target(),
		ProgressPercentage: 0,
		Status:             performance.GoalStatusNotStarted,
	}

	created, err := s.GoalRepository.Create(ctx, goal)
	if err != nil {
		return performance.GoalResponse{}, fmt.Errorf("failed to create goal: %w", err)
	}

	return performance.ToGoalResponse(created), nil
}

func (s *PerformanceService) GetGoal(ctx context.Context, organizationID, id string) (performance.GoalResponse, error) {
	goal, err := s.goalForOrg(ctx, organizationID, id)
	if err != nil {
		return performance.GoalResponse{}, err
	}
	return performance.ToGoalResponse(goal), nil
}

func (s *PerformanceService) ListUserGoals(ctx context.Context, organizationID, userID string) ([]performance.GoalResponse, error) {
	goals, err := s.GoalRepository.ListByUser(ctx, organizationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return toGoalResponses(goals), nil
}

func (s *PerformanceService) ListReviewGoals(ctx context.Context, organizationID, reviewID string) ([]performance.GoalResponse, error) {
	if _, err := s.reviewForOrg(ctx, organizationID, reviewID); err != nil {
		return nil, err
	}

	goals, err := s.GoalRepository.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return toGoalResponses(goals), nil
}

// UpdateGoalProgress sets the percentage and re-derives the status from it.
// Completed and cancelled goals are immutable. Only the goal owner or a
// holder of reviews.manage can move the needle.
func (s *PerformanceService) UpdateGoalProgress(ctx context.Context, caller member.Member, req performance.UpdateGoalProgressRequest) (performance.GoalResponse, error) {
	goal, err := s.goalForOrg(ctx, caller.OrganizationID, req.GoalID)
	if err != nil {
		return performance.GoalResponse{}, err
	}
	if goal.UserID != caller.UserID && !member.HasPermission(caller.Role, member.PermissionReviewsManage) {
		return performance.GoalResponse{}, performance.ErrNotGoalOwner
	}
	if goal.Status == performance.GoalStatusCompleted || goal.Status == performance.GoalStatusCancelled {
		return performance.GoalResponse{}, performance.ErrGoalFinished
	}

	goal.ProgressPercentage = req.Progress
	goal.Status = performance.DeriveGoalStatus(req.Progress)
	if goal.Status == performance.GoalStatusCompleted {
		now := time.Now()
		goal.CompletedAt = &now
	}

	if err := s.GoalRepository.Update(ctx, goal); err != nil {
		return performance.GoalResponse{}, fmt.Errorf("failed to update goal: %w", err)
	}

	if goal.Status == performance.GoalStatusCompleted {
		s.queue(ctx, notification.CreateNotificationRequest{
			OrganizationID: goal.OrganizationID,
			RecipientID:    goal.UserID,
			Type:           notification.TypeGoalProgress,
			Title:          "Goal completed",
			Message:        fmt.Sprintf("Goal %q is complete.", goal.Title),
			Data:           map[string]interface{}{"goal_id": goal.ID},
		})
	}

	return performance.ToGoalResponse(goal), nil
}

func (s *PerformanceService) CancelGoal(ctx context.Context, organizationID, goalID string) error {
	goal, err := s.goalForOrg(ctx, organizationID, goalID)
	if err != nil {
		return err
	}
	if goal.Status == performance.GoalStatusCompleted || goal.Status == performance.GoalStatusCancelled {
		return performance.ErrGoalFinished
	}

	now := time.Now()
	goal.Status = performance.GoalStatusCancelled
	goal.CancelledAt = &now

	if err := s.GoalRepository.Update(ctx, goal); err != nil {
		return fmt.Errorf("failed to cancel goal: %w", err)
	}

	return nil
}

// reviewForOrg loads a review and hides it when it belongs to a different
// organization than the one the caller is operating in.
func (s *PerformanceService) reviewForOrg(ctx context.Context, organizationID, reviewID string) (performance.Review, error) {
	review, err := s.ReviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return performance.Review{}, fmt.Errorf("failed to get review: %w", err)
	}
	if review.OrganizationID != organizationID {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return review, nil
}

func (s *PerformanceService) goalForOrg(ctx context.Context, organizationID, goalID string) (performance.Goal, error) {
	goal, err := s.GoalRepository.GetByID(ctx, goalID)
	if err != nil {
		return performance.Goal{}, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal.OrganizationID != organizationID {
		return performance.Goal{}, performance.ErrGoalNotFound
	}
	return goal, nil
}

func (s *PerformanceService) queue(ctx context.Context, req notification.CreateNotificationRequest) {
	if err := s.notifService.QueueNotification(ctx, req); err != nil {
		slog.Error("failed to queue notification", "type", string(req.Type), "error", err)
	}
}

func normalizeReviewFilter(filter *performance.ListReviewsFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
}

func toReviewList(reviews []performance.Review, total int64, filter performance.ListReviewsFilter) performance.ListReviewsResponse {
	responses := make([]performance.ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = performance.ToReviewResponse(r)
	}

	return performance.ListReviewsResponse{
		Reviews:  responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}

func toGoalResponses(goals []performance.Goal) []performance.GoalResponse {
	responses := make([]performance.GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = performance.ToGoalResponse(g)
	}
	return responses
}

func sortedCategories(ratings performance.Ratings) []string {
	categories := make([]string, 0, len(ratings))
	for category := range ratings {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
