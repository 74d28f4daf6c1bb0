package performance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
)

type fakeReviewRepo struct {
	performance.ReviewRepository

	reviews map[string]performance.Review
	updated *performance.Review
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id string) (performance.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review performance.Review) error {
	f.reviews[review.ID] = review
	f.updated = &review
	return nil
}

type fakeGoalRepo struct {
	performance.GoalRepository

	goals   map[string]performance.Goal
	updated *performance.Goal
}

func (f *fakeGoalRepo) GetByID(ctx context.Context, id string) (performance.Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return performance.Goal{}, performance.ErrGoalNotFound
	}
	return g, nil
}

func (f *fakeGoalRepo) Update(ctx context.Context, goal performance.Goal) error {
	f.goals[goal.ID] = goal
	f.updated = &goal
	return nil
}

func (f *fakeGoalRepo) ListByReview(ctx context.Context, reviewID string) ([]performance.Goal, error) {
	var out []performance.Goal
	for _, g := range f.goals {
		if g.ReviewID != nil && *g.ReviewID == reviewID {
			out = append(out, g)
		}
	}
	return out, nil
}

type droppedNotifs struct {
	notification.Service
}

func (droppedNotifs) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	return nil
}

type performanceFixture struct {
	reviews *fakeReviewRepo
	goals   *fakeGoalRepo
	svc     performance.PerformanceService
}

func newPerformanceFixture() *performanceFixture {
	f := &performanceFixture{
		reviews: &fakeReviewRepo{reviews: map[string]performance.Review{}},
		goals:   &fakeGoalRepo{goals: map[string]performance.Goal{}},
	}
	f.svc = NewPerformanceService(nil, f.reviews, f.goals, nil, nil, droppedNotifs{})
	return f
}

func orgMember(orgID, userID string, role member.Role) member.Member {
	return member.Member{OrganizationID: orgID, UserID: userID, Role: role}
}

func TestReviewHiddenFromOtherOrg(t *testing.T) {
	ctx := context.Background()
	f := newPerformanceFixture()
	f.reviews.reviews["rev-1"] = performance.Review{
		ID:             "rev-1",
		OrganizationID: "org-1",
		RevieweeID:     "user-1",
		ReviewerID:     "reviewer-1",
		Status:         performance.ReviewStatusSubmitted,
		Ratings:        performance.Ratings{"flying": 4},
	}

	_, err := f.svc.GetReview(ctx, "org-2", "rev-1")
	assert.ErrorIs(t, err, performance.ErrReviewNotFound)

	_, err = f.svc.SubmitReview(ctx, "org-2", "rev-1")
	assert.ErrorIs(t, err, performance.ErrReviewNotFound)

	// Even the reviewee cannot reach the review through another org's scope.
	err = f.svc.AcknowledgeReview(ctx, "org-2", "rev-1", "user-1")
	assert.ErrorIs(t, err, performance.ErrReviewNotFound)

	_, err = f.svc.ListReviewGoals(ctx, "org-2", "rev-1")
	assert.ErrorIs(t, err, performance.ErrReviewNotFound)

	resp, err := f.svc.GetReview(ctx, "org-1", "rev-1")
	require.NoError(t, err)
	assert.Equal(t, "rev-1", resp.ID)
}

func TestUpdateReviewScopedToOrg(t *testing.T) {
	ctx := context.Background()
	f := newPerformanceFixture()
	f.reviews.reviews["rev-1"] = performance.Review{
		ID:             "rev-1",
		OrganizationID: "org-1",
		Status:         performance.ReviewStatusDraft,
	}

	_, err := f.svc.UpdateReview(ctx, performance.UpdateReviewRequest{
		OrganizationID: "org-2",
		ReviewID:       "rev-1",
		Ratings:        performance.Ratings{"gunnery": 2},
	})
	assert.ErrorIs(t, err, performance.ErrReviewNotFound)
	assert.Nil(t, f.reviews.updated)
}

func TestGoalHiddenFromOtherOrg(t *testing.T) {
	ctx := context.Background()
	f := newPerformanceFixture()
	f.goals.goals["goal-1"] = performance.Goal{
		ID:             "goal-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Status:         performance.GoalStatusInProgress,
	}

	_, err := f.svc.GetGoal(ctx, "org-2", "goal-1")
	assert.ErrorIs(t, err, performance.ErrGoalNotFound)

	err = f.svc.CancelGoal(ctx, "org-2", "goal-1")
	assert.ErrorIs(t, err, performance.ErrGoalNotFound)

	_, err = f.svc.UpdateGoalProgress(ctx, orgMember("org-2", "user-1", member.RoleMember), performance.UpdateGoalProgressRequest{
		GoalID:   "goal-1",
		Progress: 50,
	})
	assert.ErrorIs(t, err, performance.ErrGoalNotFound)
	assert.Nil(t, f.goals.updated)
}

func TestUpdateGoalProgressRequiresOwnerOrManager(t *testing.T) {
	ctx := context.Background()
	f := newPerformanceFixture()
	f.goals.goals["goal-1"] = performance.Goal{
		ID:             "goal-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Status:         performance.GoalStatusInProgress,
	}

	// Another plain member cannot touch it.
	_, err := f.svc.UpdateGoalProgress(ctx, orgMember("org-1", "user-2", member.RoleMember), performance.UpdateGoalProgressRequest{
		GoalID:   "goal-1",
		Progress: 10,
	})
	assert.ErrorIs(t, err, performance.ErrNotGoalOwner)
	assert.Nil(t, f.goals.updated)

	// The owner can.
	resp, err := f.svc.UpdateGoalProgress(ctx, orgMember("org-1", "user-1", member.RoleMember), performance.UpdateGoalProgressRequest{
		GoalID:   "goal-1",
		Progress: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.ProgressPercentage)

	// So can a role holding reviews.manage.
	resp, err = f.svc.UpdateGoalProgress(ctx, orgMember("org-1", "hr-1", member.RoleHR), performance.UpdateGoalProgressRequest{
		GoalID:   "goal-1",
		Progress: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, performance.GoalStatusCompleted, resp.Status)
}
