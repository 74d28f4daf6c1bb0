package hrstats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/hrstats"
)

type stubStatsRepo struct {
	membership  hrstats.MembershipStats
	funnel      hrstats.FunnelStats
	onboarding  hrstats.OnboardingStats
	performance hrstats.PerformanceStats
	err         error
}

func (s *stubStatsRepo) GetMembershipStats(ctx context.Context, orgID string, since time.Time) (*hrstats.MembershipStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.membership, nil
}

func (s *stubStatsRepo) GetFunnelStats(ctx context.Context, orgID string, since time.Time) (*hrstats.FunnelStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.funnel, nil
}

func (s *stubStatsRepo) GetOnboardingStats(ctx context.Context, orgID string, limit int) (*hrstats.OnboardingStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.onboarding, nil
}

func (s *stubStatsRepo) GetPerformanceStats(ctx context.Context, orgID string) (*hrstats.PerformanceStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.performance, nil
}

func TestGetDashboardCombinesSections(t *testing.T) {
	repo := &stubStatsRepo{
		membership: hrstats.MembershipStats{Total: 42, New: 5, Owners: 1, Officers: 4, HR: 2, Members: 35},
		funnel:     hrstats.FunnelStats{Pending: 3, UnderReview: 2, Approved: 6, Rejected: 2, ReceivedSince: 8, AvgDecisionDays: 2.5},
		onboarding: hrstats.OnboardingStats{InProgress: 4, Completed: 10, AvgCompletion: 71.2},
		performance: hrstats.PerformanceStats{
			Submitted: 3, Acknowledged: 7, AvgOverallRating: 4.1,
			ActiveGoals: 6, CompletedGoals: 2,
		},
	}
	svc := NewHRStatsService(repo)

	dash, err := svc.GetDashboard(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, int64(42), dash.MembershipSummary.TotalMembers)
	assert.Equal(t, int64(5), dash.MembershipSummary.NewMembers)
	assert.Equal(t, int64(13), dash.RecruitmentFunnel.Total)
	assert.InDelta(t, 0.75, dash.RecruitmentFunnel.ApprovalRate, 1e-9)
	assert.InDelta(t, 71.2, dash.OnboardingStats.AvgCompletion, 1e-9)
	assert.InDelta(t, 0.25, dash.PerformanceStats.GoalCompletionRate, 1e-9)
	assert.NotEmpty(t, dash.MembershipSummary.UpdatedAt)
}

func TestGetDashboardPropagatesErrors(t *testing.T) {
	repo := &stubStatsRepo{err: errors.New("connection refused")}
	svc := NewHRStatsService(repo)

	_, err := svc.GetDashboard(context.Background(), "org-1")
	assert.Error(t, err)
}

func TestFunnelApprovalRateZeroWhenUndecided(t *testing.T) {
	repo := &stubStatsRepo{funnel: hrstats.FunnelStats{Pending: 5}}
	svc := NewHRStatsService(repo)

	resp, err := svc.GetRecruitmentFunnel(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.Total)
	assert.Zero(t, resp.ApprovalRate)
}

func TestOnboardingRecentNeverNil(t *testing.T) {
	svc := NewHRStatsService(&stubStatsRepo{})

	resp, err := svc.GetOnboardingStats(context.Background(), "org-1")
	require.NoError(t, err)

	assert.NotNil(t, resp.Recent)
	assert.Empty(t, resp.Recent)
}
