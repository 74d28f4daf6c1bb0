package hrstats

import (
	"context"
	"fmt"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/hrstats"
	"golang.org/x/sync/errgroup"
)

// recentOnboardingLimit caps the latest-assignments list on the dashboard.
const recentOnboardingLimit = 10

type HRStatsService struct {
	hrstats.Repository
}

func NewHRStatsService(repo hrstats.Repository) hrstats.Service {
	return &HRStatsService{
		Repository: repo,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines.
// 4 goroutines, each issuing one aggregate query.
func (s *HRStatsService) GetDashboard(ctx context.Context, orgID string) (*hrstats.DashboardResponse, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -30)

	var (
		membership  hrstats.MembershipSummaryResponse
		funnel      hrstats.RecruitmentFunnelResponse
		onboarding  hrstats.OnboardingStatsResponse
		performance hrstats.PerformanceStatsResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.GetMembershipStats(gCtx, orgID, since)
		if err != nil {
			return err
		}
		membership = hrstats.MembershipSummaryResponse{
			TotalMembers: stats.Total,
			NewMembers:   stats.New,
			Owners:       stats.Owners,
			Officers:     stats.Officers,
			HR:           stats.HR,
			Members:      stats.Members,
			UpdatedAt:    now.Format(time.RFC3339),
		}
		return nil
	})

	g.Go(func() error {
		stats, err := s.GetFunnelStats(gCtx, orgID, since)
		if err != nil {
			return err
		}
		funnel = toFunnelResponse(stats)
		return nil
	})

	g.Go(func() error {
		stats, err := s.Repository.GetOnboardingStats(gCtx, orgID, recentOnboardingLimit)
		if err != nil {
			return err
		}
		onboarding = toOnboardingResponse(stats)
		return nil
	})

	g.Go(func() error {
		stats, err := s.Repository.GetPerformanceStats(gCtx, orgID)
		if err != nil {
			return err
		}
		performance = toPerformanceResponse(stats)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	return &hrstats.DashboardResponse{
		MembershipSummary: membership,
		RecruitmentFunnel: funnel,
		OnboardingStats:   onboarding,
		PerformanceStats:  performance,
	}, nil
}

func (s *HRStatsService) GetRecruitmentFunnel(ctx context.Context, orgID string) (*hrstats.RecruitmentFunnelResponse, error) {
	since := time.Now().AddDate(0, 0, -30)

	stats, err := s.GetFunnelStats(ctx, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load recruitment funnel: %w", err)
	}

	resp := toFunnelResponse(stats)
	return &resp, nil
}

func (s *HRStatsService) GetOnboardingStats(ctx context.Context, orgID string) (*hrstats.OnboardingStatsResponse, error) {
	stats, err := s.Repository.GetOnboardingStats(ctx, orgID, recentOnboardingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding stats: %w", err)
	}

	resp := toOnboardingResponse(stats)
	return &resp, nil
}

func (s *HRStatsService) GetPerformanceStats(ctx context.Context, orgID string) (*hrstats.PerformanceStatsResponse, error) {
	stats, err := s.Repository.GetPerformanceStats(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load performance stats: %w", err)
	}

	resp := toPerformanceResponse(stats)
	return &resp, nil
}

func toFunnelResponse(stats *hrstats.FunnelStats) hrstats.RecruitmentFunnelResponse {
	total := stats.Pending + stats.UnderReview + stats.InterviewScheduled + stats.Approved + stats.Rejected

	var approvalRate float64
	if decided := stats.Approved + stats.Rejected; decided > 0 {
		approvalRate = float64(stats.Approved) / float64(decided)
	}

	return hrstats.RecruitmentFunnelResponse{
		Pending:            stats.Pending,
		UnderReview:        stats.UnderReview,
		InterviewScheduled: stats.InterviewScheduled,
		Approved:           stats.Approved,
		Rejected:           stats.Rejected,
		Total:              total,
		ApprovalRate:       approvalRate,
		AvgDecisionDays:    stats.AvgDecisionDays,
		ReceivedLast30Days: stats.ReceivedSince,
	}
}

func toOnboardingResponse(stats *hrstats.OnboardingStats) hrstats.OnboardingStatsResponse {
	recent := stats.Recent
	if recent == nil {
		recent = []hrstats.OnboardingListItem{}
	}
	return hrstats.OnboardingStatsResponse{
		NotStarted:    stats.NotStarted,
		InProgress:    stats.InProgress,
		Completed:     stats.Completed,
		Overdue:       stats.Overdue,
		AvgCompletion: stats.AvgCompletion,
		Recent:        recent,
	}
}

func toPerformanceResponse(stats *hrstats.PerformanceStats) hrstats.PerformanceStatsResponse {
	var goalRate float64
	if totalGoals := stats.ActiveGoals + stats.CompletedGoals; totalGoals > 0 {
		goalRate = float64(stats.CompletedGoals) / float64(totalGoals)
	}
	return hrstats.PerformanceStatsResponse{
		DraftReviews:        stats.Draft,
		SubmittedReviews:    stats.Submitted,
		AcknowledgedReviews: stats.Acknowledged,
		AvgOverallRating:    stats.AvgOverallRating,
		ActiveGoals:         stats.ActiveGoals,
		CompletedGoals:      stats.CompletedGoals,
		GoalCompletionRate:  goalRate,
	}
}
