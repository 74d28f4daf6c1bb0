package hrstats

import "context"

// Service defines the interface for dashboard operations
type Service interface {
	// GetDashboard returns combined dashboard data using goroutines
	GetDashboard(ctx context.Context, orgID string) (*DashboardResponse, error)

	// GetRecruitmentFunnel returns application funnel statistics
	GetRecruitmentFunnel(ctx context.Context, orgID string) (*RecruitmentFunnelResponse, error)

	// GetOnboardingStats returns onboarding distribution with latest 10 assignments
	GetOnboardingStats(ctx context.Context, orgID string) (*OnboardingStatsResponse, error)

	// GetPerformanceStats returns review and goal statistics
	GetPerformanceStats(ctx context.Context, orgID string) (*PerformanceStatsResponse, error)
}
