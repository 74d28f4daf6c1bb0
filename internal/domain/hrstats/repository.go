package hrstats

import (
	"context"
	"time"
)

// MembershipStats combines all member counts in single query
type MembershipStats struct {
	Total    int64
	New      int64 // joined within 30 days
	Owners   int64
	Officers int64
	HR       int64
	Members  int64
}

// FunnelStats combines application counts per status plus decision timing
type FunnelStats struct {
	Pending            int64
	UnderReview        int64
	InterviewScheduled int64
	Approved           int64
	Rejected           int64
	ReceivedSince      int64
	AvgDecisionDays    float64
}

// OnboardingStats combines progress status counts with the mean completion
type OnboardingStats struct {
	NotStarted    int64
	InProgress    int64
	Completed     int64
	Overdue       int64
	AvgCompletion float64
	Recent        []OnboardingListItem
}

// PerformanceStats combines review status counts with goal completion
type PerformanceStats struct {
	Draft            int64
	Submitted        int64
	Acknowledged     int64
	AvgOverallRating float64
	ActiveGoals      int64
	CompletedGoals   int64
}

// Repository defines the interface for dashboard data access
type Repository interface {
	// GetMembershipStats returns member totals and per-role counts in single query
	GetMembershipStats(ctx context.Context, orgID string, since time.Time) (*MembershipStats, error)

	// GetFunnelStats returns application counts per status plus decision timing in single query
	GetFunnelStats(ctx context.Context, orgID string, since time.Time) (*FunnelStats, error)

	// GetOnboardingStats returns progress distribution + latest assignments in single query (using subquery)
	GetOnboardingStats(ctx context.Context, orgID string, limit int) (*OnboardingStats, error)

	// GetPerformanceStats returns review status counts and goal completion in single query
	GetPerformanceStats(ctx context.Context, orgID string) (*PerformanceStats, error)
}
