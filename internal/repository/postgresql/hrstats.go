package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/hrstats"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

type hrStatsRepositoryImpl struct {
	db *database.DB
}

func NewHRStatsRepository(db *database.DB) hrstats.Repository {
	return &hrStatsRepositoryImpl{db: db}
}

// GetMembershipStats returns member totals and per-role counts in single query
func (r *hrStatsRepositoryImpl) GetMembershipStats(ctx context.Context, orgID string, since time.Time) (*hrstats.MembershipStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN joined_at >= $2 THEN 1 ELSE 0 END), 0) as new_count,
			COALESCE(SUM(CASE WHEN role = 'owner' THEN 1 ELSE 0 END), 0) as owners,
			COALESCE(SUM(CASE WHEN role = 'officer' THEN 1 ELSE 0 END), 0) as officers,
			COALESCE(SUM(CASE WHEN role = 'hr' THEN 1 ELSE 0 END), 0) as hr,
			COALESCE(SUM(CASE WHEN role = 'member' THEN 1 ELSE 0 END), 0) as members
		FROM members
		WHERE organization_id = $1
	`

	var stats hrstats.MembershipStats
	err := q.QueryRow(ctx, query, orgID, since).Scan(
		&stats.Total, &stats.New, &stats.Owners, &stats.Officers, &stats.HR, &stats.Members,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership stats: %w", err)
	}
	return &stats, nil
}

// GetFunnelStats returns application counts per status plus decision timing in single query
func (r *hrStatsRepositoryImpl) GetFunnelStats(ctx context.Context, orgID string, since time.Time) (*hrstats.FunnelStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) as pending,
			COALESCE(SUM(CASE WHEN status = 'under_review' THEN 1 ELSE 0 END), 0) as under_review,
			COALESCE(SUM(CASE WHEN status = 'interview_scheduled' THEN 1 ELSE 0 END), 0) as interview_scheduled,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) as approved,
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0) as rejected,
			COALESCE(SUM(CASE WHEN submitted_at >= $2 THEN 1 ELSE 0 END), 0) as received_since,
			COALESCE(AVG(CASE WHEN decided_at IS NOT NULL THEN EXTRACT(EPOCH FROM (decided_at - submitted_at)) / 86400.0 END), 0) as avg_decision_days
		FROM applications
		WHERE organization_id = $1
	`

	var stats hrstats.FunnelStats
	err := q.QueryRow(ctx, query, orgID, since).Scan(
		&stats.Pending, &stats.UnderReview, &stats.InterviewScheduled,
		&stats.Approved, &stats.Rejected, &stats.ReceivedSince, &stats.AvgDecisionDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get funnel stats: %w", err)
	}
	return &stats, nil
}

// GetOnboardingStats returns progress distribution + latest assignments
// Uses 2 queries but they run in the same DB call context
func (r *hrStatsRepositoryImpl) GetOnboardingStats(ctx context.Context, orgID string, limit int) (*hrstats.OnboardingStats, error) {
	q := GetQuerier(ctx, r.db)

	// Query 1: Get counts
	countQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'not_started' THEN 1 ELSE 0 END), 0) as not_started,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) as in_progress,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) as completed,
			COALESCE(SUM(CASE WHEN status = 'overdue' THEN 1 ELSE 0 END), 0) as overdue,
			COALESCE(AVG(completion_percentage), 0) as avg_completion
		FROM onboarding_progress
		WHERE organization_id = $1
	`

	var stats hrstats.OnboardingStats
	err := q.QueryRow(ctx, countQuery, orgID).Scan(
		&stats.NotStarted, &stats.InProgress, &stats.Completed, &stats.Overdue, &stats.AvgCompletion,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get onboarding stats: %w", err)
	}

	// Query 2: Get latest assignments
	recordsQuery := `
		SELECT u.handle, t.role_name, p.status, p.completion_percentage
		FROM onboarding_progress p
		JOIN users u ON p.user_id = u.id
		JOIN onboarding_templates t ON p.template_id = t.id
		WHERE p.organization_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, recordsQuery, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest onboarding assignments: %w", err)
	}
	defer rows.Close()

	no := 1
	for rows.Next() {
		var item hrstats.OnboardingListItem
		if err := rows.Scan(&item.MemberHandle, &item.TemplateName, &item.Status, &item.Completion); err != nil {
			return nil, fmt.Errorf("failed to scan onboarding assignment: %w", err)
		}
		item.No = no
		stats.Recent = append(stats.Recent, item)
		no++
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetPerformanceStats returns review status counts and goal completion in single query
func (r *hrStatsRepositoryImpl) GetPerformanceStats(ctx context.Context, orgID string) (*hrstats.PerformanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN r.status = 'draft' THEN 1 ELSE 0 END), 0) as draft,
			COALESCE(SUM(CASE WHEN r.status = 'submitted' THEN 1 ELSE 0 END), 0) as submitted,
			COALESCE(SUM(CASE WHEN r.status = 'acknowledged' THEN 1 ELSE 0 END), 0) as acknowledged,
			COALESCE(AVG(CASE WHEN r.status != 'draft' THEN r.overall_rating END), 0) as avg_overall_rating,
			(SELECT COUNT(*) FROM performance_goals g WHERE g.organization_id = $1 AND g.status IN ('not_started', 'in_progress')) as active_goals,
			(SELECT COUNT(*) FROM performance_goals g WHERE g.organization_id = $1 AND g.status = 'completed') as completed_goals
		FROM performance_reviews r
		WHERE r.organization_id = $1
	`

	var stats hrstats.PerformanceStats
	err := q.QueryRow(ctx, query, orgID).Scan(
		&stats.Draft, &stats.Submitted, &stats.Acknowledged,
		&stats.AvgOverallRating, &stats.ActiveGoals, &stats.CompletedGoals,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance stats: %w", err)
	}
	return &stats, nil
}
