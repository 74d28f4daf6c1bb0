package hrstats

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the org HR dashboard endpoint
type DashboardResponse struct {
	MembershipSummary MembershipSummaryResponse `json:"membership_summary"`
	RecruitmentFunnel RecruitmentFunnelResponse `json:"recruitment_funnel"`
	OnboardingStats   OnboardingStatsResponse   `json:"onboarding_stats"`
	PerformanceStats  PerformanceStatsResponse  `json:"performance_stats"`
}

// ========== MEMBERSHIP SUMMARY ==========

// MembershipSummaryResponse contains member counts by role plus recent joins
type MembershipSummaryResponse struct {
	TotalMembers int64  `json:"total_members"`
	NewMembers   int64  `json:"new_members"` // joined within 30 days
	Owners       int64  `json:"owners"`
	Officers     int64  `json:"officers"`
	HR           int64  `json:"hr"`
	Members      int64  `json:"members"`
	UpdatedAt    string `json:"updated_at"`
}

// ========== RECRUITMENT FUNNEL ==========

// RecruitmentFunnelResponse represents application counts per status for the funnel chart
type RecruitmentFunnelResponse struct {
	Pending            int64   `json:"pending"`
	UnderReview        int64   `json:"under_review"`
	InterviewScheduled int64   `json:"interview_scheduled"`
	Approved           int64   `json:"approved"`
	Rejected           int64   `json:"rejected"`
	Total              int64   `json:"total"`
	ApprovalRate       float64 `json:"approval_rate"`        // approved / decided
	AvgDecisionDays    float64 `json:"avg_decision_days"`    // submission to decision
	ReceivedLast30Days int64   `json:"received_last_30_days"`
}

// ========== ONBOARDING ==========

// OnboardingStatsResponse represents onboarding progress distribution
type OnboardingStatsResponse struct {
	NotStarted    int64                `json:"not_started"`
	InProgress    int64                `json:"in_progress"`
	Completed     int64                `json:"completed"`
	Overdue       int64                `json:"overdue"`
	AvgCompletion float64              `json:"avg_completion"` // mean completion percentage
	Recent        []OnboardingListItem `json:"recent"`         // Latest 10 assignments
}

// OnboardingListItem represents a single onboarding assignment in the list
type OnboardingListItem struct {
	No           int    `json:"no"`
	MemberHandle string `json:"member_handle"`
	TemplateName string `json:"template_name"`
	Status       string `json:"status"`
	Completion   int    `json:"completion"`
}

// ========== PERFORMANCE ==========

// PerformanceStatsResponse represents review and goal statistics
type PerformanceStatsResponse struct {
	DraftReviews        int64   `json:"draft_reviews"`
	SubmittedReviews    int64   `json:"submitted_reviews"`
	AcknowledgedReviews int64   `json:"acknowledged_reviews"`
	AvgOverallRating    float64 `json:"avg_overall_rating"` // over submitted+acknowledged
	ActiveGoals         int64   `json:"active_goals"`
	CompletedGoals      int64   `json:"completed_goals"`
	GoalCompletionRate  float64 `json:"goal_completion_rate"`
}
