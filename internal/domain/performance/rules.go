package performance

import (
	"fmt"
	"math"
	"time"
)

// maxPeriodDays caps a review period at one year.
const maxPeriodDays = 365

// ValidatePeriod enforces start < end and a span of at most one year.
func ValidatePeriod(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: period start must be before period end", ErrInvalidPeriod)
	}
	if end.Sub(start) > maxPeriodDays*24*time.Hour {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidPeriod, maxPeriodDays)
	}
	return nil
}

// PeriodsOverlap is the inclusive interval test used by the conflict guard:
// [aStart, aEnd] and [bStart, bEnd] overlap when aStart <= bEnd and
// aEnd >= bStart. Periods that merely touch at an endpoint count as
// overlapping.
func PeriodsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// reviewTransitions: draft -> submitted -> acknowledged, forward only.
var reviewTransitions = map[ReviewStatus][]ReviewStatus{
	ReviewStatusDraft:        {ReviewStatusSubmitted},
	ReviewStatusSubmitted:    {ReviewStatusAcknowledged},
	ReviewStatusAcknowledged: {},
}

// ValidateReviewTransition checks a review status move.
func ValidateReviewTransition(current, requested ReviewStatus) error {
	allowed, ok := reviewTransitions[current]
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidReviewTransition, current)
	}
	for _, next := range allowed {
		if next == requested {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidReviewTransition, current, requested)
}

// OverallRating is the mean of all category scores rounded to two decimals.
// Returns 0 for an empty map; submission rejects empty ratings before this
// is stored.
func OverallRating(ratings Ratings) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, score := range ratings {
		sum += score
	}

	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*100) / 100
}

// DeriveGoalStatus maps a progress percentage to a status: 0 not started,
// 100 completed, anything between in progress. Cancellation is an explicit
// operation, never derived.
func DeriveGoalStatus(progress int) GoalStatus {
	switch {
	case progress <= 0:
		return GoalStatusNotStarted
	case progress >= 100:
		return GoalStatusCompleted
	default:
		return GoalStatusInProgress
	}
}
