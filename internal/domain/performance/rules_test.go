package performance

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidatePeriod(t *testing.T) {
	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"quarter", date(2026, 1, 1), date(2026, 3, 31), false},
		{"full year", date(2026, 1, 1), date(2026, 12, 31), false},
		{"single day span", date(2026, 1, 1), date(2026, 1, 2), false},
		{"start equals end", date(2026, 1, 1), date(2026, 1, 1), true},
		{"start after end", date(2026, 3, 1), date(2026, 1, 1), true},
		{"over a year", date(2026, 1, 1), date(2027, 1, 2), true},
	}

	for _, c := range cases {
		err := ValidatePeriod(c.start, c.end)
		if c.wantErr && err == nil {
			t.Errorf("%s: ValidatePeriod = nil, want error", c.name)
		}
		if !c.wantErr && err != nil {
			t.Errorf("%s: ValidatePeriod = %v, want nil", c.name, err)
		}
		if c.wantErr && err != nil && !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("%s: error %v does not wrap ErrInvalidPeriod", c.name, err)
		}
	}
}

func TestPeriodsOverlap(t *testing.T) {
	// Existing review: Jan 1 - Mar 31
	exStart, exEnd := date(2026, 1, 1), date(2026, 3, 31)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"straddles the end", date(2026, 3, 15), date(2026, 6, 30), true},
		{"starts the day after", date(2026, 4, 1), date(2026, 6, 30), false},
		{"identical period", exStart, exEnd, true},
		{"fully inside", date(2026, 2, 1), date(2026, 2, 28), true},
		{"fully contains", date(2025, 12, 1), date(2026, 6, 1), true},
		{"touches at start boundary", date(2025, 10, 1), date(2026, 1, 1), true},
		{"ends the day before", date(2025, 10, 1), date(2025, 12, 31), false},
	}

	for _, c := range cases {
		if got := PeriodsOverlap(c.start, c.end, exStart, exEnd); got != c.want {
			t.Errorf("%s: PeriodsOverlap = %v, want %v", c.name, got, c.want)
		}
		// The test is symmetric in its interval arguments.
		if got := PeriodsOverlap(exStart, exEnd, c.start, c.end); got != c.want {
			t.Errorf("%s (swapped): PeriodsOverlap = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestValidateReviewTransition(t *testing.T) {
	valid := [][2]ReviewStatus{
		{ReviewStatusDraft, ReviewStatusSubmitted},
		{ReviewStatusSubmitted, ReviewStatusAcknowledged},
	}
	invalid := [][2]ReviewStatus{
		{ReviewStatusDraft, ReviewStatusAcknowledged},
		{ReviewStatusSubmitted, ReviewStatusDraft},
		{ReviewStatusAcknowledged, ReviewStatusDraft},
		{ReviewStatusAcknowledged, ReviewStatusSubmitted},
		{ReviewStatusDraft, ReviewStatusDraft},
	}

	for _, pair := range valid {
		if err := ValidateReviewTransition(pair[0], pair[1]); err != nil {
			t.Errorf("ValidateReviewTransition(%s, %s) = %v, want nil", pair[0], pair[1], err)
		}
	}
	for _, pair := range invalid {
		err := ValidateReviewTransition(pair[0], pair[1])
		if err == nil {
			t.Errorf("ValidateReviewTransition(%s, %s) = nil, want error", pair[0], pair[1])
		} else if !errors.Is(err, ErrInvalidReviewTransition) {
			t.Errorf("ValidateReviewTransition(%s, %s) error = %v, want ErrInvalidReviewTransition", pair[0], pair[1], err)
		}
	}
}

func TestOverallRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings Ratings
		want    float64
	}{
		{"empty", Ratings{}, 0},
		{"single", Ratings{"comms": 4}, 4},
		{"clean mean", Ratings{"comms": 4, "discipline": 2}, 3},
		{"two decimals", Ratings{"a": 5, "b": 4, "c": 4}, 4.33},
		{"rounds half up", Ratings{"a": 5, "b": 4}, 4.5},
		{"all fives", Ratings{"a": 5, "b": 5, "c": 5, "d": 5}, 5},
	}

	for _, c := range cases {
		if got := OverallRating(c.ratings); got != c.want {
			t.Errorf("%s: OverallRating = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDeriveGoalStatus(t *testing.T) {
	cases := []struct {
		progress int
		want     GoalStatus
	}{
		{0, GoalStatusNotStarted},
		{1, GoalStatusInProgress},
		{45, GoalStatusInProgress},
		{99, GoalStatusInProgress},
		{100, GoalStatusCompleted},
	}

	for _, c := range cases {
		if got := DeriveGoalStatus(c.progress); got != c.want {
			t.Errorf("DeriveGoalStatus(%d) = %s, want %s", c.progress, got, c.want)
		}
	}
}
