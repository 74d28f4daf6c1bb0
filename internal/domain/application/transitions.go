package application

import "fmt"

// statusTransitions is the complete transition table. Anything not listed is
// rejected, so approved and rejected are terminal by omission.
var statusTransitions = map[Status][]Status{
	StatusPending:            {StatusUnderReview, StatusRejected},
	StatusUnderReview:        {StatusInterviewScheduled, StatusApproved, StatusRejected},
	StatusInterviewScheduled: {StatusApproved, StatusRejected, StatusUnderReview},
	StatusApproved:           {},
	StatusRejected:           {},
}

// IsValidStatus reports whether s is a known application status.
func IsValidStatus(s Status) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s Status) bool {
	return len(statusTransitions[s]) == 0 && IsValidStatus(s)
}

// AllowedNext returns the statuses reachable from current in one step.
func AllowedNext(current Status) []Status {
	next := statusTransitions[current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// ValidateTransition checks a single status move against the table. It is
// pure: reviewer identity and rejection reasons are enforced by the caller
// before the move, and persistence happens after.
func ValidateTransition(current, requested Status) error {
	if !IsValidStatus(current) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, current)
	}
	if !IsValidStatus(requested) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, requested)
	}

	for _, allowed := range statusTransitions[current] {
		if allowed == requested {
			return nil
		}
	}

	if IsTerminal(current) {
		return fmt.Errorf("%w: %s is a final status", ErrInvalidStatusTransition, current)
	}
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatusTransition, current, requested)
}
