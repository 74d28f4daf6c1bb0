package application

import (
	"errors"
	"testing"
)

func TestValidateTransition_Table(t *testing.T) {
	all := []Status{StatusPending, StatusUnderReview, StatusInterviewScheduled, StatusApproved, StatusRejected}

	allowed := map[Status]map[Status]bool{
		StatusPending:            {StatusUnderReview: true, StatusRejected: true},
		StatusUnderReview:        {StatusInterviewScheduled: true, StatusApproved: true, StatusRejected: true},
		StatusInterviewScheduled: {StatusApproved: true, StatusRejected: true, StatusUnderReview: true},
		StatusApproved:           {},
		StatusRejected:           {},
	}

	// Every (current, requested) pair must match the table exactly, including
	// self-transitions, which are never listed.
	for _, current := range all {
		for _, requested := range all {
			err := ValidateTransition(current, requested)
			want := allowed[current][requested]
			if want && err != nil {
				t.Errorf("ValidateTransition(%s, %s) = %v, want nil", current, requested, err)
			}
			if !want {
				if err == nil {
					t.Errorf("ValidateTransition(%s, %s) = nil, want error", current, requested)
				} else if !errors.Is(err, ErrInvalidStatusTransition) {
					t.Errorf("ValidateTransition(%s, %s) error = %v, want ErrInvalidStatusTransition", current, requested, err)
				}
			}
		}
	}
}

func TestValidateTransition_SkipsIntermediateStates(t *testing.T) {
	// pending cannot jump straight to approved
	if err := ValidateTransition(StatusPending, StatusApproved); err == nil {
		t.Fatal("pending -> approved should be rejected")
	}
	// but pending -> rejected is a legal short-circuit
	if err := ValidateTransition(StatusPending, StatusRejected); err != nil {
		t.Fatalf("pending -> rejected should be allowed, got %v", err)
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	if err := ValidateTransition(Status("withdrawn"), StatusApproved); err == nil {
		t.Fatal("unknown current status should be rejected")
	}
	if err := ValidateTransition(StatusPending, Status("waitlisted")); err == nil {
		t.Fatal("unknown requested status should be rejected")
	}
}

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusUnderReview, false},
		{StatusInterviewScheduled, false},
		{StatusApproved, true},
		{StatusRejected, true},
		{Status("bogus"), false},
	}
	for _, c := range cases {
		if got := IsTerminal(c.status); got != c.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestAllowedNext_ReturnsCopy(t *testing.T) {
	next := AllowedNext(StatusPending)
	if len(next) != 2 {
		t.Fatalf("AllowedNext(pending) returned %d statuses, want 2", len(next))
	}
	next[0] = StatusApproved
	// Mutating the returned slice must not poison the table.
	if err := ValidateTransition(StatusPending, StatusApproved); err == nil {
		t.Fatal("transition table was mutated through AllowedNext result")
	}
}
