package application

import (
	"strings"
	"testing"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/pkg/validator"
)

func TestSubmitApplicationRequest_Validate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	cases := []struct {
		name       string
		req        SubmitApplicationRequest
		wantFields []string
	}{
		{
			name: "minimal valid",
			req:  SubmitApplicationRequest{CoverLetter: "I fly Carracks and want to haul cargo with you."},
		},
		{
			name: "cover letter at cap",
			req:  SubmitApplicationRequest{CoverLetter: strings.Repeat("a", 5000)},
		},
		{
			name:       "cover letter over cap",
			req:        SubmitApplicationRequest{CoverLetter: strings.Repeat("a", 5001)},
			wantFields: []string{"cover_letter"},
		},
		{
			name:       "cover letter missing",
			req:        SubmitApplicationRequest{},
			wantFields: []string{"cover_letter"},
		},
		{
			name: "experience over cap",
			req: SubmitApplicationRequest{
				CoverLetter: "hello",
				Experience:  strPtr(strings.Repeat("e", 3001)),
			},
			wantFields: []string{"experience"},
		},
		{
			name: "availability over cap",
			req: SubmitApplicationRequest{
				CoverLetter:  "hello",
				Availability: strPtr(strings.Repeat("w", 1001)),
			},
			wantFields: []string{"availability"},
		},
		{
			name: "custom fields over serialized cap",
			req: SubmitApplicationRequest{
				CoverLetter:  "hello",
				CustomFields: map[string]interface{}{"essay": strings.Repeat("x", 11*1024)},
			},
			wantFields: []string{"custom_fields"},
		},
		{
			name: "multiple violations reported together",
			req: SubmitApplicationRequest{
				CoverLetter:  strings.Repeat("a", 5001),
				Availability: strPtr(strings.Repeat("w", 1001)),
			},
			wantFields: []string{"cover_letter", "availability"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if len(c.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			verrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() = %T, want ValidationErrors", err)
			}
			got := verrs.ToMap()
			if len(got) != len(c.wantFields) {
				t.Fatalf("Validate() flagged %v, want fields %v", got, c.wantFields)
			}
			for _, field := range c.wantFields {
				if _, present := got[field]; !present {
					t.Errorf("Validate() missing error for field %q: %v", field, got)
				}
			}
		})
	}
}

func TestScheduleInterviewRequest_Validate(t *testing.T) {
	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	past := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)

	if err := (&ScheduleInterviewRequest{InterviewAt: future}).Validate(); err != nil {
		t.Errorf("future timestamp rejected: %v", err)
	}
	if err := (&ScheduleInterviewRequest{InterviewAt: past}).Validate(); err == nil {
		t.Error("past timestamp accepted")
	}
	if err := (&ScheduleInterviewRequest{InterviewAt: "tomorrow"}).Validate(); err == nil {
		t.Error("non-ISO8601 timestamp accepted")
	}
	if err := (&ScheduleInterviewRequest{}).Validate(); err == nil {
		t.Error("empty timestamp accepted")
	}
}

func TestRejectApplicationRequest_Validate(t *testing.T) {
	if err := (&RejectApplicationRequest{Reason: "No open slots for haulers right now."}).Validate(); err != nil {
		t.Errorf("valid reason rejected: %v", err)
	}
	if err := (&RejectApplicationRequest{}).Validate(); err == nil {
		t.Error("missing reason accepted")
	}
	if err := (&RejectApplicationRequest{Reason: strings.Repeat("r", 1001)}).Validate(); err == nil {
		t.Error("oversized reason accepted")
	}
}
