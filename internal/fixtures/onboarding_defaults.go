package fixtures

import "github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"

func strPtr(s string) *string       { return &s }
func float64Ptr(f float64) *float64 { return &f }

// GetDefaultOnboardingTemplates returns the starter checklists seeded for a
// newly created organization. Orgs edit or deactivate these from the
// templates API; they exist so a fresh org can assign onboarding on day one.
func GetDefaultOnboardingTemplates(organizationID string) []onboarding.Template {
	return []onboarding.Template{
		{
			OrganizationID:        organizationID,
			RoleName:              "Recruit",
			Description:           strPtr("Baseline onboarding for every new member."),
			EstimatedDurationDays: 14,
			Tasks: onboarding.Tasks{
				{
					ID:       "join-comms",
					Title:    "Join the org's voice and text comms",
					Required: true,
				},
				{
					ID:          "read-charter",
					Title:       "Read the org charter",
					Description: strPtr("Charter and conduct rules are under Documents."),
					Required:    true,
				},
				{
					ID:             "intro-flight",
					Title:          "Fly an intro session with a member of the crew",
					Required:       true,
					EstimatedHours: float64Ptr(2),
				},
				{
					ID:       "set-handle",
					Title:    "Verify your RSI handle",
					Required: false,
				},
			},
		},
		{
			OrganizationID:        organizationID,
			RoleName:              "Pilot",
			Description:           strPtr("Flight-role onboarding: comms discipline and formation basics."),
			EstimatedDurationDays: 21,
			Tasks: onboarding.Tasks{
				{
					ID:       "comms-brevity",
					Title:    "Pass the comms brevity check",
					Required: true,
				},
				{
					ID:             "formation-drill",
					Title:          "Complete a formation flying drill",
					Required:       true,
					EstimatedHours: float64Ptr(3),
				},
				{
					ID:       "loadout-review",
					Title:    "Review an approved ship loadout with a flight lead",
					Required: false,
				},
			},
		},
	}
}
