package organization

import "time"

// Organization mirrors a Star Citizen org. SID is the RSI spectrum identifier
// and doubles as the public slug; it never changes after creation.
type Organization struct {
	ID             string
	SID            string
	Name           string
	Description    *string
	Archetype      *string
	PrimaryFocus   *string
	Language       *string
	LogoPath       *string
	RecruitingOpen bool
	Verified       bool
	MemberCount    int
	RatingCount    int
	RatingAverage  float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ArchivedAt     *time.Time
}

// IsArchived reports whether the org has been soft-archived. Archived orgs
// stop accepting applications, comments and membership changes.
func (o *Organization) IsArchived() bool {
	return o.ArchivedAt != nil
}
