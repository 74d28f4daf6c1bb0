package document

import (
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
)

// Document is an organization file or text page (charter, SOP, fleet
// doctrine) published to members at or above a minimum role.
type Document struct {
	ID             string
	OrganizationID string
	AuthorID       string
	Title          string
	Category       string
	Body           string
	FilePath       string
	FileName       string
	FileSize       int64
	ContentType    string
	MinRole        member.Role
	RequiresAck    bool
	PublishedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields.
	AuthorHandle string
	AckCount     int
}

// IsPublished reports whether the document is visible to members yet.
func (d *Document) IsPublished() bool {
	return d.PublishedAt != nil
}

// VisibleTo reports whether a member with the given role may read the
// document.
func (d *Document) VisibleTo(role member.Role) bool {
	return role.AtLeast(d.MinRole)
}

// Acknowledgment records that a member has read a document that
// requires acknowledgment.
type Acknowledgment struct {
	ID             string
	DocumentID     string
	UserID         string
	AcknowledgedAt time.Time

	// Joined fields.
	UserHandle string
}
