package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/document"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
)

type fakeDocRepo struct {
	document.Repository

	docs      map[string]*document.Document
	acks      map[string]map[string]bool // documentID -> userID
	published []string
	nextID    string
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{
		docs:   map[string]*document.Document{},
		acks:   map[string]map[string]bool{},
		nextID: "doc-1",
	}
}

func (f *fakeDocRepo) Create(ctx context.Context, d *document.Document) (*document.Document, error) {
	d.ID = f.nextID
	copied := *d
	f.docs[d.ID] = &copied
	return d, nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, id string) (*document.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, document.ErrDocumentNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDocRepo) SetPublished(ctx context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return document.ErrDocumentNotFound
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakeDocRepo) CreateAck(ctx context.Context, a *document.Acknowledgment) (*document.Acknowledgment, error) {
	if f.acks[a.DocumentID] == nil {
		f.acks[a.DocumentID] = map[string]bool{}
	}
	f.acks[a.DocumentID][a.UserID] = true
	a.ID = "ack-1"
	return a, nil
}

func (f *fakeDocRepo) HasAcked(ctx context.Context, documentID, userID string) (bool, error) {
	return f.acks[documentID][userID], nil
}

func (f *fakeDocRepo) ListByOrganization(ctx context.Context, orgID string, filter document.ListDocumentsFilter) ([]*document.Document, int, error) {
	var out []*document.Document
	for _, d := range f.docs {
		if d.OrganizationID != orgID {
			continue
		}
		if !filter.IncludeUnpublished && !d.IsPublished() {
			continue
		}
		if filter.Role != "" && !d.VisibleTo(filter.Role) {
			continue
		}
		copied := *d
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeDocRepo) AckedDocumentIDs(ctx context.Context, userID string, documentIDs []string) (map[string]bool, error) {
	acked := map[string]bool{}
	for _, id := range documentIDs {
		if f.acks[id][userID] {
			acked[id] = true
		}
	}
	return acked, nil
}

type fakeDocMemberRepo struct {
	member.MemberRepository

	byRole map[member.Role][]string
}

func (f *fakeDocMemberRepo) ListUserIDsByRoles(ctx context.Context, organizationID string, roles []member.Role) ([]string, error) {
	var ids []string
	for _, role := range roles {
		ids = append(ids, f.byRole[role]...)
	}
	return ids, nil
}

type capturedNotifs struct {
	notification.Service

	bulk [][]notification.CreateNotificationRequest
}

func (c *capturedNotifs) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	c.bulk = append(c.bulk, reqs)
	return nil
}

type documentFixture struct {
	repo    *fakeDocRepo
	members *fakeDocMemberRepo
	notifs  *capturedNotifs
	svc     document.Service
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		repo: newFakeDocRepo(),
		members: &fakeDocMemberRepo{byRole: map[member.Role][]string{
			member.RoleOwner:   {"owner-1"},
			member.RoleOfficer: {"officer-1"},
			member.RoleMember:  {"member-1", "member-2"},
		}},
		notifs: &capturedNotifs{},
	}
	f.svc = NewDocumentService(nil, f.repo, f.members, nil, f.notifs)
	return f
}

func TestCreatePublishedNotifiesVisibleMembers(t *testing.T) {
	f := newDocumentFixture()

	resp, err := f.svc.Create(context.Background(), "org-1", "officer-1", &document.CreateDocumentRequest{
		Title:    "Fleet SOP",
		Category: "doctrine",
		Body:     "Form on the flight lead.",
		MinRole:  "member",
		Publish:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "doc-1", resp.ID)
	assert.Equal(t, "doctrine", resp.Category)
	assert.NotEmpty(t, resp.PublishedAt)

	require.Len(t, f.notifs.bulk, 1)
	recipients := map[string]bool{}
	for _, req := range f.notifs.bulk[0] {
		assert.Equal(t, notification.TypeDocumentPublished, req.Type)
		recipients[req.RecipientID] = true
	}
	// The author is skipped; everyone else who can see it is notified.
	assert.False(t, recipients["officer-1"])
	assert.True(t, recipients["owner-1"])
	assert.True(t, recipients["member-1"])
	assert.True(t, recipients["member-2"])
}

func TestCreateDraftDoesNotNotify(t *testing.T) {
	f := newDocumentFixture()

	resp, err := f.svc.Create(context.Background(), "org-1", "officer-1", &document.CreateDocumentRequest{
		Title:   "Draft charter",
		Body:    "WIP",
		MinRole: "member",
	})
	require.NoError(t, err)

	assert.Empty(t, resp.PublishedAt)
	assert.Empty(t, f.notifs.bulk)
}

func TestGetHidesDocumentBelowRoleFloor(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "Command roster",
		Body:    "officers only",
		MinRole: "officer",
		Publish: true,
	})
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), "org-1", "doc-1", "member-1", member.RoleMember)
	assert.ErrorIs(t, err, document.ErrNotVisible)

	resp, err := f.svc.Get(context.Background(), "org-1", "doc-1", "officer-1", member.RoleOfficer)
	require.NoError(t, err)
	assert.Equal(t, "Command roster", resp.Title)
}

func TestGetHidesDraftFromNonManagers(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "Unreleased charter",
		Body:    "soon",
		MinRole: "member",
	})
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), "org-1", "doc-1", "member-1", member.RoleMember)
	assert.ErrorIs(t, err, document.ErrDocumentNotPublished)

	// Managers can read their own drafts.
	_, err = f.svc.Get(context.Background(), "org-1", "doc-1", "owner-1", member.RoleOwner)
	assert.NoError(t, err)
}

func TestPublishIsIdempotent(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "Charter",
		Body:    "v1",
		MinRole: "member",
		Publish: true,
	})
	require.NoError(t, err)

	resp, err := f.svc.Publish(context.Background(), "org-1", "doc-1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PublishedAt)

	// Already published at create time; SetPublished never ran and no
	// second notification batch went out.
	assert.Empty(t, f.repo.published)
	assert.Len(t, f.notifs.bulk, 1)
}

func TestAcknowledgeFlow(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:       "Code of conduct",
		Body:        "be excellent",
		MinRole:     "member",
		RequiresAck: true,
		Publish:     true,
	})
	require.NoError(t, err)

	err = f.svc.Acknowledge(context.Background(), "org-1", "doc-1", "member-1", member.RoleMember)
	require.NoError(t, err)

	err = f.svc.Acknowledge(context.Background(), "org-1", "doc-1", "member-1", member.RoleMember)
	assert.ErrorIs(t, err, document.ErrAlreadyAcknowledged)

	resp, err := f.svc.Get(context.Background(), "org-1", "doc-1", "member-1", member.RoleMember)
	require.NoError(t, err)
	assert.True(t, resp.Acknowledged)
}

func TestAcknowledgeRejectedWhenNotRequired(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "FYI",
		Body:    "no ack needed",
		MinRole: "member",
		Publish: true,
	})
	require.NoError(t, err)

	err = f.svc.Acknowledge(context.Background(), "org-1", "doc-1", "member-1", member.RoleMember)
	assert.ErrorIs(t, err, document.ErrAckNotRequired)
}

func TestDocumentHiddenFromOtherOrg(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "Internal charter",
		Body:    "org-1 business",
		MinRole: "member",
		Publish: true,
	})
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), "org-2", "doc-1", "outsider-1", member.RoleOwner)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)

	_, err = f.svc.Publish(context.Background(), "org-2", "doc-1")
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)

	err = f.svc.Acknowledge(context.Background(), "org-2", "doc-1", "outsider-1", member.RoleOwner)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestListStripsBodiesAndDraftsForMembers(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "Published page",
		Body:    "long body",
		MinRole: "member",
		Publish: true,
	})
	require.NoError(t, err)

	f.repo.nextID = "doc-2"
	_, err = f.svc.Create(context.Background(), "org-1", "owner-1", &document.CreateDocumentRequest{
		Title:   "Draft page",
		Body:    "hidden",
		MinRole: "member",
	})
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), "org-1", "member-1", document.ListDocumentsFilter{
		Role:               member.RoleMember,
		IncludeUnpublished: true, // ignored for non-managers
	})
	require.NoError(t, err)

	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "Published page", resp.Documents[0].Title)
	assert.Empty(t, resp.Documents[0].Body)
}
