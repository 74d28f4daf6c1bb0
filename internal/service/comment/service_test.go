package comment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/comment"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
)

type fakeCommentRepo struct {
	comment.Repository

	comments map[string]*comment.Comment
	rated    map[string]bool // orgID/authorID
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: map[string]*comment.Comment{},
		rated:    map[string]bool{},
	}
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) HasRatedComment(ctx context.Context, orgID, authorID string, excludeID *string) (bool, error) {
	return f.rated[orgID+"/"+authorID], nil
}

func (f *fakeCommentRepo) ListByOrganization(ctx context.Context, orgID string, filter comment.ListCommentsFilter) ([]*comment.Comment, int, error) {
	var out []*comment.Comment
	for _, c := range f.comments {
		if c.OrganizationID != orgID {
			continue
		}
		if filter.RatedOnly && c.Rating == nil {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	return out, len(out), nil
}

type fakeCommentOrgRepo struct {
	organization.OrganizationRepository

	org organization.Organization
}

func (f *fakeCommentOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	if id != f.org.ID {
		return organization.Organization{}, errors.New("no rows")
	}
	return f.org, nil
}

type commentFixture struct {
	repo *fakeCommentRepo
	orgs *fakeCommentOrgRepo
	svc  comment.Service
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		repo: newFakeCommentRepo(),
		orgs: &fakeCommentOrgRepo{org: organization.Organization{ID: "org-1", Name: "Drake Interplanetary Fan Club"}},
	}
	f.svc = NewCommentService(nil, f.repo, f.orgs, nil, nil)
	return f
}

func intPtr(v int) *int { return &v }

func TestPostRejectsArchivedOrganization(t *testing.T) {
	f := newCommentFixture()
	now := time.Now()
	f.orgs.org.ArchivedAt = &now

	_, err := f.svc.Post(context.Background(), "org-1", "user-1", &comment.PostCommentRequest{
		Body: "o7",
	})
	assert.ErrorIs(t, err, organization.ErrOrganizationArchived)
}

func TestPostRejectsSecondRatedComment(t *testing.T) {
	f := newCommentFixture()
	f.repo.rated["org-1/user-1"] = true

	_, err := f.svc.Post(context.Background(), "org-1", "user-1", &comment.PostCommentRequest{
		Body:   "still great",
		Rating: intPtr(5),
	})
	assert.ErrorIs(t, err, comment.ErrAlreadyRated)
}

func TestUpdateRejectsNonAuthor(t *testing.T) {
	f := newCommentFixture()
	f.repo.comments["c-1"] = &comment.Comment{
		ID:             "c-1",
		OrganizationID: "org-1",
		AuthorID:       "user-1",
		Body:           "original",
	}

	_, err := f.svc.Update(context.Background(), "org-1", "c-1", "user-2", &comment.UpdateCommentRequest{
		Body: "hijacked",
	})
	assert.ErrorIs(t, err, comment.ErrNotAuthor)
}

func TestUpdateRejectsAddingSecondRating(t *testing.T) {
	f := newCommentFixture()
	f.repo.comments["c-1"] = &comment.Comment{
		ID:             "c-1",
		OrganizationID: "org-1",
		AuthorID:       "user-1",
		Body:           "unrated comment",
	}
	// The user's rating lives on a different comment.
	f.repo.rated["org-1/user-1"] = true

	_, err := f.svc.Update(context.Background(), "org-1", "c-1", "user-1", &comment.UpdateCommentRequest{
		Body:   "now with a score",
		Rating: intPtr(4),
	})
	assert.ErrorIs(t, err, comment.ErrAlreadyRated)
}

func TestDeleteRejectsNonAuthorWithoutModerator(t *testing.T) {
	f := newCommentFixture()
	f.repo.comments["c-1"] = &comment.Comment{
		ID:             "c-1",
		OrganizationID: "org-1",
		AuthorID:       "user-1",
		Body:           "keep me",
	}

	err := f.svc.Delete(context.Background(), "org-1", "c-1", "user-2", false)
	assert.ErrorIs(t, err, comment.ErrNotAuthor)
}

func TestCommentHiddenFromOtherOrg(t *testing.T) {
	f := newCommentFixture()
	f.repo.comments["c-1"] = &comment.Comment{
		ID:             "c-1",
		OrganizationID: "org-1",
		AuthorID:       "user-1",
		Body:           "org-1 gossip",
	}

	_, err := f.svc.Update(context.Background(), "org-2", "c-1", "user-1", &comment.UpdateCommentRequest{
		Body: "edited from elsewhere",
	})
	assert.ErrorIs(t, err, comment.ErrCommentNotFound)

	// Even a moderator flag from another org's scope gets a not-found.
	err = f.svc.Delete(context.Background(), "org-2", "c-1", "mod-1", true)
	assert.ErrorIs(t, err, comment.ErrCommentNotFound)
}

func TestListFiltersRatedOnly(t *testing.T) {
	f := newCommentFixture()
	f.repo.comments["c-1"] = &comment.Comment{
		ID: "c-1", OrganizationID: "org-1", AuthorID: "user-1",
		Body: "rated", Rating: intPtr(4),
	}
	f.repo.comments["c-2"] = &comment.Comment{
		ID: "c-2", OrganizationID: "org-1", AuthorID: "user-2",
		Body: "just words",
	}

	resp, err := f.svc.List(context.Background(), "org-1", comment.ListCommentsFilter{RatedOnly: true})
	require.NoError(t, err)

	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "c-1", resp.Comments[0].ID)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}

func TestRatingsEqual(t *testing.T) {
	assert.True(t, ratingsEqual(nil, nil))
	assert.True(t, ratingsEqual(intPtr(3), intPtr(3)))
	assert.False(t, ratingsEqual(nil, intPtr(3)))
	assert.False(t, ratingsEqual(intPtr(3), nil))
	assert.False(t, ratingsEqual(intPtr(3), intPtr(4)))
}
