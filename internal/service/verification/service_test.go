package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/domain/user"
	"github.com/versecrew/versecrew-backend-go/internal/domain/verification"
)

type fakeCodeRepo struct {
	verification.Repository

	active      *verification.Code
	deactivated int
	consumedID  string
}

func (f *fakeCodeRepo) Create(ctx context.Context, c *verification.Code) (*verification.Code, error) {
	c.ID = "code-1"
	c.CreatedAt = time.Now()
	f.active = c
	return c, nil
}

func (f *fakeCodeRepo) GetActiveBySubject(ctx context.Context, subjectType verification.SubjectType, subjectID string, now time.Time) (*verification.Code, error) {
	if f.active == nil || f.active.SubjectType != subjectType || f.active.SubjectID != subjectID {
		return nil, verification.ErrCodeNotFound
	}
	return f.active, nil
}

func (f *fakeCodeRepo) DeactivateBySubject(ctx context.Context, subjectType verification.SubjectType, subjectID string) error {
	if f.active != nil {
		f.deactivated++
		f.active = nil
	}
	return nil
}

func (f *fakeCodeRepo) Consume(ctx context.Context, id string, at time.Time) error {
	f.consumedID = id
	return nil
}

type fakeUserRepo struct {
	user.UserRepository

	user     user.User
	verified bool
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if id != f.user.ID {
		return user.User{}, errors.New("no rows")
	}
	return f.user, nil
}

func (f *fakeUserRepo) SetHandleVerified(ctx context.Context, id string, verified bool) error {
	f.verified = verified
	return nil
}

type fakeOrgRepo struct {
	organization.OrganizationRepository

	org      organization.Organization
	verified bool
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	if id != f.org.ID {
		return organization.Organization{}, errors.New("no rows")
	}
	return f.org, nil
}

func (f *fakeOrgRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	f.verified = verified
	return nil
}

type fakeMemberRepo struct {
	member.MemberRepository

	member member.Member
	err    error
}

func (f *fakeMemberRepo) GetByOrgAndUser(ctx context.Context, organizationID, userID string) (member.Member, error) {
	if f.err != nil {
		return member.Member{}, f.err
	}
	return f.member, nil
}

// fakeFetcher serves a canned page body for every handle and SID.
type fakeFetcher struct {
	body string
	err  error
}

func (f *fakeFetcher) CitizenPage(ctx context.Context, handle string) (string, error) {
	return f.body, f.err
}

func (f *fakeFetcher) OrganizationPage(ctx context.Context, sid string) (string, error) {
	return f.body, f.err
}

func newUserService(u user.User, fetcher *fakeFetcher) (*fakeCodeRepo, verification.Service) {
	codes := &fakeCodeRepo{}
	svc := NewVerificationService(codes, &fakeUserRepo{user: u}, &fakeOrgRepo{}, &fakeMemberRepo{}, fetcher)
	return codes, svc
}

func TestStartHandleVerification(t *testing.T) {
	ctx := context.Background()
	u := user.User{ID: "user-1", Handle: "StarLancer"}
	codes, svc := newUserService(u, &fakeFetcher{})

	resp, err := svc.Start(ctx, "user-1", &verification.StartVerificationRequest{
		SubjectType: "user",
		SubjectID:   "user-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, "user", resp.SubjectType)
	assert.Contains(t, resp.Instructions, "StarLancer")
	assert.NotNil(t, codes.active)
}

func TestStartReplacesPriorCode(t *testing.T) {
	ctx := context.Background()
	u := user.User{ID: "user-1", Handle: "StarLancer"}
	codes, svc := newUserService(u, &fakeFetcher{})

	req := &verification.StartVerificationRequest{SubjectType: "user", SubjectID: "user-1"}

	first, err := svc.Start(ctx, "user-1", req)
	require.NoError(t, err)

	second, err := svc.Start(ctx, "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, 1, codes.deactivated)
	assert.NotEqual(t, first.Code, second.Code)
}

func TestStartRejectsOtherUsersHandle(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserService(user.User{ID: "user-1", Handle: "StarLancer"}, &fakeFetcher{})

	_, err := svc.Start(ctx, "user-2", &verification.StartVerificationRequest{
		SubjectType: "user",
		SubjectID:   "user-1",
	})
	assert.ErrorIs(t, err, verification.ErrSubjectMismatch)
}

func TestStartRejectsVerifiedHandle(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserService(user.User{ID: "user-1", Handle: "StarLancer", HandleVerified: true}, &fakeFetcher{})

	_, err := svc.Start(ctx, "user-1", &verification.StartVerificationRequest{
		SubjectType: "user",
		SubjectID:   "user-1",
	})
	assert.ErrorIs(t, err, verification.ErrAlreadyVerified)
}

func TestConfirmHandleVerification(t *testing.T) {
	ctx := context.Background()
	u := user.User{ID: "user-1", Handle: "StarLancer"}
	fetcher := &fakeFetcher{}

	codes := &fakeCodeRepo{}
	users := &fakeUserRepo{user: u}
	svc := NewVerificationService(codes, users, &fakeOrgRepo{}, &fakeMemberRepo{}, fetcher)

	started, err := svc.Start(ctx, "user-1", &verification.StartVerificationRequest{
		SubjectType: "user",
		SubjectID:   "user-1",
	})
	require.NoError(t, err)

	fetcher.body = "I fly for the UEE. " + started.Code + " o7"

	resp, err := svc.Confirm(ctx, "user-1", "user", "user-1")
	require.NoError(t, err)

	assert.True(t, resp.Verified)
	assert.True(t, users.verified)
	assert.Equal(t, "code-1", codes.consumedID)
}

func TestConfirmCodeNotOnPage(t *testing.T) {
	ctx := context.Background()
	u := user.User{ID: "user-1", Handle: "StarLancer"}
	fetcher := &fakeFetcher{body: "just a bio, no code here"}

	codes, svc := newUserService(u, fetcher)
	codes.active = verification.NewCode(verification.SubjectUser, "user-1", "user-1", time.Now())
	codes.active.ID = "code-1"

	_, err := svc.Confirm(ctx, "user-1", "user", "user-1")
	assert.ErrorIs(t, err, verification.ErrCodeNotOnPage)
}

func TestConfirmExpiredCode(t *testing.T) {
	ctx := context.Background()
	u := user.User{ID: "user-1", Handle: "StarLancer"}

	codes, svc := newUserService(u, &fakeFetcher{})
	codes.active = verification.NewCode(verification.SubjectUser, "user-1", "user-1", time.Now())
	codes.active.ExpiresAt = time.Now().Add(-time.Minute)

	_, err := svc.Confirm(ctx, "user-1", "user", "user-1")
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
}

func TestConfirmPageUnavailable(t *testing.T) {
	ctx := context.Background()
	u := user.User{ID: "user-1", Handle: "StarLancer"}
	fetcher := &fakeFetcher{err: errors.New("rsi.com timed out")}

	codes, svc := newUserService(u, fetcher)
	codes.active = verification.NewCode(verification.SubjectUser, "user-1", "user-1", time.Now())

	_, err := svc.Confirm(ctx, "user-1", "user", "user-1")
	assert.ErrorIs(t, err, verification.ErrPageUnavailable)
}

func TestOrgVerificationRequiresOrgManage(t *testing.T) {
	ctx := context.Background()
	org := organization.Organization{ID: "org-1", SID: "DRAKE"}

	codes := &fakeCodeRepo{}
	orgs := &fakeOrgRepo{org: org}
	members := &fakeMemberRepo{member: member.Member{Role: member.RoleMember}}
	svc := NewVerificationService(codes, &fakeUserRepo{}, orgs, members, &fakeFetcher{})

	_, err := svc.Start(ctx, "user-1", &verification.StartVerificationRequest{
		SubjectType: "organization",
		SubjectID:   "org-1",
	})
	assert.ErrorIs(t, err, verification.ErrSubjectMismatch)
}

func TestOrgVerificationConfirm(t *testing.T) {
	ctx := context.Background()
	org := organization.Organization{ID: "org-1", SID: "DRAKE"}
	fetcher := &fakeFetcher{}

	codes := &fakeCodeRepo{}
	orgs := &fakeOrgRepo{org: org}
	members := &fakeMemberRepo{member: member.Member{Role: member.RoleOwner}}
	svc := NewVerificationService(codes, &fakeUserRepo{}, orgs, members, fetcher)

	started, err := svc.Start(ctx, "user-1", &verification.StartVerificationRequest{
		SubjectType: "organization",
		SubjectID:   "org-1",
	})
	require.NoError(t, err)
	assert.Contains(t, started.Instructions, "DRAKE")

	fetcher.body = "Founded 2951. " + started.Code

	resp, err := svc.Confirm(ctx, "user-1", "organization", "org-1")
	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.True(t, orgs.verified)
}
