package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/application"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
)

type fakeAppRepo struct {
	application.ApplicationRepository

	apps       map[string]application.Application
	nextID     string
	lastStatus application.Status
	rejection  string
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: map[string]application.Application{}, nextID: "app-1"}
}

func (f *fakeAppRepo) Create(ctx context.Context, app application.Application) (application.Application, error) {
	app.ID = f.nextID
	app.SubmittedAt = time.Now()
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeAppRepo) GetByID(ctx context.Context, id string) (application.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return application.Application{}, application.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) ExistsByOrgAndUser(ctx context.Context, organizationID, userID string) (bool, error) {
	for _, app := range f.apps {
		if app.OrganizationID == organizationID && app.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppRepo) UpdateStatus(ctx context.Context, id string, status application.Status, reviewerID string, decidedAt *time.Time) error {
	app := f.apps[id]
	app.Status = status
	f.apps[id] = app
	f.lastStatus = status
	return nil
}

func (f *fakeAppRepo) SetRejection(ctx context.Context, id string, reviewerID string, reason string, decidedAt time.Time) error {
	app := f.apps[id]
	app.Status = application.StatusRejected
	f.apps[id] = app
	f.rejection = reason
	return nil
}

type fakeOrgRepo struct {
	organization.OrganizationRepository

	org organization.Organization
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	if id != f.org.ID {
		return organization.Organization{}, errors.New("no rows")
	}
	return f.org, nil
}

type fakeMemberRepo struct {
	member.MemberRepository

	existing map[string]member.Member // keyed by userID
	staff    []string
}

func (f *fakeMemberRepo) GetByOrgAndUser(ctx context.Context, organizationID, userID string) (member.Member, error) {
	m, ok := f.existing[userID]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) ListUserIDsByRoles(ctx context.Context, organizationID string, roles []member.Role) ([]string, error) {
	return f.staff, nil
}

type queuedNotifs struct {
	notification.Service

	single []notification.CreateNotificationRequest
	bulk   [][]notification.CreateNotificationRequest
}

func (q *queuedNotifs) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	q.single = append(q.single, req)
	return nil
}

func (q *queuedNotifs) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	q.bulk = append(q.bulk, reqs)
	return nil
}

type fakeTemplateRepo struct {
	onboarding.TemplateRepository

	template onboarding.Template
	err      error
}

func (f *fakeTemplateRepo) GetByOrgAndRole(ctx context.Context, organizationID, roleName string) (onboarding.Template, error) {
	if f.err != nil {
		return onboarding.Template{}, f.err
	}
	return f.template, nil
}

type fakeProgressRepo struct {
	onboarding.ProgressRepository

	created *onboarding.Progress
}

func (f *fakeProgressRepo) Create(ctx context.Context, p onboarding.Progress) (onboarding.Progress, error) {
	p.ID = "progress-1"
	f.created = &p
	return p, nil
}

type fixture struct {
	apps      *fakeAppRepo
	orgs      *fakeOrgRepo
	members   *fakeMemberRepo
	templates *fakeTemplateRepo
	progress  *fakeProgressRepo
	notifs    *queuedNotifs
	svc       application.ApplicationService
}

func newFixture(org organization.Organization) *fixture {
	f := &fixture{
		apps:      newFakeAppRepo(),
		orgs:      &fakeOrgRepo{org: org},
		members:   &fakeMemberRepo{existing: map[string]member.Member{}},
		templates: &fakeTemplateRepo{err: onboarding.ErrTemplateNotFound},
		progress:  &fakeProgressRepo{},
		notifs:    &queuedNotifs{},
	}
	f.svc = NewApplicationService(nil, f.apps, f.orgs, f.members, f.templates, f.progress, f.notifs)
	return f
}

func openOrg() organization.Organization {
	return organization.Organization{ID: "org-1", Name: "Drake Interplanetary", RecruitingOpen: true}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())
	f.members.staff = []string{"owner-1", "hr-1"}

	resp, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "I haul cargo through Pyro weekly.",
	})
	require.NoError(t, err)

	assert.Equal(t, application.StatusPending, resp.Status)
	require.Len(t, f.notifs.bulk, 1)
	assert.Len(t, f.notifs.bulk[0], 2)
}

func TestSubmitRejectsClosedRecruiting(t *testing.T) {
	ctx := context.Background()
	org := openOrg()
	org.RecruitingOpen = false
	f := newFixture(org)

	_, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	})
	assert.ErrorIs(t, err, application.ErrRecruitingClosed)
}

func TestSubmitRejectsArchivedOrg(t *testing.T) {
	ctx := context.Background()
	org := openOrg()
	archived := time.Now()
	org.ArchivedAt = &archived
	f := newFixture(org)

	_, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	})
	assert.ErrorIs(t, err, organization.ErrOrganizationArchived)
}

func TestSubmitRejectsExistingMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())
	f.members.existing["user-1"] = member.Member{UserID: "user-1", Role: member.RoleMember}

	_, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	})
	assert.ErrorIs(t, err, application.ErrAlreadyMember)
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	req := application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	}

	_, err := f.svc.Submit(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, req)
	assert.ErrorIs(t, err, application.ErrDuplicateApplication)
}

func TestStartReviewTransition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	resp, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	})
	require.NoError(t, err)

	err = f.svc.StartReview(ctx, "org-1", resp.ID, "reviewer-1")
	require.NoError(t, err)
	assert.Equal(t, application.StatusUnderReview, f.apps.lastStatus)

	// The applicant hears about the move.
	require.NotEmpty(t, f.notifs.single)
	assert.Equal(t, "user-1", f.notifs.single[len(f.notifs.single)-1].RecipientID)
}

func TestStartReviewRejectsDecidedApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	f.apps.apps["app-9"] = application.Application{
		ID:             "app-9",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Status:         application.StatusRejected,
	}

	err := f.svc.StartReview(ctx, "org-1", "app-9", "reviewer-1")
	assert.ErrorIs(t, err, application.ErrInvalidStatusTransition)
}

func TestRejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	resp, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	})
	require.NoError(t, err)

	err = f.svc.Reject(ctx, application.RejectApplicationRequest{
		OrganizationID: "org-1",
		ApplicationID:  resp.ID,
		ReviewerID:     "reviewer-1",
	})
	assert.ErrorIs(t, err, application.ErrRejectionReasonRequired)
}

func TestRejectFromPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	resp, err := f.svc.Submit(ctx, application.SubmitApplicationRequest{
		OrganizationID: "org-1",
		UserID:         "user-1",
		CoverLetter:    "o7",
	})
	require.NoError(t, err)

	err = f.svc.Reject(ctx, application.RejectApplicationRequest{
		OrganizationID: "org-1",
		ApplicationID:  resp.ID,
		ReviewerID:     "reviewer-1",
		Reason:         "No flight time logged.",
	})
	require.NoError(t, err)
	assert.Equal(t, "No flight time logged.", f.apps.rejection)
}

func TestReturnToReviewOnlyFromInterview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	f.apps.apps["app-5"] = application.Application{
		ID:             "app-5",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Status:         application.StatusPending,
	}

	err := f.svc.ReturnToReview(ctx, "org-1", "app-5", "reviewer-1")
	assert.ErrorIs(t, err, application.ErrInvalidStatusTransition)

	f.apps.apps["app-5"] = application.Application{
		ID:             "app-5",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Status:         application.StatusInterviewScheduled,
	}

	err = f.svc.ReturnToReview(ctx, "org-1", "app-5", "reviewer-1")
	require.NoError(t, err)
	assert.Equal(t, application.StatusUnderReview, f.apps.lastStatus)
}

func TestApplicationHiddenFromOtherOrg(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())

	f.apps.apps["app-1"] = application.Application{
		ID:             "app-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
		Status:         application.StatusPending,
	}

	_, err := f.svc.Get(ctx, "org-2", "app-1")
	assert.ErrorIs(t, err, application.ErrApplicationNotFound)

	err = f.svc.StartReview(ctx, "org-2", "app-1", "reviewer-1")
	assert.ErrorIs(t, err, application.ErrApplicationNotFound)

	err = f.svc.Approve(ctx, "org-2", "app-1", "reviewer-1")
	assert.ErrorIs(t, err, application.ErrApplicationNotFound)
	assert.Empty(t, f.members.existing, "no membership may be created through another org's scope")

	err = f.svc.Reject(ctx, application.RejectApplicationRequest{
		OrganizationID: "org-2",
		ApplicationID:  "app-1",
		ReviewerID:     "reviewer-1",
		Reason:         "nope",
	})
	assert.ErrorIs(t, err, application.ErrApplicationNotFound)

	// The right org still sees it.
	resp, err := f.svc.Get(ctx, "org-1", "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", resp.ID)
}

func TestAssignOnboardingSkipsMissingTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())
	f.templates.err = onboarding.ErrTemplateNotFound

	svc := f.svc.(*ApplicationService)
	assigned, err := svc.assignOnboarding(ctx, application.Application{
		ID:             "app-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
	}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, assigned)
	assert.Nil(t, f.progress.created)
}

func TestAssignOnboardingPropagatesLookupFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())
	f.templates.err = errors.New("connection reset")

	svc := f.svc.(*ApplicationService)
	_, err := svc.assignOnboarding(ctx, application.Application{
		ID:             "app-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
	}, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, onboarding.ErrTemplateNotFound)
	assert.Nil(t, f.progress.created)
}

func TestAssignOnboardingCreatesProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(openOrg())
	f.templates.err = nil
	f.templates.template = onboarding.Template{
		ID:                    "tpl-1",
		OrganizationID:        "org-1",
		IsActive:              true,
		EstimatedDurationDays: 7,
	}

	svc := f.svc.(*ApplicationService)
	assigned, err := svc.assignOnboarding(ctx, application.Application{
		ID:             "app-1",
		OrganizationID: "org-1",
		UserID:         "user-1",
	}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, assigned)
	assert.Equal(t, "tpl-1", assigned.TemplateID)
	assert.Equal(t, "user-1", assigned.UserID)
	assert.Equal(t, onboarding.ProgressStatusNotStarted, assigned.Status)
}
