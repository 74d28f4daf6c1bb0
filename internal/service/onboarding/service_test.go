package onboarding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
)

type fakeTemplateRepo struct {
	onboarding.TemplateRepository

	templates map[string]onboarding.Template
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (onboarding.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return onboarding.Template{}, onboarding.ErrTemplateNotFound
	}
	return t, nil
}

func (f *fakeTemplateRepo) Deactivate(ctx context.Context, id string) error {
	t := f.templates[id]
	t.IsActive = false
	f.templates[id] = t
	return nil
}

type fakeProgressRepo struct {
	onboarding.ProgressRepository

	records map[string]onboarding.Progress
	updated *onboarding.Progress
}

func (f *fakeProgressRepo) GetByID(ctx context.Context, id string) (onboarding.Progress, error) {
	p, ok := f.records[id]
	if !ok {
		return onboarding.Progress{}, onboarding.ErrProgressNotFound
	}
	return p, nil
}

func (f *fakeProgressRepo) Update(ctx context.Context, p onboarding.Progress) error {
	f.records[p.ID] = p
	f.updated = &p
	return nil
}

type fakeStaffRepo struct {
	member.MemberRepository
}

func (fakeStaffRepo) ListUserIDsByRoles(ctx context.Context, organizationID string, roles []member.Role) ([]string, error) {
	return nil, nil
}

type silentNotifs struct {
	notification.Service
}

func (silentNotifs) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	return nil
}

func (silentNotifs) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	return nil
}

type onboardingFixture struct {
	templates *fakeTemplateRepo
	progress  *fakeProgressRepo
	svc       onboarding.OnboardingService
}

func newOnboardingFixture() *onboardingFixture {
	f := &onboardingFixture{
		templates: &fakeTemplateRepo{templates: map[string]onboarding.Template{}},
		progress:  &fakeProgressRepo{records: map[string]onboarding.Progress{}},
	}
	f.svc = NewOnboardingService(nil, f.templates, f.progress, fakeStaffRepo{}, silentNotifs{})
	return f
}

func seedChecklist(f *onboardingFixture) {
	f.templates.templates["tpl-1"] = onboarding.Template{
		ID:             "tpl-1",
		OrganizationID: "org-1",
		RoleName:       "member",
		IsActive:       true,
		Tasks: onboarding.Tasks{
			{ID: "task-1", Title: "Read the charter", Required: true},
			{ID: "task-2", Title: "Join the comms server", Required: true},
		},
	}
	f.progress.records["prog-1"] = onboarding.Progress{
		ID:               "prog-1",
		OrganizationID:   "org-1",
		TemplateID:       "tpl-1",
		UserID:           "user-1",
		CompletedTaskIDs: onboarding.CompletedTaskIDs{},
		Status:           onboarding.ProgressStatusNotStarted,
	}
}

func asMember(orgID, userID string, role member.Role) member.Member {
	return member.Member{OrganizationID: orgID, UserID: userID, Role: role}
}

func TestTemplateHiddenFromOtherOrg(t *testing.T) {
	ctx := context.Background()
	f := newOnboardingFixture()
	seedChecklist(f)

	_, err := f.svc.GetTemplate(ctx, "org-2", "tpl-1")
	assert.ErrorIs(t, err, onboarding.ErrTemplateNotFound)

	err = f.svc.DeactivateTemplate(ctx, "org-2", "tpl-1")
	assert.ErrorIs(t, err, onboarding.ErrTemplateNotFound)
	assert.True(t, f.templates.templates["tpl-1"].IsActive)

	resp, err := f.svc.GetTemplate(ctx, "org-1", "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "tpl-1", resp.ID)
}

func TestProgressHiddenFromOtherOrg(t *testing.T) {
	ctx := context.Background()
	f := newOnboardingFixture()
	seedChecklist(f)

	_, err := f.svc.GetProgress(ctx, "org-2", "prog-1")
	assert.ErrorIs(t, err, onboarding.ErrProgressNotFound)

	_, err = f.svc.SetTaskCompletion(ctx, asMember("org-2", "user-1", member.RoleMember), onboarding.TaskCompletionRequest{
		ProgressID: "prog-1",
		TaskID:     "task-1",
		Completed:  true,
	})
	assert.ErrorIs(t, err, onboarding.ErrProgressNotFound)
	assert.Nil(t, f.progress.updated)
}

func TestSetTaskCompletionRequiresAssigneeOrManager(t *testing.T) {
	ctx := context.Background()
	f := newOnboardingFixture()
	seedChecklist(f)

	// A different plain member cannot tick someone else's checklist.
	_, err := f.svc.SetTaskCompletion(ctx, asMember("org-1", "user-2", member.RoleMember), onboarding.TaskCompletionRequest{
		ProgressID: "prog-1",
		TaskID:     "task-1",
		Completed:  true,
	})
	assert.ErrorIs(t, err, onboarding.ErrNotAssignee)
	assert.Nil(t, f.progress.updated)

	// The assignee can.
	resp, err := f.svc.SetTaskCompletion(ctx, asMember("org-1", "user-1", member.RoleMember), onboarding.TaskCompletionRequest{
		ProgressID: "prog-1",
		TaskID:     "task-1",
		Completed:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.CompletionPercentage)

	// So can a role holding onboarding.manage.
	resp, err = f.svc.SetTaskCompletion(ctx, asMember("org-1", "hr-1", member.RoleHR), onboarding.TaskCompletionRequest{
		ProgressID: "prog-1",
		TaskID:     "task-2",
		Completed:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, onboarding.ProgressStatusCompleted, resp.Status)
}
