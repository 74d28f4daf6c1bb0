package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/application"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
)

// hrRoles is who gets notified about incoming applications.
var hrRoles = []member.Role{member.RoleOwner, member.RoleOfficer, member.RoleHR}

type ApplicationService struct {
	db *database.DB
	application.ApplicationRepository
	orgRepo      organization.OrganizationRepository
	memberRepo   member.MemberRepository
	templateRepo onboarding.TemplateRepository
	progressRepo onboarding.ProgressRepository
	notifService notification.Service
}

func NewApplicationService(
	db *database.DB,
	applicationRepository application.ApplicationRepository,
	organizationRepository organization.OrganizationRepository,
	memberRepository member.MemberRepository,
	templateRepository onboarding.TemplateRepository,
	progressRepository onboarding.ProgressRepository,
	notifService notification.Service,
) application.ApplicationService {
	return &ApplicationService{
		db:                    db,
		ApplicationRepository: applicationRepository,
		orgRepo:               organizationRepository,
		memberRepo:            memberRepository,
		templateRepo:          templateRepository,
		progressRepo:          progressRepository,
		notifService:          notifService,
	}
}

// Submit files a new application. The duplicate guard keys on the existence
// of any prior row for the (org, user) pair, decided or not: a rejected
// applicant cannot simply re-apply. The schema repeats the guard with a
// unique constraint so concurrent submits cannot race past this check.
func (s *ApplicationService) Submit(ctx context.Context, req application.SubmitApplicationRequest) (application.ApplicationResponse, error) {
	org, err := s.orgRepo.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return application.ApplicationResponse{}, fmt.Errorf("failed to get organization: %w", err)
	}
	if org.IsArchived() {
		return application.ApplicationResponse{}, organization.ErrOrganizationArchived
	}
	if !org.RecruitingOpen {
		return application.ApplicationResponse{}, application.ErrRecruitingClosed
	}

	if _, err := s.memberRepo.GetByOrgAndUser(ctx, req.OrganizationID, req.UserID); err == nil {
		return application.ApplicationResponse{}, application.ErrAlreadyMember
	}

	exists, err := s.ApplicationRepository.ExistsByOrgAndUser(ctx, req.OrganizationID, req.UserID)
	if err != nil {
		return application.ApplicationResponse{}, fmt.Errorf("failed to check for existing application: %w", err)
	}
	if exists {
		return application.ApplicationResponse{}, application.ErrDuplicateApplication
	}

	app := application.Application{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		CoverLetter:    req.CoverLetter,
		Experience:     req.Experience,
		Availability:   req.Availability,
		CustomFields:   req.CustomFields,
		Status:         application.StatusPending,
	}

	created, err := s.ApplicationRepository.Create(ctx, app)
	if err != nil {
		return application.ApplicationResponse{}, fmt.Errorf("failed to create application: %w", err)
	}

	s.notifyHRStaff(ctx, org, created)

	return application.ToResponse(created), nil
}

func (s *ApplicationService) Get(ctx context.Context, organizationID, id string) (application.ApplicationResponse, error) {
	app, err := s.getForOrg(ctx, organizationID, id)
	if err != nil {
		return application.ApplicationResponse{}, err
	}
	return application.ToResponse(app), nil
}

func (s *ApplicationService) ListByOrganization(ctx context.Context, organizationID string, filter application.ListApplicationsFilter) (application.ListApplicationsResponse, error) {
	normalizeFilter(&filter)

	apps, total, err := s.ApplicationRepository.ListByOrganization(ctx, organizationID, filter)
	if err != nil {
		return application.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}

	return toListResponse(apps, total, filter), nil
}

func (s *ApplicationService) ListMine(ctx context.Context, userID string, filter application.ListApplicationsFilter) (application.ListApplicationsResponse, error) {
	normalizeFilter(&filter)

	apps, total, err := s.ApplicationRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return application.ListApplicationsResponse{}, fmt.Errorf("failed to list applications: %w", err)
	}

	return toListResponse(apps, total, filter), nil
}

func (s *ApplicationService) StartReview(ctx context.Context, organizationID, applicationID, reviewerID string) error {
	app, err := s.guardTransition(ctx, organizationID, applicationID, application.StatusUnderReview)
	if err != nil {
		return err
	}

	if err := s.ApplicationRepository.UpdateStatus(ctx, applicationID, application.StatusUnderReview, reviewerID, nil); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	s.notifyApplicant(ctx, app, application.StatusUnderReview, "Your application is now under review.")
	return nil
}

func (s *ApplicationService) ScheduleInterview(ctx context.Context, req application.ScheduleInterviewRequest) error {
	app, err := s.guardTransition(ctx, req.OrganizationID, req.ApplicationID, application.StatusInterviewScheduled)
	if err != nil {
		return err
	}

	if err := s.ApplicationRepository.SetInterview(ctx, req.ApplicationID, req.ReviewerID, req.InterviewTime()); err != nil {
		return fmt.Errorf("failed to schedule interview: %w", err)
	}

	s.notifyApplicant(ctx, app, application.StatusInterviewScheduled,
		"An interview has been scheduled for "+req.InterviewTime().Format("2006-01-02 15:04 MST")+".")
	return nil
}

func (s *ApplicationService) ReturnToReview(ctx context.Context, organizationID, applicationID, reviewerID string) error {
	app, err := s.getForOrg(ctx, organizationID, applicationID)
	if err != nil {
		return err
	}
	if app.Status != application.StatusInterviewScheduled {
		return fmt.Errorf("%w: only a scheduled interview can be walked back", application.ErrInvalidStatusTransition)
	}
	if err := application.ValidateTransition(app.Status, application.StatusUnderReview); err != nil {
		return err
	}

	if err := s.ApplicationRepository.UpdateStatus(ctx, applicationID, application.StatusUnderReview, reviewerID, nil); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	return nil
}

// Approve runs the full acceptance in one transaction: terminal status,
// membership creation, the cached member count, and the onboarding
// assignment when the org has an active template for new members.
func (s *ApplicationService) Approve(ctx context.Context, organizationID, applicationID, reviewerID string) error {
	app, err := s.guardTransition(ctx, organizationID, applicationID, application.StatusApproved)
	if err != nil {
		return err
	}

	var assigned *onboarding.Progress
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		now := time.Now()

		var err error
		if err = s.ApplicationRepository.UpdateStatus(txCtx, applicationID, application.StatusApproved, reviewerID, &now); err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}

		m := member.Member{
			OrganizationID: app.OrganizationID,
			UserID:         app.UserID,
			Role:           member.RoleMember,
		}
		if _, err := s.memberRepo.Create(txCtx, m); err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}

		if err := s.orgRepo.AdjustMemberCount(txCtx, app.OrganizationID, 1); err != nil {
			return fmt.Errorf("failed to adjust member count: %w", err)
		}

		assigned, err = s.assignOnboarding(txCtx, app, now)
		return err
	})
	if err != nil {
		return err
	}

	s.notifyApplicant(ctx, app, application.StatusApproved, "Welcome aboard! Your application was approved.")
	if assigned != nil {
		s.queue(ctx, notification.CreateNotificationRequest{
			OrganizationID: app.OrganizationID,
			RecipientID:    app.UserID,
			Type:           notification.TypeOnboardingAssigned,
			Title:          "Onboarding assigned",
			Message:        "Your onboarding checklist is ready.",
			Data:           map[string]interface{}{"progress_id": assigned.ID},
		})
	}

	return nil
}

// assignOnboarding starts the member-role checklist for a freshly approved
// applicant. A missing template is the common case and assigns nothing; any
// other template lookup failure aborts the approval.
func (s *ApplicationService) assignOnboarding(ctx context.Context, app application.Application, now time.Time) (*onboarding.Progress, error) {
	template, err := s.templateRepo.GetByOrgAndRole(ctx, app.OrganizationID, string(member.RoleMember))
	if errors.Is(err, onboarding.ErrTemplateNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up onboarding template: %w", err)
	}
	if !template.IsActive {
		return nil, nil
	}

	progress := onboarding.Progress{
		OrganizationID:   app.OrganizationID,
		TemplateID:       template.ID,
		UserID:           app.UserID,
		CompletedTaskIDs: onboarding.CompletedTaskIDs{},
		Status:           onboarding.ProgressStatusNotStarted,
		StartedAt:        now,
		DueAt:            onboarding.EstimatedCompletionDate(now, template.EstimatedDurationDays),
	}
	created, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to assign onboarding: %w", err)
	}
	return &created, nil
}

func (s *ApplicationService) Reject(ctx context.Context, req application.RejectApplicationRequest) error {
	app, err := s.guardTransition(ctx, req.OrganizationID, req.ApplicationID, application.StatusRejected)
	if err != nil {
		return err
	}
	if req.Reason == "" {
		return application.ErrRejectionReasonRequired
	}

	if err := s.ApplicationRepository.SetRejection(ctx, req.ApplicationID, req.ReviewerID, req.Reason, time.Now()); err != nil {
		return fmt.Errorf("failed to reject application: %w", err)
	}

	s.notifyApplicant(ctx, app, application.StatusRejected, "Your application was not accepted: "+req.Reason)
	return nil
}

func (s *ApplicationService) SaveReviewNotes(ctx context.Context, req application.UpdateReviewNotesRequest) error {
	app, err := s.getForOrg(ctx, req.OrganizationID, req.ApplicationID)
	if err != nil {
		return err
	}
	if application.IsTerminal(app.Status) {
		return fmt.Errorf("%w: application is already decided", application.ErrInvalidStatusTransition)
	}

	if err := s.ApplicationRepository.SetReviewNotes(ctx, req.ApplicationID, req.ReviewerID, req.Notes); err != nil {
		return fmt.Errorf("failed to save review notes: %w", err)
	}

	return nil
}

// guardTransition loads the application and checks the requested move
// against the transition table before any write happens.
func (s *ApplicationService) guardTransition(ctx context.Context, organizationID, applicationID string, requested application.Status) (application.Application, error) {
	app, err := s.getForOrg(ctx, organizationID, applicationID)
	if err != nil {
		return application.Application{}, err
	}

	if err := application.ValidateTransition(app.Status, requested); err != nil {
		return application.Application{}, err
	}

	return app, nil
}

// getForOrg loads an application and hides it when it was filed with a
// different organization than the one the caller is operating in.
func (s *ApplicationService) getForOrg(ctx context.Context, organizationID, applicationID string) (application.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, fmt.Errorf("failed to get application: %w", err)
	}
	if app.OrganizationID != organizationID {
		return application.Application{}, application.ErrApplicationNotFound
	}
	return app, nil
}

func (s *ApplicationService) notifyHRStaff(ctx context.Context, org organization.Organization, app application.Application) {
	staff, err := s.memberRepo.ListUserIDsByRoles(ctx, org.ID, hrRoles)
	if err != nil {
		slog.Error("failed to resolve HR staff for notification", "org_id", org.ID, "error", err)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(staff))
	for _, userID := range staff {
		reqs = append(reqs, notification.CreateNotificationRequest{
			OrganizationID: org.ID,
			RecipientID:    userID,
			SenderID:       &app.UserID,
			Type:           notification.TypeApplicationReceived,
			Title:          "New application",
			Message:        fmt.Sprintf("A new application was submitted to %s.", org.Name),
			Data:           map[string]interface{}{"application_id": app.ID},
		})
	}

	if err := s.notifService.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("failed to queue application notifications", "error", err)
	}
}

func (s *ApplicationService) notifyApplicant(ctx context.Context, app application.Application, status application.Status, message string) {
	s.queue(ctx, notification.CreateNotificationRequest{
		OrganizationID: app.OrganizationID,
		RecipientID:    app.UserID,
		Type:           notification.TypeApplicationStatus,
		Title:          "Application " + string(status),
		Message:        message,
		Data:           map[string]interface{}{"application_id": app.ID, "status": string(status)},
	})
}

func (s *ApplicationService) queue(ctx context.Context, req notification.CreateNotificationRequest) {
	if err := s.notifService.QueueNotification(ctx, req); err != nil {
		slog.Error("failed to queue notification", "type", string(req.Type), "error", err)
	}
}

func normalizeFilter(filter *application.ListApplicationsFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
}

func toListResponse(apps []application.Application, total int64, filter application.ListApplicationsFilter) application.ListApplicationsResponse {
	responses := make([]application.ApplicationResponse, len(apps))
	for i, app := range apps {
		responses[i] = application.ToResponse(app)
	}

	return application.ListApplicationsResponse{
		Applications: responses,
		Total:        total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}
}
