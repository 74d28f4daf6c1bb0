package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
)

var hrRoles = []member.Role{member.RoleOwner, member.RoleOfficer, member.RoleHR}

type OnboardingService struct {
	db *database.DB
	onboarding.TemplateRepository
	onboarding.ProgressRepository
	memberRepo   member.MemberRepository
	notifService notification.Service
}

func NewOnboardingService(
	db *database.DB,
	templateRepository onboarding.TemplateRepository,
	progressRepository onboarding.ProgressRepository,
	memberRepository member.MemberRepository,
	notifService notification.Service,
) onboarding.OnboardingService {
	return &OnboardingService{
		db:                 db,
		TemplateRepository: templateRepository,
		ProgressRepository: progressRepository,
		memberRepo:         memberRepository,
		notifService:       notifService,
	}
}

func (s *OnboardingService) CreateTemplate(ctx context.Context, req onboarding.CreateTemplateRequest) (onboarding.TemplateResponse, error) {
	if _, err := s.TemplateRepository.GetByOrgAndRole(ctx, req.OrganizationID, req.RoleName); err == nil {
		return onboarding.TemplateResponse{}, onboarding.ErrTemplateNameTaken
	}

	template := onboarding.Template{
		OrganizationID:        req.OrganizationID,
		RoleName:              req.RoleName,
		Description:           req.Description,
		Tasks:                 buildTasks(req.Tasks),
		EstimatedDurationDays: req.EstimatedDurationDays,
		IsActive:              true,
	}

	created, err := s.TemplateRepository.Create(ctx, template)
	if err != nil {
		return onboarding.TemplateResponse{}, fmt.Errorf("failed to create template: %w", err)
	}

	return onboarding.ToTemplateResponse(created), nil
}

func (s *OnboardingService) GetTemplate(ctx context.Context, organizationID, id string) (onboarding.TemplateResponse, error) {
	template, err := s.templateForOrg(ctx, organizationID, id)
	if err != nil {
		return onboarding.TemplateResponse{}, err
	}
	return onboarding.ToTemplateResponse(template), nil
}

func (s *OnboardingService) ListTemplates(ctx context.Context, organizationID string, includeInactive bool) ([]onboarding.TemplateResponse, error) {
	templates, err := s.TemplateRepository.ListByOrganization(ctx, organizationID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	responses := make([]onboarding.TemplateResponse, len(templates))
	for i, t := range templates {
		responses[i] = onboarding.ToTemplateResponse(t)
	}
	return responses, nil
}

func (s *OnboardingService) UpdateTemplate(ctx context.Context, req onboarding.UpdateTemplateRequest) (onboarding.TemplateResponse, error) {
	template, err := s.templateForOrg(ctx, req.OrganizationID, req.ID)
	if err != nil {
		return onboarding.TemplateResponse{}, err
	}

	if req.RoleName != nil && *req.RoleName != template.RoleName {
		if _, err := s.TemplateRepository.GetByOrgAndRole(ctx, template.OrganizationID, *req.RoleName); err == nil {
			return onboarding.TemplateResponse{}, onboarding.ErrTemplateNameTaken
		}
		template.RoleName = *req.RoleName
	}
	if req.Description != nil {
		template.Description = req.Description
	}
	if req.Tasks != nil {
		template.Tasks = buildTasks(req.Tasks)
	}
	if req.EstimatedDurationDays != nil {
		template.EstimatedDurationDays = *req.EstimatedDurationDays
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.TemplateRepository.Update(ctx, template); err != nil {
		return onboarding.TemplateResponse{}, fmt.Errorf("failed to update template: %w", err)
	}

	return onboarding.ToTemplateResponse(template), nil
}

// DeactivateTemplate soft-disables a template. Existing progress keeps its
// frozen task list; the template just stops being assignable.
func (s *OnboardingService) DeactivateTemplate(ctx context.Context, organizationID, id string) error {
	if _, err := s.templateForOrg(ctx, organizationID, id); err != nil {
		return err
	}

	if err := s.TemplateRepository.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate template: %w", err)
	}

	return nil
}

func (s *OnboardingService) Assign(ctx context.Context, req onboarding.AssignTemplateRequest) (onboarding.ProgressResponse, error) {
	template, err := s.TemplateRepository.GetByID(ctx, req.TemplateID)
	if err != nil {
		return onboarding.ProgressResponse{}, fmt.Errorf("failed to get template: %w", err)
	}
	if template.OrganizationID != req.OrganizationID {
		return onboarding.ProgressResponse{}, onboarding.ErrTemplateNotFound
	}
	if !template.IsActive {
		return onboarding.ProgressResponse{}, onboarding.ErrTemplateInactive
	}

	if _, err := s.memberRepo.GetByOrgAndUser(ctx, req.OrganizationID, req.UserID); err != nil {
		return onboarding.ProgressResponse{}, fmt.Errorf("failed to get membership: %w", err)
	}

	active, err := s.ProgressRepository.ExistsActive(ctx, req.TemplateID, req.UserID)
	if err != nil {
		return onboarding.ProgressResponse{}, fmt.Errorf("failed to check active progress: %w", err)
	}
	if active {
		return onboarding.ProgressResponse{}, onboarding.ErrAlreadyAssigned
	}

	now := time.Now()
	progress := onboarding.Progress{
		OrganizationID:   req.OrganizationID,
		TemplateID:       req.TemplateID,
		UserID:           req.UserID,
		CompletedTaskIDs: onboarding.CompletedTaskIDs{},
		Status:           onboarding.ProgressStatusNotStarted,
		StartedAt:        now,
		DueAt:            onboarding.EstimatedCompletionDate(now, template.EstimatedDurationDays),
	}

	created, err := s.ProgressRepository.Create(ctx, progress)
	if err != nil {
		return onboarding.ProgressResponse{}, fmt.Errorf("failed to create progress: %w", err)
	}

	s.queue(ctx, notification.CreateNotificationRequest{
		OrganizationID: req.OrganizationID,
		RecipientID:    req.UserID,
		Type:           notification.TypeOnboardingAssigned,
		Title:          "Onboarding assigned",
		Message:        fmt.Sprintf("You have been assigned the %s onboarding checklist.", template.RoleName),
		Data:           map[string]interface{}{"progress_id": created.ID},
	})

	return onboarding.ToProgressResponse(created), nil
}

func (s *OnboardingService) GetProgress(ctx context.Context, organizationID, id string) (onboarding.ProgressResponse, error) {
	progress, err := s.progressForOrg(ctx, organizationID, id)
	if err != nil {
		return onboarding.ProgressResponse{}, err
	}
	return onboarding.ToProgressResponse(progress), nil
}

func (s *OnboardingService) ListOrgProgress(ctx context.Context, organizationID string, filter onboarding.ListProgressFilter) (onboarding.ListProgressResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	records, total, err := s.ProgressRepository.ListByOrganization(ctx, organizationID, filter)
	if err != nil {
		return onboarding.ListProgressResponse{}, fmt.Errorf("failed to list progress: %w", err)
	}

	responses := make([]onboarding.ProgressResponse, len(records))
	for i, p := range records {
		responses[i] = onboarding.ToProgressResponse(p)
	}

	return onboarding.ListProgressResponse{
		Progress: responses,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *OnboardingService) ListMyProgress(ctx context.Context, userID string) ([]onboarding.ProgressResponse, error) {
	records, err := s.ProgressRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}

	responses := make([]onboarding.ProgressResponse, len(records))
	for i, p := range records {
		responses[i] = onboarding.ToProgressResponse(p)
	}
	return responses, nil
}

// SetTaskCompletion ticks or unticks a task and recomputes the derived
// fields from scratch. The stored percentage is never incremented in place.
// Only the assignee or a holder of onboarding.manage can tick tasks.
func (s *OnboardingService) SetTaskCompletion(ctx context.Context, caller member.Member, req onboarding.TaskCompletionRequest) (onboarding.ProgressResponse, error) {
	progress, err := s.progressForOrg(ctx, caller.OrganizationID, req.ProgressID)
	if err != nil {
		return onboarding.ProgressResponse{}, err
	}
	if progress.UserID != caller.UserID && !member.HasPermission(caller.Role, member.PermissionOnboardingManage) {
		return onboarding.ProgressResponse{}, onboarding.ErrNotAssignee
	}
	if progress.Status == onboarding.ProgressStatusCompleted {
		return onboarding.ProgressResponse{}, onboarding.ErrProgressFinished
	}

	template, err := s.TemplateRepository.GetByID(ctx, progress.TemplateID)
	if err != nil {
		return onboarding.ProgressResponse{}, fmt.Errorf("failed to get template: %w", err)
	}
	if _, ok := template.TaskByID(req.TaskID); !ok {
		return onboarding.ProgressResponse{}, onboarding.ErrTaskNotFound
	}

	completed := applyCompletion(progress.CompletedTaskIDs, req.TaskID, req.Completed)

	progress.CompletedTaskIDs = completed
	progress.CompletionPercentage = onboarding.CompletionPercentage(template.Tasks, completed)
	previousStatus := progress.Status
	progress.Status = onboarding.DeriveStatus(template.Tasks, completed)
	// An overdue record that is still unfinished stays overdue.
	if previousStatus == onboarding.ProgressStatusOverdue && progress.Status == onboarding.ProgressStatusInProgress {
		progress.Status = onboarding.ProgressStatusOverdue
	}
	if progress.Status == onboarding.ProgressStatusCompleted {
		now := time.Now()
		progress.CompletedAt = &now
	} else {
		progress.CompletedAt = nil
	}

	if err := s.ProgressRepository.Update(ctx, progress); err != nil {
		return onboarding.ProgressResponse{}, fmt.Errorf("failed to update progress: %w", err)
	}

	if progress.Status == onboarding.ProgressStatusCompleted && previousStatus != onboarding.ProgressStatusCompleted {
		s.notifyCompleted(ctx, progress, template)
	}

	return onboarding.ToProgressResponse(progress), nil
}

// templateForOrg loads a template and hides it when it belongs to a
// different organization than the one the caller is operating in.
func (s *OnboardingService) templateForOrg(ctx context.Context, organizationID, templateID string) (onboarding.Template, error) {
	template, err := s.TemplateRepository.GetByID(ctx, templateID)
	if err != nil {
		return onboarding.Template{}, fmt.Errorf("failed to get template: %w", err)
	}
	if template.OrganizationID != organizationID {
		return onboarding.Template{}, onboarding.ErrTemplateNotFound
	}
	return template, nil
}

func (s *OnboardingService) progressForOrg(ctx context.Context, organizationID, progressID string) (onboarding.Progress, error) {
	progress, err := s.ProgressRepository.GetByID(ctx, progressID)
	if err != nil {
		return onboarding.Progress{}, fmt.Errorf("failed to get progress: %w", err)
	}
	if progress.OrganizationID != organizationID {
		return onboarding.Progress{}, onboarding.ErrProgressNotFound
	}
	return progress, nil
}

func (s *OnboardingService) notifyCompleted(ctx context.Context, progress onboarding.Progress, template onboarding.Template) {
	staff, err := s.memberRepo.ListUserIDsByRoles(ctx, progress.OrganizationID, hrRoles)
	if err != nil {
		slog.Error("failed to resolve HR staff for notification", "org_id", progress.OrganizationID, "error", err)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(staff))
	for _, userID := range staff {
		reqs = append(reqs, notification.CreateNotificationRequest{
			OrganizationID: progress.OrganizationID,
			RecipientID:    userID,
			SenderID:       &progress.UserID,
			Type:           notification.TypeOnboardingCompleted,
			Title:          "Onboarding completed",
			Message:        fmt.Sprintf("A member finished the %s onboarding checklist.", template.RoleName),
			Data:           map[string]interface{}{"progress_id": progress.ID},
		})
	}

	if err := s.notifService.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("failed to queue onboarding notifications", "error", err)
	}
}

func (s *OnboardingService) queue(ctx context.Context, req notification.CreateNotificationRequest) {
	if err := s.notifService.QueueNotification(ctx, req); err != nil {
		slog.Error("failed to queue notification", "type", string(req.Type), "error", err)
	}
}

// buildTasks converts task requests into stored tasks, minting ids for tasks
// that do not carry one yet so progress records can reference them stably.
func buildTasks(reqs []onboarding.TaskRequest) onboarding.Tasks {
	tasks := make(onboarding.Tasks, len(reqs))
	for i, req := range reqs {
		id := req.ID
		if id == "" {
			id = uuid.New().String()
		}
		tasks[i] = onboarding.Task{
			ID:             id,
			Title:          req.Title,
			Description:    req.Description,
			Required:       req.Required,
			EstimatedHours: req.EstimatedHours,
		}
	}
	return tasks
}

func applyCompletion(completed onboarding.CompletedTaskIDs, taskID string, done bool) onboarding.CompletedTaskIDs {
	out := make(onboarding.CompletedTaskIDs, 0, len(completed)+1)
	for _, id := range completed {
		if id == taskID {
			continue
		}
		out = append(out, id)
	}
	if done {
		out = append(out, taskID)
	}
	return out
}
