package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/domain/verification"
)

// notificationRetention is how long read notifications are kept before the
// nightly purge removes them.
const notificationRetention = 90 * 24 * time.Hour

// HRJobs holds the background maintenance jobs: the onboarding overdue sweep,
// expired verification code purge and notification retention.
type HRJobs struct {
	progressRepo     onboarding.ProgressRepository
	verificationRepo verification.Repository
	notificationRepo notification.Repository
	memberRepo       member.MemberRepository
	notifService     notification.Service
}

func NewHRJobs(
	progressRepo onboarding.ProgressRepository,
	verificationRepo verification.Repository,
	notificationRepo notification.Repository,
	memberRepo member.MemberRepository,
	notifService notification.Service,
) *HRJobs {
	return &HRJobs{
		progressRepo:     progressRepo,
		verificationRepo: verificationRepo,
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
		notifService:     notifService,
	}
}

func (j *HRJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("onboarding_overdue_sweep", 1*time.Hour, j.SweepOverdueOnboarding)
	scheduler.AddJob("verification_code_expiry", 1*time.Hour, j.PurgeExpiredVerificationCodes)
	scheduler.AddJob("notification_retention", 1*time.Hour, j.PurgeOldNotifications)
}

// SweepOverdueOnboarding flips unfinished progress records past their due
// date to overdue and notifies the member plus the org's HR staff.
func (j *HRJobs) SweepOverdueOnboarding(ctx context.Context) error {
	overdue, err := j.progressRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark overdue progress: %w", err)
	}
	if len(overdue) == 0 {
		return nil
	}

	slog.Info("onboarding overdue sweep flagged records", "count", len(overdue))

	for _, p := range overdue {
		roleName := ""
		if p.TemplateRoleName != nil {
			roleName = *p.TemplateRoleName
		}

		reqs := []notification.CreateNotificationRequest{{
			OrganizationID: p.OrganizationID,
			RecipientID:    p.UserID,
			Type:           notification.TypeOnboardingOverdue,
			Title:          "Onboarding overdue",
			Message:        fmt.Sprintf("Your %s onboarding is past its due date.", roleName),
			Data:           map[string]interface{}{"progress_id": p.ID},
		}}

		staff, err := j.memberRepo.ListUserIDsByRoles(ctx, p.OrganizationID,
			[]member.Role{member.RoleOwner, member.RoleOfficer, member.RoleHR})
		if err != nil {
			slog.Error("failed to resolve HR staff for overdue notice", "organization_id", p.OrganizationID, "error", err)
		} else {
			for _, userID := range staff {
				if userID == p.UserID {
					continue
				}
				reqs = append(reqs, notification.CreateNotificationRequest{
					OrganizationID: p.OrganizationID,
					RecipientID:    userID,
					Type:           notification.TypeOnboardingOverdue,
					Title:          "Onboarding overdue",
					Message:        fmt.Sprintf("An onboarding assignment (%s) is past its due date.", roleName),
					Data:           map[string]interface{}{"progress_id": p.ID, "user_id": p.UserID},
				})
			}
		}

		if err := j.notifService.QueueBulkNotification(ctx, reqs); err != nil {
			slog.Error("failed to queue overdue notifications", "progress_id", p.ID, "error", err)
		}
	}

	return nil
}

// PurgeExpiredVerificationCodes removes codes past their expiry. Runs hourly
// but only acts in the 03:00 UTC window.
func (j *HRJobs) PurgeExpiredVerificationCodes(ctx context.Context) error {
	if time.Now().UTC().Hour() != 3 {
		return nil
	}

	removed, err := j.verificationRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to purge expired verification codes: %w", err)
	}
	if removed > 0 {
		slog.Info("purged expired verification codes", "count", removed)
	}
	return nil
}

// PurgeOldNotifications removes read notifications older than the retention
// window. Runs hourly but only acts in the 04:00 UTC window.
func (j *HRJobs) PurgeOldNotifications(ctx context.Context) error {
	if time.Now().UTC().Hour() != 4 {
		return nil
	}

	cutoff := time.Now().Add(-notificationRetention)
	removed, err := j.notificationRepo.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge old notifications: %w", err)
	}
	if removed > 0 {
		slog.Info("purged read notifications", "count", removed, "cutoff", cutoff)
	}
	return nil
}
