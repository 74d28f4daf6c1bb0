package onboarding

import "errors"

var (
	ErrTemplateNotFound    = errors.New("onboarding template not found")
	ErrTemplateNameTaken   = errors.New("a template for this role already exists")
	ErrTemplateInactive    = errors.New("onboarding template is inactive")
	ErrProgressNotFound    = errors.New("onboarding progress not found")
	ErrAlreadyAssigned     = errors.New("user already has active progress for this template")
	ErrTaskNotFound        = errors.New("task does not belong to this template")
	ErrProgressFinished    = errors.New("onboarding progress is already completed")
	ErrNotAssignee         = errors.New("only the assignee can update this checklist")
	ErrDuplicateTaskIDs    = errors.New("template tasks must have unique ids")
	ErrTemplateHasProgress = errors.New("template has progress records and cannot be deleted")
)
