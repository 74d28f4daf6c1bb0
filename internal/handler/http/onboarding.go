package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/onboarding"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type OnboardingHandler interface {
	// Templates
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	UpdateTemplate(w http.ResponseWriter, r *http.Request)
	DeactivateTemplate(w http.ResponseWriter, r *http.Request)

	// Progress
	Assign(w http.ResponseWriter, r *http.Request)
	GetProgress(w http.ResponseWriter, r *http.Request)
	ListOrgProgress(w http.ResponseWriter, r *http.Request)
	ListMyProgress(w http.ResponseWriter, r *http.Request)
	SetTaskCompletion(w http.ResponseWriter, r *http.Request)
}

type OnboardingHandlerImpl struct {
	onboardingService onboarding.OnboardingService
}

func NewOnboardingHandler(onboardingService onboarding.OnboardingService) OnboardingHandler {
	return &OnboardingHandlerImpl{
		onboardingService: onboardingService,
	}
}

func (h *OnboardingHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req onboarding.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.onboardingService.CreateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Template created", result)
}

func (h *OnboardingHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	templateID := chi.URLParam(r, "templateID")

	result, err := h.onboardingService.GetTemplate(r.Context(), orgID, templateID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OnboardingHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	includeInactive := getBoolQueryParam(r, "include_inactive", false)

	result, err := h.onboardingService.ListTemplates(r.Context(), orgID, includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OnboardingHandlerImpl) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req onboarding.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.ID = chi.URLParam(r, "templateID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.onboardingService.UpdateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template updated", result)
}

func (h *OnboardingHandlerImpl) DeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	templateID := chi.URLParam(r, "templateID")

	if err := h.onboardingService.DeactivateTemplate(r.Context(), orgID, templateID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Template deactivated", nil)
}

func (h *OnboardingHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req onboarding.AssignTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.onboardingService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Onboarding assigned", result)
}

func (h *OnboardingHandlerImpl) GetProgress(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	progressID := chi.URLParam(r, "progressID")

	result, err := h.onboardingService.GetProgress(r.Context(), orgID, progressID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OnboardingHandlerImpl) ListOrgProgress(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	filter := onboarding.ListProgressFilter{
		Page:     getIntQueryParam(r, "page", 1),
		PageSize: getIntQueryParam(r, "page_size", 20),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := onboarding.ProgressStatus(v)
		switch status {
		case onboarding.ProgressStatusNotStarted, onboarding.ProgressStatusInProgress,
			onboarding.ProgressStatusCompleted, onboarding.ProgressStatusOverdue:
			filter.Status = &status
		default:
			response.BadRequest(w, "Unknown progress status", nil)
			return
		}
	}

	result, err := h.onboardingService.ListOrgProgress(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OnboardingHandlerImpl) ListMyProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.onboardingService.ListMyProgress(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OnboardingHandlerImpl) SetTaskCompletion(w http.ResponseWriter, r *http.Request) {
	var req onboarding.TaskCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ProgressID = chi.URLParam(r, "progressID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "You are not a member of this organization")
		return
	}

	result, err := h.onboardingService.SetTaskCompletion(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task completion updated", result)
}
