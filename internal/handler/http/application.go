package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/application"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type ApplicationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListByOrganization(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	StartReview(w http.ResponseWriter, r *http.Request)
	ScheduleInterview(w http.ResponseWriter, r *http.Request)
	ReturnToReview(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	SaveReviewNotes(w http.ResponseWriter, r *http.Request)
}

type ApplicationHandlerImpl struct {
	appService application.ApplicationService
}

func NewApplicationHandler(appService application.ApplicationService) ApplicationHandler {
	return &ApplicationHandlerImpl{
		appService: appService,
	}
}

func (h *ApplicationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req application.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.appService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application submitted", result)
}

func (h *ApplicationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	applicationID := chi.URLParam(r, "applicationID")

	result, err := h.appService.Get(r.Context(), orgID, applicationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ApplicationHandlerImpl) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	filter, ok := parseApplicationFilter(w, r)
	if !ok {
		return
	}

	result, err := h.appService.ListByOrganization(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ApplicationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter, ok := parseApplicationFilter(w, r)
	if !ok {
		return
	}

	result, err := h.appService.ListMine(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ApplicationHandlerImpl) StartReview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orgID := chi.URLParam(r, "orgID")
	applicationID := chi.URLParam(r, "applicationID")

	if err := h.appService.StartReview(r.Context(), orgID, applicationID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application moved to review", nil)
}

func (h *ApplicationHandlerImpl) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var req application.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.ApplicationID = chi.URLParam(r, "applicationID")
	req.ReviewerID = middleware.UserIDFromContext(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.appService.ScheduleInterview(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Interview scheduled", nil)
}

func (h *ApplicationHandlerImpl) ReturnToReview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orgID := chi.URLParam(r, "orgID")
	applicationID := chi.URLParam(r, "applicationID")

	if err := h.appService.ReturnToReview(r.Context(), orgID, applicationID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application returned to review", nil)
}

func (h *ApplicationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orgID := chi.URLParam(r, "orgID")
	applicationID := chi.URLParam(r, "applicationID")

	if err := h.appService.Approve(r.Context(), orgID, applicationID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application approved", nil)
}

func (h *ApplicationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req application.RejectApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.ApplicationID = chi.URLParam(r, "applicationID")
	req.ReviewerID = middleware.UserIDFromContext(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.appService.Reject(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application rejected", nil)
}

func (h *ApplicationHandlerImpl) SaveReviewNotes(w http.ResponseWriter, r *http.Request) {
	var req application.UpdateReviewNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.ApplicationID = chi.URLParam(r, "applicationID")
	req.ReviewerID = middleware.UserIDFromContext(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.appService.SaveReviewNotes(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review notes saved", nil)
}

func parseApplicationFilter(w http.ResponseWriter, r *http.Request) (application.ListApplicationsFilter, bool) {
	filter := application.ListApplicationsFilter{
		Page:     getIntQueryParam(r, "page", 1),
		PageSize: getIntQueryParam(r, "page_size", 20),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := application.Status(v)
		if !application.IsValidStatus(status) {
			response.BadRequest(w, "Unknown application status", nil)
			return filter, false
		}
		filter.Status = &status
	}
	return filter, true
}
