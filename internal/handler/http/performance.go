package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/performance"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	// Reviews
	CreateReview(w http.ResponseWriter, r *http.Request)
	GetReview(w http.ResponseWriter, r *http.Request)
	ListOrgReviews(w http.ResponseWriter, r *http.Request)
	ListMyReviews(w http.ResponseWriter, r *http.Request)
	UpdateReview(w http.ResponseWriter, r *http.Request)
	SubmitReview(w http.ResponseWriter, r *http.Request)
	AcknowledgeReview(w http.ResponseWriter, r *http.Request)
	ExportReviewPDF(w http.ResponseWriter, r *http.Request)

	// Goals
	CreateGoal(w http.ResponseWriter, r *http.Request)
	GetGoal(w http.ResponseWriter, r *http.Request)
	ListUserGoals(w http.ResponseWriter, r *http.Request)
	ListReviewGoals(w http.ResponseWriter, r *http.Request)
	UpdateGoalProgress(w http.ResponseWriter, r *http.Request)
	CancelGoal(w http.ResponseWriter, r *http.Request)
}

type PerformanceHandlerImpl struct {
	perfService performance.PerformanceService
}

func NewPerformanceHandler(perfService performance.PerformanceService) PerformanceHandler {
	return &PerformanceHandlerImpl{
		perfService: perfService,
	}
}

func (h *PerformanceHandlerImpl) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.ReviewerID = middleware.UserIDFromContext(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.perfService.CreateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review created", result)
}

func (h *PerformanceHandlerImpl) GetReview(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	reviewID := chi.URLParam(r, "reviewID")

	result, err := h.perfService.GetReview(r.Context(), orgID, reviewID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PerformanceHandlerImpl) ListOrgReviews(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	filter, ok := parseReviewFilter(w, r)
	if !ok {
		return
	}

	result, err := h.perfService.ListOrgReviews(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyReviews returns reviews where the caller is the reviewee.
func (h *PerformanceHandlerImpl) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter, ok := parseReviewFilter(w, r)
	if !ok {
		return
	}

	result, err := h.perfService.ListMyReviews(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PerformanceHandlerImpl) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.ReviewID = chi.URLParam(r, "reviewID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.perfService.UpdateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review updated", result)
}

func (h *PerformanceHandlerImpl) SubmitReview(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	reviewID := chi.URLParam(r, "reviewID")

	result, err := h.perfService.SubmitReview(r.Context(), orgID, reviewID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review submitted", result)
}

func (h *PerformanceHandlerImpl) AcknowledgeReview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orgID := chi.URLParam(r, "orgID")
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.perfService.AcknowledgeReview(r.Context(), orgID, reviewID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review acknowledged", nil)
}

// ExportReviewPDF streams the rendered review PDF.
func (h *PerformanceHandlerImpl) ExportReviewPDF(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	reviewID := chi.URLParam(r, "reviewID")

	storedPath, reader, err := h.perfService.ExportReviewPDF(r.Context(), orgID, reviewID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(storedPath)))
	if _, err := io.Copy(w, reader); err != nil {
		return
	}
}

func (h *PerformanceHandlerImpl) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.OrganizationID = chi.URLParam(r, "orgID")
	req.CreatorID = middleware.UserIDFromContext(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.perfService.CreateGoal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Goal created", result)
}

func (h *PerformanceHandlerImpl) GetGoal(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	goalID := chi.URLParam(r, "goalID")

	result, err := h.perfService.GetGoal(r.Context(), orgID, goalID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PerformanceHandlerImpl) ListUserGoals(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = middleware.UserIDFromContext(r.Context())
	}

	result, err := h.perfService.ListUserGoals(r.Context(), orgID, userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PerformanceHandlerImpl) ListReviewGoals(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	reviewID := chi.URLParam(r, "reviewID")

	result, err := h.perfService.ListReviewGoals(r.Context(), orgID, reviewID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PerformanceHandlerImpl) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateGoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.GoalID = chi.URLParam(r, "goalID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "You are not a member of this organization")
		return
	}

	result, err := h.perfService.UpdateGoalProgress(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Goal progress updated", result)
}

func (h *PerformanceHandlerImpl) CancelGoal(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	goalID := chi.URLParam(r, "goalID")

	if err := h.perfService.CancelGoal(r.Context(), orgID, goalID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Goal cancelled", nil)
}

func parseReviewFilter(w http.ResponseWriter, r *http.Request) (performance.ListReviewsFilter, bool) {
	filter := performance.ListReviewsFilter{
		Page:     getIntQueryParam(r, "page", 1),
		PageSize: getIntQueryParam(r, "page_size", 20),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := performance.ReviewStatus(v)
		switch status {
		case performance.ReviewStatusDraft, performance.ReviewStatusSubmitted, performance.ReviewStatusAcknowledged:
			filter.Status = &status
		default:
			response.BadRequest(w, "Unknown review status", nil)
			return filter, false
		}
	}
	if v := r.URL.Query().Get("reviewee_id"); v != "" {
		filter.RevieweeID = &v
	}
	return filter, true
}
