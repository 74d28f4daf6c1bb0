package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/hrstats"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type HRStatsHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	RecruitmentFunnel(w http.ResponseWriter, r *http.Request)
	OnboardingStats(w http.ResponseWriter, r *http.Request)
	PerformanceStats(w http.ResponseWriter, r *http.Request)
}

type HRStatsHandlerImpl struct {
	statsService hrstats.Service
}

func NewHRStatsHandler(statsService hrstats.Service) HRStatsHandler {
	return &HRStatsHandlerImpl{
		statsService: statsService,
	}
}

func (h *HRStatsHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.GetDashboard(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *HRStatsHandlerImpl) RecruitmentFunnel(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.GetRecruitmentFunnel(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *HRStatsHandlerImpl) OnboardingStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.GetOnboardingStats(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *HRStatsHandlerImpl) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.statsService.GetPerformanceStats(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
