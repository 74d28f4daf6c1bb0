package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetBySID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
}

type OrganizationHandlerImpl struct {
	orgService organization.OrganizationService
}

func NewOrganizationHandler(orgService organization.OrganizationService) OrganizationHandler {
	return &OrganizationHandlerImpl{
		orgService: orgService,
	}
}

func (h *OrganizationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req organization.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.orgService.Create(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Organization created", result)
}

func (h *OrganizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	result, err := h.orgService.Get(r.Context(), orgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OrganizationHandlerImpl) GetBySID(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	result, err := h.orgService.GetBySID(r.Context(), sid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *OrganizationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := organization.ListOrganizationsFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     getIntQueryParam(r, "page", 1),
		PageSize: getIntQueryParam(r, "page_size", 20),
	}

	if v := r.URL.Query().Get("recruiting_open"); v != "" {
		recruiting := v == "true" || v == "1"
		filter.RecruitingOpen = &recruiting
	}
	if v := r.URL.Query().Get("verified"); v != "" {
		verified := v == "true" || v == "1"
		filter.Verified = &verified
	}
	if v := r.URL.Query().Get("archetype"); v != "" {
		filter.Archetype = &v
	}

	result, err := h.orgService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.PageSize > 0 {
		totalPages = int((result.Total + int64(result.PageSize) - 1) / int64(result.PageSize))
	}
	response.SuccessWithMeta(w, result.Organizations, &response.Meta{
		Page:       result.Page,
		Limit:      result.PageSize,
		TotalItems: result.Total,
		TotalPages: totalPages,
	})
}

func (h *OrganizationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req organization.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "orgID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.orgService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization updated", nil)
}

func (h *OrganizationHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	if err := h.orgService.Archive(r.Context(), orgID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization archived", nil)
}

func (h *OrganizationHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("logo")
	if err != nil {
		response.BadRequest(w, "Field 'logo' is required", nil)
		return
	}
	defer file.Close()

	url, err := h.orgService.UploadLogo(r.Context(), orgID, file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logo uploaded", map[string]string{"logo_url": url})
}
