package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type MemberHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
}

type MemberHandlerImpl struct {
	memberService member.MemberService
}

func NewMemberHandler(memberService member.MemberService) MemberHandler {
	return &MemberHandlerImpl{
		memberService: memberService,
	}
}

func (h *MemberHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	filter := member.ListMembersFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     getIntQueryParam(r, "page", 1),
		PageSize: getIntQueryParam(r, "page_size", 20),
	}
	if v := r.URL.Query().Get("role"); v != "" {
		role := member.Role(v)
		if !role.IsValid() {
			response.BadRequest(w, "Unknown role", nil)
			return
		}
		filter.Role = &role
	}

	result, err := h.memberService.List(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *MemberHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")

	result, err := h.memberService.Get(r.Context(), memberID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *MemberHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req member.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.MemberID = chi.URLParam(r, "memberID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.memberService.UpdateRole(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member role updated", nil)
}

func (h *MemberHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req member.UpdateMemberNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.MemberID = chi.URLParam(r, "memberID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.memberService.UpdateNotes(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member notes updated", nil)
}

func (h *MemberHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")

	if err := h.memberService.Remove(r.Context(), memberID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed", nil)
}

// Leave lets the caller quit the organization themselves.
func (h *MemberHandlerImpl) Leave(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	orgID := chi.URLParam(r, "orgID")

	if err := h.memberService.Leave(r.Context(), orgID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "You left the organization", nil)
}
