package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/comment"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type CommentHandler interface {
	Post(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CommentHandlerImpl struct {
	commentService comment.Service
	memberRepo     member.MemberRepository
}

func NewCommentHandler(commentService comment.Service, memberRepo member.MemberRepository) CommentHandler {
	return &CommentHandlerImpl{
		commentService: commentService,
		memberRepo:     memberRepo,
	}
}

func (h *CommentHandlerImpl) Post(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req comment.PostCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commentService.Post(r.Context(), chi.URLParam(r, "orgID"), userID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment posted", result)
}

func (h *CommentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	filter := comment.ListCommentsFilter{
		RatedOnly: getBoolQueryParam(r, "rated_only", false),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
	}

	result, err := h.commentService.List(r.Context(), orgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *CommentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req comment.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.commentService.Update(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "commentID"), userID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comment updated", result)
}

// Delete removes a comment. Authors delete their own; members whose role
// carries comments.moderate may delete anyone's.
func (h *CommentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	orgID := chi.URLParam(r, "orgID")
	commentID := chi.URLParam(r, "commentID")

	moderator := false
	if m, err := h.memberRepo.GetByOrgAndUser(r.Context(), orgID, userID); err == nil {
		moderator = member.HasPermission(m.Role, member.PermissionCommentsModerate)
	}

	if err := h.commentService.Delete(r.Context(), orgID, commentID, userID, moderator); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comment deleted", nil)
}
