package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/document"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type DocumentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Publish(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AttachFile(w http.ResponseWriter, r *http.Request)
	DownloadFile(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
	ListAcknowledgments(w http.ResponseWriter, r *http.Request)
}

type DocumentHandlerImpl struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) DocumentHandler {
	return &DocumentHandlerImpl{
		documentService: documentService,
	}
}

// callerRole pulls the membership resolved by the OrgMember middleware.
func callerRole(r *http.Request) (member.Role, string, bool) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	return m.Role, m.UserID, true
}

func (h *DocumentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req document.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.documentService.Create(r.Context(), chi.URLParam(r, "orgID"), userID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document created", result)
}

func (h *DocumentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	role, userID, ok := callerRole(r)
	if !ok {
		response.Forbidden(w, "You are not a member of this organization")
		return
	}

	result, err := h.documentService.Get(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID"), userID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *DocumentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	role, userID, ok := callerRole(r)
	if !ok {
		response.Forbidden(w, "You are not a member of this organization")
		return
	}

	filter := document.ListDocumentsFilter{
		Role:               role,
		IncludeUnpublished: getBoolQueryParam(r, "include_unpublished", false),
		Page:               getIntQueryParam(r, "page", 1),
		Limit:              getIntQueryParam(r, "limit", 20),
	}

	result, err := h.documentService.List(r.Context(), chi.URLParam(r, "orgID"), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *DocumentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req document.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.documentService.Update(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID"), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document updated", result)
}

func (h *DocumentHandlerImpl) Publish(w http.ResponseWriter, r *http.Request) {
	result, err := h.documentService.Publish(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document published", result)
}

func (h *DocumentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.documentService.Delete(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted", nil)
}

func (h *DocumentHandlerImpl) AttachFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.documentService.AttachFile(
		r.Context(),
		chi.URLParam(r, "orgID"),
		chi.URLParam(r, "documentID"),
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File attached", result)
}

func (h *DocumentHandlerImpl) DownloadFile(w http.ResponseWriter, r *http.Request) {
	role, _, ok := callerRole(r)
	if !ok {
		response.Forbidden(w, "You are not a member of this organization")
		return
	}

	fileName, contentType, reader, err := h.documentService.DownloadFile(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID"), role)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if _, err := io.Copy(w, reader); err != nil {
		return
	}
}

func (h *DocumentHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	role, userID, ok := callerRole(r)
	if !ok {
		response.Forbidden(w, "You are not a member of this organization")
		return
	}

	if err := h.documentService.Acknowledge(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID"), userID, role); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document acknowledged", nil)
}

func (h *DocumentHandlerImpl) ListAcknowledgments(w http.ResponseWriter, r *http.Request) {
	result, err := h.documentService.ListAcknowledgments(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "documentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
