package http

import (
	"encoding/json"
	"net/http"

	"github.com/versecrew/versecrew-backend-go/internal/domain/verification"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/middleware"
	"github.com/versecrew/versecrew-backend-go/internal/handler/http/response"
)

type VerificationHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
}

type VerificationHandlerImpl struct {
	verificationService verification.Service
}

func NewVerificationHandler(verificationService verification.Service) VerificationHandler {
	return &VerificationHandlerImpl{
		verificationService: verificationService,
	}
}

// Start issues a fresh sentinel code for a user handle or an org SID.
func (h *VerificationHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req verification.StartVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.verificationService.Start(r.Context(), userID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Verification code issued", result)
}

// Confirm re-fetches the subject's public page and checks for the code.
func (h *VerificationHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req verification.StartVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.verificationService.Confirm(r.Context(), userID, req.SubjectType, req.SubjectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Subject verified", result)
}
