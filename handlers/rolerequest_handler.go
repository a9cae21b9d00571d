package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/softballsistem/SoftballStads-Ochoa/middleware"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

type RoleRequestHandler struct {
	requestService services.RoleRequestService
}

func NewRoleRequestHandler(rs services.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{requestService: rs}
}

// CreateRequest создаёт заявку на повышение роли посетителя.
// Подать заявку может только администратор, одобряет разработчик.
func (h *RoleRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterUID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	requesterRole, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user role")
		return
	}

	var input services.CreateRoleRequestInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	request, err := h.requestService.Create(r.Context(), requesterUID, requesterRole, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"request": request,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoleRequestHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.requestService.Approve)
}

func (h *RoleRequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.requestService.Reject)
}

func (h *RoleRequestHandler) review(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, reviewerUID string, reviewerRole models.UserRole, requestID string) (*models.RoleChangeRequest, error),
) {
	requestID, err := getIDFromURL(r, "requestID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reviewerUID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	reviewerRole, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user role")
		return
	}

	request, err := decide(r.Context(), reviewerUID, reviewerRole, requestID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"request": request,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoleRequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	var status *models.RoleRequestStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.RoleRequestStatus(statusStr)
		switch s {
		case models.RoleRequestPending, models.RoleRequestApproved, models.RoleRequestRejected:
			status = &s
		default:
			badRequestResponse(w, r, errors.New("status must be pending, approved or rejected"))
			return
		}
	}

	requests, err := h.requestService.List(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"requests": requests,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
