package http

import (
	"context"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/approval"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ApprovalHandler interface {
	ListPendingAccounts(w http.ResponseWriter, r *http.Request)
	ApproveAccount(w http.ResponseWriter, r *http.Request)
	RejectAccount(w http.ResponseWriter, r *http.Request)

	SubmitSalaryRequest(w http.ResponseWriter, r *http.Request)
	ListSalaryRequests(w http.ResponseWriter, r *http.Request)
	ApproveSalaryRequest(w http.ResponseWriter, r *http.Request)
	RejectSalaryRequest(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService approval.ApprovalService
}

func NewApprovalHandler(approvalService approval.ApprovalService) ApprovalHandler {
	return &approvalHandlerImpl{
		approvalService: approvalService,
	}
}

// ListPendingAccounts implements ApprovalHandler.
func (h *approvalHandlerImpl) ListPendingAccounts(w http.ResponseWriter, r *http.Request) {
	pending, err := h.approvalService.ListPendingAccounts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessList(w, user.NewUserResponses(pending))
}

// ApproveAccount implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveAccount(w http.ResponseWriter, r *http.Request) {
	var req approval.ApproveAccountRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.approvalService.ApproveAccount(r.Context(), chi.URLParam(r, "id"), req.Salary)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account approved", user.NewUserResponse(approved))
}

// RejectAccount implements ApprovalHandler.
func (h *approvalHandlerImpl) RejectAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.approvalService.RejectAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account rejected", nil)
}

// SubmitSalaryRequest implements ApprovalHandler.
func (h *approvalHandlerImpl) SubmitSalaryRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req approval.SubmitSalaryRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	created, err := h.approvalService.SubmitSalaryRequest(r.Context(), session.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary request submitted", approval.NewSalaryRequestResponse(created, ""))
}

// ListSalaryRequests implements ApprovalHandler.
func (h *approvalHandlerImpl) ListSalaryRequests(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := approval.ListFilter{
		Status:     leave.Status(r.URL.Query().Get("status")),
		EmployeeID: r.URL.Query().Get("employee_id"),
	}
	if !session.Can(user.PermissionSalaryRequestApprove) {
		filter.EmployeeID = session.EmployeeID
	}

	requests, err := h.approvalService.ListSalaryRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessList(w, requests)
}

// ApproveSalaryRequest implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveSalaryRequest(w http.ResponseWriter, r *http.Request) {
	h.decideSalaryRequest(w, r, h.approvalService.ApproveSalaryRequest, "Salary request approved")
}

// RejectSalaryRequest implements ApprovalHandler.
func (h *approvalHandlerImpl) RejectSalaryRequest(w http.ResponseWriter, r *http.Request) {
	h.decideSalaryRequest(w, r, h.approvalService.RejectSalaryRequest, "Salary request rejected")
}

type salaryDecision func(ctx context.Context, id string, comment *string, decidedBy string) (approval.SalaryRequest, error)

func (h *approvalHandlerImpl) decideSalaryRequest(w http.ResponseWriter, r *http.Request, decide salaryDecision, message string) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req leave.DecisionRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := decide(r.Context(), chi.URLParam(r, "id"), req.Comment, session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, approval.NewSalaryRequestResponse(decided, ""))
}
