package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	Projection(w http.ResponseWriter, r *http.Request)
	RecentProjections(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Advance(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// targetEmployee lets payroll managers look at any employee and pins
// everyone else to their own code.
func targetEmployee(r *http.Request, sessionEmployeeID string, canManage bool) string {
	if requested := r.URL.Query().Get("employee_id"); requested != "" && canManage {
		return requested
	}
	return sessionEmployeeID
}

// parseAdjustments reads overtime, incentives and deductions from the query.
// It returns nil when none are present.
func parseAdjustments(r *http.Request) (*payroll.Adjustments, error) {
	q := r.URL.Query()
	if q.Get("overtime") == "" && q.Get("incentives") == "" && q.Get("deductions") == "" {
		return nil, nil
	}

	var errs validator.ValidationErrors
	parse := func(key string) decimal.Decimal {
		raw := q.Get(key)
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: key, Message: "must be a number"})
		}
		return d
	}

	adj := payroll.Adjustments{
		Overtime:   parse("overtime"),
		Incentives: parse("incentives"),
		Deductions: parse("deductions"),
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &adj, nil
}

// Projection implements PayrollHandler.
func (h *payrollHandlerImpl) Projection(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format(payroll.MonthLayout)
	}

	adj, err := parseAdjustments(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := targetEmployee(r, session.EmployeeID, session.Can(user.PermissionPayrollManage))
	projection, err := h.payrollService.Project(r.Context(), employeeID, month, adj)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewProjectionResponse(projection))
}

// RecentProjections implements PayrollHandler.
func (h *payrollHandlerImpl) RecentProjections(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	months, err := getIntQueryParam(r, "months", 6)
	if err != nil {
		response.BadRequest(w, "months must be a number", nil)
		return
	}

	employeeID := targetEmployee(r, session.EmployeeID, session.Can(user.PermissionPayrollManage))
	projections, err := h.payrollService.ProjectRecent(r.Context(), employeeID, months)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]payroll.ProjectionResponse, 0, len(projections))
	for _, p := range projections {
		out = append(out, payroll.NewProjectionResponse(p))
	}
	response.SuccessList(w, out)
}

// Generate implements PayrollHandler.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	record, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", payroll.NewPayrollRecordResponse(record))
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := payroll.ListPayrollRequest{
		Month:      q.Get("month"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
	}
	if !session.Can(user.PermissionPayrollManage) {
		req.EmployeeID = session.EmployeeID
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.payrollService.List(r.Context(), req.Filter())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessList(w, payroll.NewPayrollRecordResponses(records))
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	record, err := h.payrollService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if record.EmployeeID != session.EmployeeID && !session.Can(user.PermissionPayrollManage) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	response.Success(w, payroll.NewPayrollRecordResponse(record))
}

// Advance implements PayrollHandler.
func (h *payrollHandlerImpl) Advance(w http.ResponseWriter, r *http.Request) {
	record, err := h.payrollService.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Payroll marked %s", record.Status), payroll.NewPayrollRecordResponse(record))
}

// Summary implements PayrollHandler.
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format(payroll.MonthLayout)
	}

	summary, err := h.payrollService.Summary(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Export implements PayrollHandler.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format(payroll.MonthLayout)
	}

	var buf bytes.Buffer
	if err := h.payrollService.ExportRegister(r.Context(), month, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%s.xlsx"`, month))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
