package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	MarkPending(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Create implements PayrollHandler.
func (h *PayrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePayslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payslip, err := h.payrollService.CreatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip created successfully", payslip)
}

// Update implements PayrollHandler.
func (h *PayrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePayslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	payslip, err := h.payrollService.UpdatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip updated successfully", payslip)
}

// Get implements PayrollHandler.
func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	payslip, err := h.payrollService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslip)
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayslipFilter{
		EmployeeID:    queryString(r, "employee_id"),
		DepartmentID:  queryString(r, "department_id"),
		PaymentStatus: queryString(r, "payment_status"),
		DateFrom:      queryString(r, "date_from"),
		DateTo:        queryString(r, "date_to"),
		Params:        queryPage(r),
	}

	result, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Payslips, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Recompute implements PayrollHandler.
func (h *PayrollHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Payslip recomputed", h.payrollService.Recompute)
}

// MarkPending implements PayrollHandler.
func (h *PayrollHandlerImpl) MarkPending(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Payslip marked as pending", h.payrollService.MarkPending)
}

// MarkPaid implements PayrollHandler. The body is optional.
func (h *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("MarkPaid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	payslip, err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Payslip marked as paid", "payslip_id", payslip.ID)
	response.SuccessWithMessage(w, "Payslip marked as paid", payslip)
}

// Cancel implements PayrollHandler.
func (h *PayrollHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Payslip cancelled", h.payrollService.Cancel)
}

func (h *PayrollHandlerImpl) transition(w http.ResponseWriter, r *http.Request, message string, action func(ctx context.Context, id string) (payroll.Payslip, error)) {
	payslip, err := action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, payslip)
}
