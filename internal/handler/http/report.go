package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/report"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
	Payroll(w http.ResponseWriter, r *http.Request)
	Performance(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)

	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func filterFromQuery(r *http.Request) report.FilterRequest {
	return report.FilterRequest{
		DateFrom:     r.URL.Query().Get("date_from"),
		DateTo:       r.URL.Query().Get("date_to"),
		EmployeeID:   queryString(r, "employee_id"),
		DepartmentID: queryString(r, "department_id"),
		LeaveTypeID:  queryString(r, "leave_type_id"),
	}
}

// Attendance implements ReportHandler.
func (h *ReportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.reportService.Attendance(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// Leave implements ReportHandler.
func (h *ReportHandlerImpl) Leave(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.reportService.Leave(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// Payroll implements ReportHandler.
func (h *ReportHandlerImpl) Payroll(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.reportService.Payroll(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// Performance implements ReportHandler.
func (h *ReportHandlerImpl) Performance(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.reportService.Performance(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}

// Dashboard implements ReportHandler.
func (h *ReportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.Dashboard(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("Dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, dashboard)
}

// Create implements ReportHandler.
func (h *ReportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req report.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.reportService.CreateReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report created successfully", saved)
}

// Update implements ReportHandler.
func (h *ReportHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req report.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	saved, err := h.reportService.UpdateReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report updated successfully", saved)
}

// Get implements ReportHandler.
func (h *ReportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	saved, err := h.reportService.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, saved)
}

// List implements ReportHandler.
func (h *ReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := report.ReportFilter{
		Kind:   queryString(r, "kind"),
		Params: queryPage(r),
	}

	result, err := h.reportService.ListReports(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Reports, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Refresh implements ReportHandler.
func (h *ReportHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	saved, err := h.reportService.RefreshReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Report refreshed", saved)
}
