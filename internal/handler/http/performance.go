package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PerformanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)

	AddGoal(w http.ResponseWriter, r *http.Request)
	UpdateGoal(w http.ResponseWriter, r *http.Request)
	CompleteGoal(w http.ResponseWriter, r *http.Request)
}

type PerformanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &PerformanceHandlerImpl{performanceService: performanceService}
}

// Create implements PerformanceHandler.
func (h *PerformanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateReview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	review, err := h.performanceService.CreateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review created successfully", review)
}

// Update implements PerformanceHandler.
func (h *PerformanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateReview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	review, err := h.performanceService.UpdateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review updated successfully", review)
}

// Get implements PerformanceHandler.
func (h *PerformanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Review ID is required", nil)
		return
	}

	review, err := h.performanceService.GetReview(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, review)
}

// List implements PerformanceHandler.
func (h *PerformanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := performance.ReviewFilter{
		EmployeeID:   queryString(r, "employee_id"),
		State:        queryString(r, "state"),
		ReviewPeriod: queryString(r, "review_period"),
		DateFrom:     queryString(r, "date_from"),
		DateTo:       queryString(r, "date_to"),
		Params:       queryPage(r),
	}

	result, err := h.performanceService.ListReviews(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Reviews, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Delete implements PerformanceHandler.
func (h *PerformanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.performanceService.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review deleted successfully", nil)
}

func (h *PerformanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Review submitted", h.performanceService.Submit)
}

func (h *PerformanceHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Review marked as reviewed", h.performanceService.MarkReviewed)
}

func (h *PerformanceHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Review acknowledged", h.performanceService.Acknowledge)
}

func (h *PerformanceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Review cancelled", h.performanceService.Cancel)
}

func (h *PerformanceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Review reset to draft", h.performanceService.Reset)
}

// AddGoal implements PerformanceHandler.
func (h *PerformanceHandlerImpl) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddGoal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ReviewID = chi.URLParam(r, "id")

	goal, err := h.performanceService.AddGoal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Goal added successfully", goal)
}

// UpdateGoal implements PerformanceHandler.
func (h *PerformanceHandlerImpl) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateGoal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	goal, err := h.performanceService.UpdateGoal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Goal updated successfully", goal)
}

// CompleteGoal implements PerformanceHandler.
func (h *PerformanceHandlerImpl) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.performanceService.CompleteGoal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Goal completed", goal)
}

func (h *PerformanceHandlerImpl) transition(w http.ResponseWriter, r *http.Request, message string, action func(ctx context.Context, id string) (performance.Review, error)) {
	review, err := action(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info(message, "review_id", review.ID, "state", review.State)
	response.SuccessWithMessage(w, message, review)
}
