package http

import (
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuditHandler interface {
	ListByRecord(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

// ListByRecord implements AuditHandler.
func (h *AuditHandlerImpl) ListByRecord(w http.ResponseWriter, r *http.Request) {
	events, err := h.auditService.ListByRecord(r.Context(), chi.URLParam(r, "record_type"), chi.URLParam(r, "record_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
