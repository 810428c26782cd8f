package audit

import (
	"context"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type AuditServiceImpl struct {
	repo audit.Repository
}

func NewAuditService(repo audit.Repository) audit.AuditService {
	return &AuditServiceImpl{repo: repo}
}

// ListByRecord implements audit.AuditService.
func (s *AuditServiceImpl) ListByRecord(ctx context.Context, recordType, recordID string) ([]audit.Event, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	if !user.HasPermission(actor.Role, user.PermissionAuditView) {
		return nil, user.ErrManagerAccessRequired
	}

	var errs validator.ValidationErrors
	if !validator.IsInSlice(recordType, audit.RecordTypes) {
		errs.Add("record_type", audit.ErrInvalidRecordType.Error())
	}
	if !validator.IsValidUUID(recordID) {
		errs.Add("record_id", "record_id must be a valid UUID")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return s.repo.ListByRecord(ctx, audit.RecordType(recordType), recordID)
}
