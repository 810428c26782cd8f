package audit

import "context"

type AuditService interface {
	// ListByRecord returns the trail of one record, oldest first.
	ListByRecord(ctx context.Context, recordType, recordID string) ([]Event, error)
}
