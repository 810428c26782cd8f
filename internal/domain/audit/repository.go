package audit

import "context"

// Repository writes to the audit_events table. There is no update or delete.
type Repository interface {
	Append(ctx context.Context, event Event) (Event, error)
	ListByRecord(ctx context.Context, recordType RecordType, recordID string) ([]Event, error)
}
