package postgresql

import (
	"context"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

// Append implements audit.Repository.
func (r *auditRepositoryImpl) Append(ctx context.Context, event audit.Event) (audit.Event, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return audit.Event{}, fmt.Errorf("generate audit event id: %w", err)
	}
	event.ID = id.String()

	query := `
		INSERT INTO audit_events (id, record_type, record_id, action, actor_id, from_state, to_state, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING occurred_at
	`
	err = q.QueryRow(ctx, query,
		event.ID, event.RecordType, event.RecordID, event.Action, event.ActorID,
		event.FromState, event.ToState, event.Payload,
	).Scan(&event.OccurredAt)
	if err != nil {
		return audit.Event{}, fmt.Errorf("failed to append audit event: %w", err)
	}
	return event, nil
}

// ListByRecord implements audit.Repository.
func (r *auditRepositoryImpl) ListByRecord(ctx context.Context, recordType audit.RecordType, recordID string) ([]audit.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, record_type, record_id, action, actor_id, from_state, to_state, payload, occurred_at
		FROM audit_events
		WHERE record_type = $1 AND record_id = $2
		ORDER BY occurred_at, id
	`
	rows, err := q.Query(ctx, query, recordType, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var ev audit.Event
		if err := rows.Scan(
			&ev.ID, &ev.RecordType, &ev.RecordID, &ev.Action, &ev.ActorID,
			&ev.FromState, &ev.ToState, &ev.Payload, &ev.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
