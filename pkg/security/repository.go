package security

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SecurityEventRepository writes security events to the security_events table.
type SecurityEventRepository struct {
	db *pgxpool.Pool
}

func NewSecurityEventRepository(db *pgxpool.Pool) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

// PersistEvent inserts one event. Matches PersistFunc.
func (r *SecurityEventRepository) PersistEvent(ctx context.Context, record EventRecord) error {
	const query = `
		INSERT INTO security_events (
			event_type, service, environment, level,
			subject_type, subject_value, ip_address, user_agent,
			request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	details, err := encodeDetails(record.Details)
	if err != nil {
		return fmt.Errorf("encode security event details: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		string(record.Event),
		record.Service,
		record.Environment,
		record.Level,
		nullable(record.SubjectType),
		nullable(record.SubjectValue),
		nullable(record.IP),
		nullable(record.UserAgent),
		nullable(record.RequestID),
		details,
		record.At,
	)
	if err != nil {
		return fmt.Errorf("persist security event: %w", err)
	}
	return nil
}

func encodeDetails(details map[string]any) ([]byte, error) {
	if len(details) == 0 {
		return nil, nil
	}
	return json.Marshal(details)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
