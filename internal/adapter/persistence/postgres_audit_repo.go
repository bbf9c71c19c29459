package persistence

import (
	"context"
	"database/sql"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/ports"
)

// PostgresAuditLogRepository implements AuditLogRepository using PostgreSQL.
// The table is strictly append-only: no update or delete statement exists
// anywhere against complaint_actions.
type PostgresAuditLogRepository struct {
	db *sql.DB
}

// NewPostgresAuditLogRepository creates a new PostgreSQL audit log repository
func NewPostgresAuditLogRepository(db *sql.DB) ports.AuditLogRepository {
	return &PostgresAuditLogRepository{db: db}
}

// Append stores a new audit entry
func (r *PostgresAuditLogRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO complaint_actions (id, complaint_id, action_type, action_details, modified_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID,
		entry.ComplaintID,
		string(entry.ActionType),
		entry.ActionDetails,
		entry.ModifiedBy,
		entry.CreatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("audit append", err)
	}
	return nil
}

// ListByComplaint returns all entries recorded for a complaint, most recent
// first. The complaint itself may no longer exist; entries outlive it.
func (r *PostgresAuditLogRepository) ListByComplaint(ctx context.Context, complaintID string) ([]*domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, complaint_id, action_type, action_details, modified_by, created_at
		FROM complaint_actions
		WHERE complaint_id = $1
		ORDER BY created_at DESC`,
		complaintID,
	)
	if err != nil {
		return nil, domain.NewPersistenceError("audit list", err)
	}
	defer rows.Close()

	entries := []*domain.AuditEntry{}
	for rows.Next() {
		var entry domain.AuditEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ComplaintID,
			&entry.ActionType,
			&entry.ActionDetails,
			&entry.ModifiedBy,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, domain.NewPersistenceError("audit list", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("audit list", err)
	}
	return entries, nil
}
