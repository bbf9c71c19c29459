package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/ports"
)

// PostgresComplaintRepository implements ComplaintRepository using PostgreSQL.
// Each mutation runs in one transaction together with its audit entry, so a
// complaint change and its trail record commit or roll back as a unit.
type PostgresComplaintRepository struct {
	db *sql.DB
}

// NewPostgresComplaintRepository creates a new PostgreSQL complaint repository
func NewPostgresComplaintRepository(db *sql.DB) ports.ComplaintRepository {
	return &PostgresComplaintRepository{db: db}
}

// Create inserts the complaint and its create audit entry atomically. The
// ticket number is assigned inside the transaction as one more than the
// highest number ever assigned, deleted tickets included, so numbers are
// monotonic and never reused. A unique constraint on the column turns a
// concurrent-create race into a retryable error instead of a duplicate.
func (r *PostgresComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewPersistenceError("complaint create", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO complaints (id, number, date, customer_name, project, unit_number, source, status, details, action, created_at, updated_at)
		VALUES ($1, (SELECT COALESCE(MAX(number), $2 - 1) + 1 FROM complaints), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING number
	`

	var number int
	err = tx.QueryRowContext(ctx, query,
		complaint.ID,
		domain.FirstTicketNumber,
		complaint.Date,
		complaint.CustomerName,
		complaint.Project,
		nullableString(complaint.UnitNumber),
		string(complaint.Source),
		string(complaint.Status),
		complaint.Details,
		complaint.Action,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	).Scan(&number)
	if err != nil {
		return domain.NewPersistenceError("complaint create", err)
	}
	complaint.Number = strconv.Itoa(number)

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return domain.NewPersistenceError("complaint create audit", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewPersistenceError("complaint create commit", err)
	}
	return nil
}

// Update persists the mutable fields and the update audit entry atomically.
// The ticket number and id are never touched.
func (r *PostgresComplaintRepository) Update(ctx context.Context, complaint *domain.Complaint, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewPersistenceError("complaint update", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE complaints
		SET date = $2, customer_name = $3, project = $4, unit_number = $5,
			source = $6, status = $7, details = $8, action = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := tx.ExecContext(ctx, query,
		complaint.ID,
		complaint.Date,
		complaint.CustomerName,
		complaint.Project,
		nullableString(complaint.UnitNumber),
		string(complaint.Source),
		string(complaint.Status),
		complaint.Details,
		complaint.Action,
		time.Now(),
	)
	if err != nil {
		return domain.NewPersistenceError("complaint update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("complaint update", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("complaint", complaint.ID)
	}

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return domain.NewPersistenceError("complaint update audit", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewPersistenceError("complaint update commit", err)
	}
	return nil
}

// Delete records the delete audit entry and soft-deletes the complaint in one
// transaction. Recording the entry first preserves the intent ordering the
// trail promises; the transaction makes the pair atomic, so a failed removal
// never leaves an orphaned delete entry behind.
func (r *PostgresComplaintRepository) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewPersistenceError("complaint delete", err)
	}
	defer tx.Rollback()

	if err := insertAuditEntry(ctx, tx, entry); err != nil {
		return domain.NewPersistenceError("complaint delete audit", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE complaints SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now(),
	)
	if err != nil {
		return domain.NewPersistenceError("complaint delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("complaint delete", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("complaint", id)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewPersistenceError("complaint delete commit", err)
	}
	return nil
}

// FindByID retrieves a visible complaint by its id
func (r *PostgresComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `
		SELECT id, number, date, customer_name, project, unit_number, source, status, details, action, created_at, updated_at
		FROM complaints
		WHERE id = $1 AND deleted_at IS NULL
	`

	complaint, err := scanComplaint(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("complaint", id)
		}
		return nil, domain.NewPersistenceError("complaint find", err)
	}
	return complaint, nil
}

// List retrieves visible complaints matching the filter, ordered by ticket
// number ascending so repeated calls over the same data return the same rows
// in the same order.
func (r *PostgresComplaintRepository) List(ctx context.Context, filter domain.ComplaintFilter) ([]*domain.Complaint, error) {
	query := `
		SELECT id, number, date, customer_name, project, unit_number, source, status, details, action, created_at, updated_at
		FROM complaints
		WHERE deleted_at IS NULL
	`

	var args []interface{}
	argIndex := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (customer_name ILIKE '%%' || $%d || '%%' OR project ILIKE '%%' || $%d || '%%' OR number::text LIKE '%%' || $%d || '%%')", argIndex, argIndex, argIndex)
		args = append(args, filter.Search)
		argIndex++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(*filter.Status))
		argIndex++
	}

	query += " ORDER BY number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewPersistenceError("complaint list", err)
	}
	defer rows.Close()

	var complaints []*domain.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, domain.NewPersistenceError("complaint list", err)
		}
		complaints = append(complaints, complaint)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("complaint list", err)
	}

	return complaints, nil
}

// CountByStatus returns visible complaint counts keyed by status
func (r *PostgresComplaintRepository) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM complaints WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, domain.NewPersistenceError("complaint count", err)
	}
	defer rows.Close()

	counts := make(map[domain.ComplaintStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.NewPersistenceError("complaint count", err)
		}
		counts[domain.ComplaintStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("complaint count", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComplaint(row rowScanner) (*domain.Complaint, error) {
	var complaint domain.Complaint
	var number int
	var unitNumber sql.NullString

	err := row.Scan(
		&complaint.ID,
		&number,
		&complaint.Date,
		&complaint.CustomerName,
		&complaint.Project,
		&unitNumber,
		&complaint.Source,
		&complaint.Status,
		&complaint.Details,
		&complaint.Action,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	complaint.Number = strconv.Itoa(number)
	if unitNumber.Valid {
		complaint.UnitNumber = unitNumber.String
	}
	return &complaint, nil
}

func insertAuditEntry(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO complaint_actions (id, complaint_id, action_type, action_details, modified_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID,
		entry.ComplaintID,
		string(entry.ActionType),
		entry.ActionDetails,
		entry.ModifiedBy,
		entry.CreatedAt,
	)
	return err
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
