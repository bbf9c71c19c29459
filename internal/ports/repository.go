package ports

import (
	"context"

	"github.com/tilalcrm/tilal/internal/domain"
)

// ComplaintRepository defines the persistence interface for complaints.
// Every mutation takes the audit entry that describes it; implementations
// must commit the complaint change and the entry atomically, so that readers
// observe both or neither.
type ComplaintRepository interface {
	// Create inserts the complaint, assigns its ticket number (smallest
	// unused integer above every assigned number) and appends the create
	// audit entry, all in one transaction. The assigned number is written
	// back into the complaint.
	Create(ctx context.Context, complaint *domain.Complaint, entry *domain.AuditEntry) error

	// Update persists the complaint's mutable fields and appends the update
	// audit entry in one transaction. Returns a NotFoundError when the
	// complaint does not exist or has been deleted.
	Update(ctx context.Context, complaint *domain.Complaint, entry *domain.AuditEntry) error

	// Delete soft-deletes the complaint and appends the delete audit entry in
	// one transaction. The audit trail survives the deletion.
	Delete(ctx context.Context, id string, entry *domain.AuditEntry) error

	// FindByID returns a visible complaint or a NotFoundError
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)

	// List returns visible complaints matching the filter, ordered by ticket
	// number ascending
	List(ctx context.Context, filter domain.ComplaintFilter) ([]*domain.Complaint, error)

	// CountByStatus returns visible complaint counts keyed by status
	CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error)
}

// AuditLogRepository defines the persistence interface for the append-only
// audit log
type AuditLogRepository interface {
	// Append stores the entry. Prior entries are never updated or removed.
	Append(ctx context.Context, entry *domain.AuditEntry) error

	// ListByComplaint returns the entries for a complaint ordered by
	// CreatedAt descending. Unknown complaint ids yield an empty slice.
	ListByComplaint(ctx context.Context, complaintID string) ([]*domain.AuditEntry, error)
}

// MetricRepository defines the persistence interface for dashboard metrics
type MetricRepository interface {
	ListPerformance(ctx context.Context, period domain.PeriodType) ([]*domain.PerformanceMetric, error)
	UpsertPerformance(ctx context.Context, metric *domain.PerformanceMetric) error

	ListCustomerService(ctx context.Context, period domain.PeriodType) ([]*domain.CustomerServiceMetric, error)
	UpsertCustomerService(ctx context.Context, metric *domain.CustomerServiceMetric) error

	ListSatisfaction(ctx context.Context, period domain.PeriodType) ([]*domain.CustomerSatisfaction, error)
	UpsertSatisfaction(ctx context.Context, row *domain.CustomerSatisfaction) error

	ListNotes(ctx context.Context) ([]*domain.Note, error)
	CreateNote(ctx context.Context, note *domain.Note) error
}

// UserRepository defines the persistence interface for staff accounts
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
