package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/ports"
)

// CreateComplaintRequest represents the request to log a new complaint
type CreateComplaintRequest struct {
	Date         string                 `json:"date" validate:"required"`
	CustomerName string                 `json:"customer_name" validate:"required"`
	Project      string                 `json:"project"`
	UnitNumber   string                 `json:"unit_number"`
	Source       domain.ComplaintSource `json:"source"`
	Status       domain.ComplaintStatus `json:"status"`
	Details      string                 `json:"details"`
	Action       string                 `json:"action"`
}

// UpdateComplaintRequest represents the mutable fields of a complaint.
// ID and ticket number are immutable and therefore absent.
type UpdateComplaintRequest struct {
	Date         string                 `json:"date"`
	CustomerName string                 `json:"customer_name"`
	Project      string                 `json:"project"`
	UnitNumber   string                 `json:"unit_number"`
	Source       domain.ComplaintSource `json:"source"`
	Status       domain.ComplaintStatus `json:"status"`
	Details      string                 `json:"details"`
	Action       string                 `json:"action"`
}

// ComplaintUseCase owns the complaint lifecycle. Every mutation appends
// exactly one audit entry; the repository commits both atomically.
type ComplaintUseCase struct {
	complaintRepo ports.ComplaintRepository
	auditRepo     ports.AuditLogRepository
	logger        *logrus.Logger
}

// NewComplaintUseCase creates a new complaint use case
func NewComplaintUseCase(complaintRepo ports.ComplaintRepository, auditRepo ports.AuditLogRepository, logger *logrus.Logger) *ComplaintUseCase {
	return &ComplaintUseCase{
		complaintRepo: complaintRepo,
		auditRepo:     auditRepo,
		logger:        logger,
	}
}

// CreateComplaint logs a new complaint and its create audit entry. The store
// assigns the id and the next free ticket number.
func (uc *ComplaintUseCase) CreateComplaint(ctx context.Context, req CreateComplaintRequest, modifiedBy string) (*domain.Complaint, error) {
	if err := uc.validateCreateRequest(req); err != nil {
		return nil, err
	}

	complaint := domain.NewComplaint(req.Date, req.CustomerName, req.Project, req.UnitNumber, req.Source, req.Status, req.Details, req.Action)
	entry := domain.NewAuditEntry(complaint.ID, domain.AuditActionCreate, createdDetails, modifiedBy)

	if err := uc.complaintRepo.Create(ctx, complaint, entry); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"complaint_id": complaint.ID,
		"number":       complaint.Number,
		"modified_by":  modifiedBy,
	}).Info("complaint created")

	return complaint, nil
}

// UpdateComplaint persists new field values for an existing complaint and
// appends one update audit entry describing what changed.
func (uc *ComplaintUseCase) UpdateComplaint(ctx context.Context, id string, req UpdateComplaintRequest, modifiedBy string) (*domain.Complaint, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "complaint id is required")
	}
	if err := uc.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	existing, err := uc.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	updated := *existing
	updated.Date = req.Date
	updated.CustomerName = req.CustomerName
	updated.Project = req.Project
	updated.UnitNumber = req.UnitNumber
	updated.Source = req.Source
	updated.Status = req.Status
	updated.Details = req.Details
	updated.Action = req.Action

	details := changeDetails(existing, &updated, modifiedBy)
	entry := domain.NewAuditEntry(id, domain.AuditActionUpdate, details, modifiedBy)

	if err := uc.complaintRepo.Update(ctx, &updated, entry); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"complaint_id": id,
		"modified_by":  modifiedBy,
		"details":      details,
	}).Info("complaint updated")

	return &updated, nil
}

// DeleteComplaint soft-deletes a complaint. The complaint disappears from
// listings; its audit trail, including the delete entry, stays readable.
func (uc *ComplaintUseCase) DeleteComplaint(ctx context.Context, id, modifiedBy string) error {
	if id == "" {
		return domain.NewValidationError("id", "complaint id is required")
	}

	entry := domain.NewAuditEntry(id, domain.AuditActionDelete, deleteDetails(modifiedBy), modifiedBy)
	if err := uc.complaintRepo.Delete(ctx, id, entry); err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"complaint_id": id,
		"modified_by":  modifiedBy,
	}).Info("complaint deleted")

	return nil
}

// GetComplaint retrieves a visible complaint by id
func (uc *ComplaintUseCase) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "complaint id is required")
	}
	return uc.complaintRepo.FindByID(ctx, id)
}

// ListComplaints retrieves visible complaints matching the filter
func (uc *ComplaintUseCase) ListComplaints(ctx context.Context, filter domain.ComplaintFilter) ([]*domain.Complaint, error) {
	if filter.Status != nil && !domain.ValidStatus(*filter.Status) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", *filter.Status))
	}
	return uc.complaintRepo.List(ctx, filter)
}

// ListComplaintActions retrieves the audit trail of a complaint, most recent
// first. Unknown ids yield an empty trail, not an error.
func (uc *ComplaintUseCase) ListComplaintActions(ctx context.Context, complaintID string) ([]*domain.AuditEntry, error) {
	if complaintID == "" {
		return nil, domain.NewValidationError("id", "complaint id is required")
	}
	return uc.auditRepo.ListByComplaint(ctx, complaintID)
}

// GetComplaintStats returns visible complaint counts per status plus a total
func (uc *ComplaintUseCase) GetComplaintStats(ctx context.Context) (map[string]int, error) {
	counts, err := uc.complaintRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}

	stats := make(map[string]int, len(counts)+1)
	total := 0
	for status, n := range counts {
		stats[string(status)] = n
		total += n
	}
	stats["total"] = total
	return stats, nil
}

func (uc *ComplaintUseCase) validateCreateRequest(req CreateComplaintRequest) error {
	if req.CustomerName == "" {
		return domain.NewValidationError("customer_name", "customer name is required")
	}
	if req.Date == "" {
		return domain.NewValidationError("date", "date is required")
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.Source != "" && !domain.ValidSource(req.Source) {
		return domain.NewValidationError("source", fmt.Sprintf("unknown source %q", req.Source))
	}
	return nil
}

func (uc *ComplaintUseCase) validateUpdateRequest(req UpdateComplaintRequest) error {
	if req.CustomerName == "" {
		return domain.NewValidationError("customer_name", "customer name is required")
	}
	if req.Date == "" {
		return domain.NewValidationError("date", "date is required")
	}
	if !domain.ValidStatus(req.Status) {
		return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if !domain.ValidSource(req.Source) {
		return domain.NewValidationError("source", fmt.Sprintf("unknown source %q", req.Source))
	}
	return nil
}
