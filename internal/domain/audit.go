package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditActionType represents the kind of action an audit entry records
type AuditActionType string

const (
	AuditActionCreate AuditActionType = "create"
	AuditActionUpdate AuditActionType = "update"
	AuditActionDelete AuditActionType = "delete"
)

// AuditEntry is an immutable record of one action taken on a complaint.
// Entries are never updated or deleted, and they outlive the complaint they
// describe: ComplaintID is a weak reference.
type AuditEntry struct {
	ID            string          `json:"id"`
	ComplaintID   string          `json:"complaint_id"`
	ActionType    AuditActionType `json:"action_type"`
	ActionDetails string          `json:"action_details"`
	ModifiedBy    string          `json:"modified_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewAuditEntry creates an audit entry with a fresh ID and server timestamp
func NewAuditEntry(complaintID string, actionType AuditActionType, actionDetails, modifiedBy string) *AuditEntry {
	return &AuditEntry{
		ID:            uuid.New().String(),
		ComplaintID:   complaintID,
		ActionType:    actionType,
		ActionDetails: actionDetails,
		ModifiedBy:    modifiedBy,
		CreatedAt:     time.Now(),
	}
}
