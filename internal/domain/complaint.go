package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComplaintStatus represents the resolution state of a complaint
type ComplaintStatus string

const (
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusInProgress ComplaintStatus = "in-progress"
	ComplaintStatusUnresolved ComplaintStatus = "unresolved"
)

// ComplaintSource represents the channel a complaint came in through
type ComplaintSource string

const (
	ComplaintSourceSurvey    ComplaintSource = "survey"
	ComplaintSourceEmail     ComplaintSource = "email"
	ComplaintSourcePhone     ComplaintSource = "phone"
	ComplaintSourceMobileApp ComplaintSource = "mobile-app"
	ComplaintSourceWebsite   ComplaintSource = "website"
)

// FirstTicketNumber is the number assigned to the first complaint ever logged.
// Numbers grow monotonically from here; they are never reused.
const FirstTicketNumber = 1001

// Complaint represents a single customer issue ticket
type Complaint struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Date         string          `json:"date"`
	CustomerName string          `json:"customer_name"`
	Project      string          `json:"project"`
	UnitNumber   string          `json:"unit_number,omitempty"`
	Source       ComplaintSource `json:"source"`
	Status       ComplaintStatus `json:"status"`
	Details      string          `json:"details"`
	Action       string          `json:"action"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewComplaint creates a complaint with a fresh ID. The ticket number is
// assigned by the store at insert time, not here.
func NewComplaint(date, customerName, project, unitNumber string, source ComplaintSource, status ComplaintStatus, details, action string) *Complaint {
	now := time.Now()
	if status == "" {
		status = ComplaintStatusUnresolved
	}
	if source == "" {
		source = ComplaintSourceSurvey
	}
	return &Complaint{
		ID:           uuid.New().String(),
		Date:         date,
		CustomerName: customerName,
		Project:      project,
		UnitNumber:   unitNumber,
		Source:       source,
		Status:       status,
		Details:      details,
		Action:       action,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ValidStatus reports whether s is one of the known complaint statuses
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusResolved, ComplaintStatusInProgress, ComplaintStatusUnresolved:
		return true
	}
	return false
}

// ValidSource reports whether s is one of the known complaint sources
func ValidSource(s ComplaintSource) bool {
	switch s {
	case ComplaintSourceSurvey, ComplaintSourceEmail, ComplaintSourcePhone, ComplaintSourceMobileApp, ComplaintSourceWebsite:
		return true
	}
	return false
}

// ComplaintFilter represents filters for listing complaints
type ComplaintFilter struct {
	// Search is matched case-insensitively as a substring of the customer
	// name, project and ticket number.
	Search string           `json:"search,omitempty"`
	Status *ComplaintStatus `json:"status,omitempty"`
}
