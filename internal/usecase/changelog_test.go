package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tilalcrm/tilal/internal/domain"
)

func baseComplaint() *domain.Complaint {
	return &domain.Complaint{
		ID:           "comp-1",
		Number:       "1001",
		Date:         "2025-01-01",
		CustomerName: "Ahmad",
		Project:      "Al Maali",
		UnitNumber:   "12",
		Source:       domain.ComplaintSourcePhone,
		Status:       domain.ComplaintStatusUnresolved,
		Details:      "water leak in kitchen",
		Action:       "",
	}
}

func TestChangeDetails(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *domain.Complaint)
		expected string
	}{
		{
			name: "status change",
			mutate: func(c *domain.Complaint) {
				c.Status = domain.ComplaintStatusResolved
			},
			expected: "changed status from 'unresolved' to 'resolved'",
		},
		{
			name: "action set from empty",
			mutate: func(c *domain.Complaint) {
				c.Action = "sent technician"
			},
			expected: "changed action from 'unspecified' to 'sent technician'",
		},
		{
			name: "unit number cleared",
			mutate: func(c *domain.Complaint) {
				c.UnitNumber = ""
			},
			expected: "changed unit number from '12' to 'unspecified'",
		},
		{
			name: "customer name change",
			mutate: func(c *domain.Complaint) {
				c.CustomerName = "Sara"
			},
			expected: "changed customer name from 'Ahmad' to 'Sara'",
		},
		{
			name: "multiple changes follow priority order",
			mutate: func(c *domain.Complaint) {
				c.Project = "Al Nakheel"
				c.Status = domain.ComplaintStatusInProgress
				c.Details = "water leak in bathroom"
			},
			expected: "changed status from 'unresolved' to 'in-progress'; changed details from 'water leak in kitchen' to 'water leak in bathroom'; changed project from 'Al Maali' to 'Al Nakheel'",
		},
		{
			name:     "no tracked change falls back to generic description",
			mutate:   func(c *domain.Complaint) {},
			expected: "updated by Sara",
		},
		{
			name: "date change is not tracked",
			mutate: func(c *domain.Complaint) {
				c.Date = "2025-02-01"
			},
			expected: "updated by Sara",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseComplaint()
			updated := *baseComplaint()
			tt.mutate(&updated)
			assert.Equal(t, tt.expected, changeDetails(old, &updated, "Sara"))
		})
	}
}

func TestDeleteDetails(t *testing.T) {
	assert.Equal(t, "deleted by Sara", deleteDetails("Sara"))
}

func TestTrackedChangesEmptyForIdenticalComplaints(t *testing.T) {
	c := baseComplaint()
	assert.Empty(t, trackedChanges(c, c))
}
