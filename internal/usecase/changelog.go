package usecase

import (
	"fmt"
	"strings"

	"github.com/tilalcrm/tilal/internal/domain"
)

// createdDetails is the fixed audit description for complaint creation
const createdDetails = "complaint created"

// unspecified stands in for empty optional values in change descriptions
const unspecified = "unspecified"

// trackedChange is one (field, old, new) rule. Rules are evaluated in a fixed
// priority order so descriptions come out stable for the same edit.
type trackedChange struct {
	field string
	old   string
	new   string
}

// trackedChanges collects the tracked fields that differ between the stored
// complaint and the incoming one, in priority order: status, action, details,
// customer name, project, unit number.
func trackedChanges(old, new *domain.Complaint) []trackedChange {
	var changes []trackedChange
	add := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, trackedChange{field: field, old: oldVal, new: newVal})
		}
	}

	add("status", string(old.Status), string(new.Status))
	add("action", old.Action, new.Action)
	add("details", old.Details, new.Details)
	add("customer name", old.CustomerName, new.CustomerName)
	add("project", old.Project, new.Project)
	add("unit number", old.UnitNumber, new.UnitNumber)
	return changes
}

// changeDetails renders the audit description for an update. Each changed
// field becomes "changed <field> from '<old>' to '<new>'" with empty values
// shown as "unspecified"; when nothing tracked changed the description falls
// back to "updated by <modifiedBy>".
func changeDetails(old, new *domain.Complaint, modifiedBy string) string {
	changes := trackedChanges(old, new)
	if len(changes) == 0 {
		return fmt.Sprintf("updated by %s", modifiedBy)
	}

	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("changed %s from '%s' to '%s'", c.field, orUnspecified(c.old), orUnspecified(c.new)))
	}
	return strings.Join(parts, "; ")
}

// deleteDetails renders the audit description for a soft delete
func deleteDetails(modifiedBy string) string {
	return fmt.Sprintf("deleted by %s", modifiedBy)
}

func orUnspecified(v string) string {
	if v == "" {
		return unspecified
	}
	return v
}
