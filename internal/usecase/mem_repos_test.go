package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tilalcrm/tilal/internal/domain"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories with the
// same semantics: mutation and audit entry land together, numbers grow
// monotonically, deletes are soft.
type memStore struct {
	mu         sync.Mutex
	complaints map[string]*domain.Complaint
	deleted    map[string]bool
	entries    []*domain.AuditEntry
	lastNumber int
	failNext   error
}

func newMemStore() *memStore {
	return &memStore{
		complaints: make(map[string]*domain.Complaint),
		deleted:    make(map[string]bool),
		lastNumber: domain.FirstTicketNumber - 1,
	}
}

func (s *memStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *memStore) Create(ctx context.Context, complaint *domain.Complaint, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}

	s.lastNumber++
	complaint.Number = strconv.Itoa(s.lastNumber)
	stored := *complaint
	s.complaints[complaint.ID] = &stored
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memStore) Update(ctx context.Context, complaint *domain.Complaint, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}

	if _, ok := s.complaints[complaint.ID]; !ok || s.deleted[complaint.ID] {
		return domain.NewNotFoundError("complaint", complaint.ID)
	}
	stored := *complaint
	s.complaints[complaint.ID] = &stored
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}

	if _, ok := s.complaints[id]; !ok || s.deleted[id] {
		return domain.NewNotFoundError("complaint", id)
	}
	s.deleted[id] = true
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	complaint, ok := s.complaints[id]
	if !ok || s.deleted[id] {
		return nil, domain.NewNotFoundError("complaint", id)
	}
	copied := *complaint
	return &copied, nil
}

func (s *memStore) List(ctx context.Context, filter domain.ComplaintFilter) ([]*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Complaint
	for id, c := range s.complaints {
		if s.deleted[id] {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.CustomerName), needle) &&
				!strings.Contains(strings.ToLower(c.Project), needle) &&
				!strings.Contains(c.Number, filter.Search) {
				continue
			}
		}
		copied := *c
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (s *memStore) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[domain.ComplaintStatus]int)
	for id, c := range s.complaints {
		if !s.deleted[id] {
			counts[c.Status]++
		}
	}
	return counts, nil
}

func (s *memStore) Append(ctx context.Context, entry *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memStore) ListByComplaint(ctx context.Context, complaintID string) ([]*domain.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*domain.AuditEntry{}
	for _, e := range s.entries {
		if e.ComplaintID == complaintID {
			copied := *e
			result = append(result, &copied)
		}
	}
	// Most recent first; entries were appended in order.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}
