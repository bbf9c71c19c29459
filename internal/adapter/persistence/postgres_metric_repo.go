package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/ports"
)

// PostgresMetricRepository implements MetricRepository using PostgreSQL
type PostgresMetricRepository struct {
	db *sql.DB
}

// NewPostgresMetricRepository creates a new PostgreSQL metric repository
func NewPostgresMetricRepository(db *sql.DB) ports.MetricRepository {
	return &PostgresMetricRepository{db: db}
}

// ListPerformance returns KPI rows for one period ordered by name
func (r *PostgresMetricRepository) ListPerformance(ctx context.Context, period domain.PeriodType) ([]*domain.PerformanceMetric, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, metric_name, period_type, value, target, change, is_positive, target_achieved, created_at, updated_at
		FROM performance_metrics
		WHERE period_type = $1
		ORDER BY metric_name`,
		string(period),
	)
	if err != nil {
		return nil, domain.NewPersistenceError("performance list", err)
	}
	defer rows.Close()

	var metrics []*domain.PerformanceMetric
	for rows.Next() {
		var m domain.PerformanceMetric
		err := rows.Scan(&m.ID, &m.MetricName, &m.PeriodType, &m.Value, &m.Target, &m.Change, &m.IsPositive, &m.TargetAchieved, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, domain.NewPersistenceError("performance list", err)
		}
		metrics = append(metrics, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("performance list", err)
	}
	return metrics, nil
}

// UpsertPerformance inserts or replaces a KPI row by id
func (r *PostgresMetricRepository) UpsertPerformance(ctx context.Context, m *domain.PerformanceMetric) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO performance_metrics (id, metric_name, period_type, value, target, change, is_positive, target_achieved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (id) DO UPDATE SET
			metric_name = EXCLUDED.metric_name,
			period_type = EXCLUDED.period_type,
			value = EXCLUDED.value,
			target = EXCLUDED.target,
			change = EXCLUDED.change,
			is_positive = EXCLUDED.is_positive,
			target_achieved = EXCLUDED.target_achieved,
			updated_at = EXCLUDED.updated_at`,
		m.ID, m.MetricName, string(m.PeriodType), m.Value, m.Target, m.Change, m.IsPositive, m.TargetAchieved, m.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("performance upsert", err)
	}
	return nil
}

// ListCustomerService returns service counters for one period
func (r *PostgresMetricRepository) ListCustomerService(ctx context.Context, period domain.PeriodType) ([]*domain.CustomerServiceMetric, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, metric_name, period_type, value, created_at, updated_at
		FROM customer_service_metrics
		WHERE period_type = $1
		ORDER BY category, metric_name`,
		string(period),
	)
	if err != nil {
		return nil, domain.NewPersistenceError("customer service list", err)
	}
	defer rows.Close()

	var metrics []*domain.CustomerServiceMetric
	for rows.Next() {
		var m domain.CustomerServiceMetric
		err := rows.Scan(&m.ID, &m.Category, &m.MetricName, &m.PeriodType, &m.Value, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, domain.NewPersistenceError("customer service list", err)
		}
		metrics = append(metrics, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("customer service list", err)
	}
	return metrics, nil
}

// UpsertCustomerService inserts or replaces a service counter row by id
func (r *PostgresMetricRepository) UpsertCustomerService(ctx context.Context, m *domain.CustomerServiceMetric) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customer_service_metrics (id, category, metric_name, period_type, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			metric_name = EXCLUDED.metric_name,
			period_type = EXCLUDED.period_type,
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`,
		m.ID, string(m.Category), m.MetricName, string(m.PeriodType), m.Value, m.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("customer service upsert", err)
	}
	return nil
}

// ListSatisfaction returns survey rows for one period
func (r *PostgresMetricRepository) ListSatisfaction(ctx context.Context, period domain.PeriodType) ([]*domain.CustomerSatisfaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, period_type, very_pleased, pleased, neutral, displeased, very_displeased, total_score, created_at, updated_at
		FROM customer_satisfaction
		WHERE period_type = $1
		ORDER BY category`,
		string(period),
	)
	if err != nil {
		return nil, domain.NewPersistenceError("satisfaction list", err)
	}
	defer rows.Close()

	var results []*domain.CustomerSatisfaction
	for rows.Next() {
		var s domain.CustomerSatisfaction
		err := rows.Scan(&s.ID, &s.Category, &s.PeriodType, &s.VeryPleased, &s.Pleased, &s.Neutral, &s.Displeased, &s.VeryDispleased, &s.TotalScore, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, domain.NewPersistenceError("satisfaction list", err)
		}
		results = append(results, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("satisfaction list", err)
	}
	return results, nil
}

// UpsertSatisfaction inserts or replaces a survey row by id
func (r *PostgresMetricRepository) UpsertSatisfaction(ctx context.Context, s *domain.CustomerSatisfaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customer_satisfaction (id, category, period_type, very_pleased, pleased, neutral, displeased, very_displeased, total_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			period_type = EXCLUDED.period_type,
			very_pleased = EXCLUDED.very_pleased,
			pleased = EXCLUDED.pleased,
			neutral = EXCLUDED.neutral,
			displeased = EXCLUDED.displeased,
			very_displeased = EXCLUDED.very_displeased,
			total_score = EXCLUDED.total_score,
			updated_at = EXCLUDED.updated_at`,
		s.ID, s.Category, string(s.PeriodType), s.VeryPleased, s.Pleased, s.Neutral, s.Displeased, s.VeryDispleased, s.TotalScore, s.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("satisfaction upsert", err)
	}
	return nil
}

// ListNotes returns all dashboard notes, most recent first
func (r *PostgresMetricRepository) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, created_at FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.NewPersistenceError("notes list", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt); err != nil {
			return nil, domain.NewPersistenceError("notes list", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("notes list", err)
	}
	return notes, nil
}

// CreateNote stores a dashboard note
func (r *PostgresMetricRepository) CreateNote(ctx context.Context, note *domain.Note) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, content, created_at) VALUES ($1, $2, $3)`,
		note.ID, note.Content, note.CreatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("note create", err)
	}
	return nil
}
