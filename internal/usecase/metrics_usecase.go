package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tilalcrm/tilal/internal/domain"
	"github.com/tilalcrm/tilal/internal/ports"
)

// UpsertPerformanceRequest carries the editable fields of a KPI row
type UpsertPerformanceRequest struct {
	MetricName string            `json:"metric_name" validate:"required"`
	PeriodType domain.PeriodType `json:"period_type" validate:"required"`
	Value      float64           `json:"value"`
	Target     float64           `json:"target"`
	Change     float64           `json:"change"`
	IsPositive bool              `json:"is_positive"`
}

// UpsertCustomerServiceRequest carries the editable fields of a service counter
type UpsertCustomerServiceRequest struct {
	Category   domain.ServiceCategory `json:"category" validate:"required"`
	MetricName string                 `json:"metric_name" validate:"required"`
	PeriodType domain.PeriodType      `json:"period_type" validate:"required"`
	Value      float64                `json:"value"`
}

// UpsertSatisfactionRequest carries survey answer counts for one category
type UpsertSatisfactionRequest struct {
	Category       string            `json:"category" validate:"required"`
	PeriodType     domain.PeriodType `json:"period_type" validate:"required"`
	VeryPleased    int               `json:"very_pleased"`
	Pleased        int               `json:"pleased"`
	Neutral        int               `json:"neutral"`
	Displeased     int               `json:"displeased"`
	VeryDispleased int               `json:"very_displeased"`
}

// MetricsUseCase handles the dashboard metric editors
type MetricsUseCase struct {
	metricRepo ports.MetricRepository
	logger     *logrus.Logger
}

// NewMetricsUseCase creates a new metrics use case
func NewMetricsUseCase(metricRepo ports.MetricRepository, logger *logrus.Logger) *MetricsUseCase {
	return &MetricsUseCase{metricRepo: metricRepo, logger: logger}
}

// ListPerformance returns the KPI rows for one period
func (uc *MetricsUseCase) ListPerformance(ctx context.Context, period domain.PeriodType) ([]*domain.PerformanceMetric, error) {
	if !domain.ValidPeriod(period) {
		return nil, domain.NewValidationError("period_type", fmt.Sprintf("unknown period %q", period))
	}
	return uc.metricRepo.ListPerformance(ctx, period)
}

// UpsertPerformance writes a KPI row, deriving target_achieved from the
// current value and target
func (uc *MetricsUseCase) UpsertPerformance(ctx context.Context, id string, req UpsertPerformanceRequest) (*domain.PerformanceMetric, error) {
	if req.MetricName == "" {
		return nil, domain.NewValidationError("metric_name", "metric name is required")
	}
	if !domain.ValidPeriod(req.PeriodType) {
		return nil, domain.NewValidationError("period_type", fmt.Sprintf("unknown period %q", req.PeriodType))
	}
	if id == "" {
		id = uuid.New().String()
	}

	metric := &domain.PerformanceMetric{
		ID:             id,
		MetricName:     req.MetricName,
		PeriodType:     req.PeriodType,
		Value:          req.Value,
		Target:         req.Target,
		Change:         req.Change,
		IsPositive:     req.IsPositive,
		TargetAchieved: req.Value >= req.Target,
		UpdatedAt:      time.Now(),
	}
	if err := uc.metricRepo.UpsertPerformance(ctx, metric); err != nil {
		return nil, fmt.Errorf("failed to upsert performance metric: %w", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"metric_name": metric.MetricName,
		"period_type": metric.PeriodType,
	}).Info("performance metric updated")

	return metric, nil
}

// ListCustomerService returns the service counters for one period
func (uc *MetricsUseCase) ListCustomerService(ctx context.Context, period domain.PeriodType) ([]*domain.CustomerServiceMetric, error) {
	if !domain.ValidPeriod(period) {
		return nil, domain.NewValidationError("period_type", fmt.Sprintf("unknown period %q", period))
	}
	return uc.metricRepo.ListCustomerService(ctx, period)
}

// UpsertCustomerService writes a service counter row
func (uc *MetricsUseCase) UpsertCustomerService(ctx context.Context, id string, req UpsertCustomerServiceRequest) (*domain.CustomerServiceMetric, error) {
	if req.MetricName == "" {
		return nil, domain.NewValidationError("metric_name", "metric name is required")
	}
	if !domain.ValidServiceCategory(req.Category) {
		return nil, domain.NewValidationError("category", fmt.Sprintf("unknown category %q", req.Category))
	}
	if !domain.ValidPeriod(req.PeriodType) {
		return nil, domain.NewValidationError("period_type", fmt.Sprintf("unknown period %q", req.PeriodType))
	}
	if req.Value < 0 {
		return nil, domain.NewValidationError("value", "value must not be negative")
	}
	if id == "" {
		id = uuid.New().String()
	}

	metric := &domain.CustomerServiceMetric{
		ID:         id,
		Category:   req.Category,
		MetricName: req.MetricName,
		PeriodType: req.PeriodType,
		Value:      req.Value,
		UpdatedAt:  time.Now(),
	}
	if err := uc.metricRepo.UpsertCustomerService(ctx, metric); err != nil {
		return nil, fmt.Errorf("failed to upsert customer service metric: %w", err)
	}
	return metric, nil
}

// ListSatisfaction returns the survey rows for one period
func (uc *MetricsUseCase) ListSatisfaction(ctx context.Context, period domain.PeriodType) ([]*domain.CustomerSatisfaction, error) {
	if !domain.ValidPeriod(period) {
		return nil, domain.NewValidationError("period_type", fmt.Sprintf("unknown period %q", period))
	}
	return uc.metricRepo.ListSatisfaction(ctx, period)
}

// UpsertSatisfaction writes a survey row. The total score is always
// recomputed from the answer counts, never taken from the caller.
func (uc *MetricsUseCase) UpsertSatisfaction(ctx context.Context, id string, req UpsertSatisfactionRequest) (*domain.CustomerSatisfaction, error) {
	if req.Category == "" {
		return nil, domain.NewValidationError("category", "category is required")
	}
	if !domain.ValidPeriod(req.PeriodType) {
		return nil, domain.NewValidationError("period_type", fmt.Sprintf("unknown period %q", req.PeriodType))
	}
	for name, v := range map[string]int{
		"very_pleased":    req.VeryPleased,
		"pleased":         req.Pleased,
		"neutral":         req.Neutral,
		"displeased":      req.Displeased,
		"very_displeased": req.VeryDispleased,
	} {
		if v < 0 {
			return nil, domain.NewValidationError(name, "count must not be negative")
		}
	}
	if id == "" {
		id = uuid.New().String()
	}

	row := &domain.CustomerSatisfaction{
		ID:             id,
		Category:       req.Category,
		PeriodType:     req.PeriodType,
		VeryPleased:    req.VeryPleased,
		Pleased:        req.Pleased,
		Neutral:        req.Neutral,
		Displeased:     req.Displeased,
		VeryDispleased: req.VeryDispleased,
		UpdatedAt:      time.Now(),
	}
	row.TotalScore = row.ComputeTotalScore()

	if err := uc.metricRepo.UpsertSatisfaction(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to upsert satisfaction row: %w", err)
	}
	return row, nil
}

// ListNotes returns all dashboard notes
func (uc *MetricsUseCase) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	return uc.metricRepo.ListNotes(ctx)
}

// CreateNote stores a free-form dashboard note
func (uc *MetricsUseCase) CreateNote(ctx context.Context, content string) (*domain.Note, error) {
	if content == "" {
		return nil, domain.NewValidationError("content", "content is required")
	}
	note := &domain.Note{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uc.metricRepo.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}
