package usecase

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilalcrm/tilal/internal/domain"
)

// memMetricStore is an in-memory MetricRepository keyed by row id.
type memMetricStore struct {
	performance  map[string]*domain.PerformanceMetric
	service      map[string]*domain.CustomerServiceMetric
	satisfaction map[string]*domain.CustomerSatisfaction
	notes        []*domain.Note
}

func newMemMetricStore() *memMetricStore {
	return &memMetricStore{
		performance:  make(map[string]*domain.PerformanceMetric),
		service:      make(map[string]*domain.CustomerServiceMetric),
		satisfaction: make(map[string]*domain.CustomerSatisfaction),
	}
}

func (s *memMetricStore) ListPerformance(_ context.Context, period domain.PeriodType) ([]*domain.PerformanceMetric, error) {
	out := []*domain.PerformanceMetric{}
	for _, m := range s.performance {
		if m.PeriodType == period {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMetricStore) UpsertPerformance(_ context.Context, metric *domain.PerformanceMetric) error {
	s.performance[metric.ID] = metric
	return nil
}

func (s *memMetricStore) ListCustomerService(_ context.Context, period domain.PeriodType) ([]*domain.CustomerServiceMetric, error) {
	out := []*domain.CustomerServiceMetric{}
	for _, m := range s.service {
		if m.PeriodType == period {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMetricStore) UpsertCustomerService(_ context.Context, metric *domain.CustomerServiceMetric) error {
	s.service[metric.ID] = metric
	return nil
}

func (s *memMetricStore) ListSatisfaction(_ context.Context, period domain.PeriodType) ([]*domain.CustomerSatisfaction, error) {
	out := []*domain.CustomerSatisfaction{}
	for _, r := range s.satisfaction {
		if r.PeriodType == period {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memMetricStore) UpsertSatisfaction(_ context.Context, row *domain.CustomerSatisfaction) error {
	s.satisfaction[row.ID] = row
	return nil
}

func (s *memMetricStore) ListNotes(_ context.Context) ([]*domain.Note, error) {
	return s.notes, nil
}

func (s *memMetricStore) CreateNote(_ context.Context, note *domain.Note) error {
	s.notes = append(s.notes, note)
	return nil
}

func newMetricsTestUseCase(t *testing.T) (*MetricsUseCase, *memMetricStore) {
	t.Helper()
	store := newMemMetricStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMetricsUseCase(store, logger), store
}

func TestUpsertPerformanceDerivesTargetAchieved(t *testing.T) {
	uc, store := newMetricsTestUseCase(t)
	ctx := context.Background()

	hit, err := uc.UpsertPerformance(ctx, "", UpsertPerformanceRequest{
		MetricName: "response time",
		PeriodType: domain.PeriodWeekly,
		Value:      95,
		Target:     90,
	})
	require.NoError(t, err)
	assert.True(t, hit.TargetAchieved)
	assert.NotEmpty(t, hit.ID)

	miss, err := uc.UpsertPerformance(ctx, "", UpsertPerformanceRequest{
		MetricName: "resolution rate",
		PeriodType: domain.PeriodWeekly,
		Value:      70,
		Target:     90,
	})
	require.NoError(t, err)
	assert.False(t, miss.TargetAchieved)

	assert.Len(t, store.performance, 2)
}

func TestUpsertPerformanceKeepsID(t *testing.T) {
	uc, store := newMetricsTestUseCase(t)
	ctx := context.Background()

	req := UpsertPerformanceRequest{MetricName: "response time", PeriodType: domain.PeriodAnnual, Value: 80, Target: 90}
	first, err := uc.UpsertPerformance(ctx, "", req)
	require.NoError(t, err)

	req.Value = 92
	second, err := uc.UpsertPerformance(ctx, first.ID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.TargetAchieved)
	assert.Len(t, store.performance, 1)
}

func TestUpsertPerformanceValidation(t *testing.T) {
	uc, _ := newMetricsTestUseCase(t)
	ctx := context.Background()

	_, err := uc.UpsertPerformance(ctx, "", UpsertPerformanceRequest{PeriodType: domain.PeriodWeekly})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "metric_name", vErr.Field)

	_, err = uc.UpsertPerformance(ctx, "", UpsertPerformanceRequest{MetricName: "x", PeriodType: "monthly"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "period_type", vErr.Field)
}

func TestListPerformanceFiltersByPeriod(t *testing.T) {
	uc, _ := newMetricsTestUseCase(t)
	ctx := context.Background()

	_, err := uc.UpsertPerformance(ctx, "", UpsertPerformanceRequest{MetricName: "a", PeriodType: domain.PeriodWeekly})
	require.NoError(t, err)
	_, err = uc.UpsertPerformance(ctx, "", UpsertPerformanceRequest{MetricName: "b", PeriodType: domain.PeriodAnnual})
	require.NoError(t, err)

	weekly, err := uc.ListPerformance(ctx, domain.PeriodWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, "a", weekly[0].MetricName)

	_, err = uc.ListPerformance(ctx, "quarterly")
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpsertCustomerServiceValidation(t *testing.T) {
	uc, _ := newMetricsTestUseCase(t)
	ctx := context.Background()
	var vErr *domain.ValidationError

	_, err := uc.UpsertCustomerService(ctx, "", UpsertCustomerServiceRequest{
		Category: "billing", MetricName: "x", PeriodType: domain.PeriodWeekly,
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "category", vErr.Field)

	_, err = uc.UpsertCustomerService(ctx, "", UpsertCustomerServiceRequest{
		Category: domain.ServiceCategoryCalls, MetricName: "x", PeriodType: domain.PeriodWeekly, Value: -1,
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "value", vErr.Field)

	m, err := uc.UpsertCustomerService(ctx, "", UpsertCustomerServiceRequest{
		Category: domain.ServiceCategoryCalls, MetricName: "received calls", PeriodType: domain.PeriodWeekly, Value: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceCategoryCalls, m.Category)
}

func TestUpsertSatisfactionRecomputesTotalScore(t *testing.T) {
	uc, store := newMetricsTestUseCase(t)
	ctx := context.Background()

	row, err := uc.UpsertSatisfaction(ctx, "", UpsertSatisfactionRequest{
		Category:       "overall",
		PeriodType:     domain.PeriodWeekly,
		VeryPleased:    2,
		Pleased:        1,
		Neutral:        1,
		Displeased:     0,
		VeryDispleased: 0,
	})
	require.NoError(t, err)

	// (2*100 + 1*75 + 1*50) / 4
	assert.InDelta(t, 81.25, row.TotalScore, 0.001)
	assert.InDelta(t, 81.25, store.satisfaction[row.ID].TotalScore, 0.001)
}

func TestUpsertSatisfactionZeroAnswers(t *testing.T) {
	uc, _ := newMetricsTestUseCase(t)

	row, err := uc.UpsertSatisfaction(context.Background(), "", UpsertSatisfactionRequest{
		Category:   "overall",
		PeriodType: domain.PeriodAnnual,
	})
	require.NoError(t, err)
	assert.Zero(t, row.TotalScore)
}

func TestUpsertSatisfactionRejectsNegativeCounts(t *testing.T) {
	uc, _ := newMetricsTestUseCase(t)

	_, err := uc.UpsertSatisfaction(context.Background(), "", UpsertSatisfactionRequest{
		Category:   "overall",
		PeriodType: domain.PeriodWeekly,
		Neutral:    -3,
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "neutral", vErr.Field)
}

func TestNotes(t *testing.T) {
	uc, _ := newMetricsTestUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateNote(ctx, "")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	note, err := uc.CreateNote(ctx, "follow up with the maintenance team")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)

	notes, err := uc.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "follow up with the maintenance team", notes[0].Content)
}
