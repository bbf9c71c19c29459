package domain

import "time"

// PeriodType selects between the weekly and annual views of the dashboard
type PeriodType string

const (
	PeriodWeekly PeriodType = "weekly"
	PeriodAnnual PeriodType = "annual"
)

// ValidPeriod reports whether p is a known period type
func ValidPeriod(p PeriodType) bool {
	return p == PeriodWeekly || p == PeriodAnnual
}

// ServiceCategory groups customer-service counters
type ServiceCategory string

const (
	ServiceCategoryCalls       ServiceCategory = "calls"
	ServiceCategoryInquiries   ServiceCategory = "inquiries"
	ServiceCategoryMaintenance ServiceCategory = "maintenance"
)

// ValidServiceCategory reports whether c is a known service category
func ValidServiceCategory(c ServiceCategory) bool {
	switch c {
	case ServiceCategoryCalls, ServiceCategoryInquiries, ServiceCategoryMaintenance:
		return true
	}
	return false
}

// PerformanceMetric is a KPI value tracked against a target
type PerformanceMetric struct {
	ID             string     `json:"id"`
	MetricName     string     `json:"metric_name"`
	PeriodType     PeriodType `json:"period_type"`
	Value          float64    `json:"value"`
	Target         float64    `json:"target"`
	Change         float64    `json:"change"`
	IsPositive     bool       `json:"is_positive"`
	TargetAchieved bool       `json:"target_achieved"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CustomerServiceMetric is a counter of calls, inquiries or maintenance
// tickets for one period
type CustomerServiceMetric struct {
	ID         string          `json:"id"`
	Category   ServiceCategory `json:"category"`
	MetricName string          `json:"metric_name"`
	PeriodType PeriodType      `json:"period_type"`
	Value      float64         `json:"value"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CustomerSatisfaction holds survey answer counts for one category and period
type CustomerSatisfaction struct {
	ID             string     `json:"id"`
	Category       string     `json:"category"`
	PeriodType     PeriodType `json:"period_type"`
	VeryPleased    int        `json:"very_pleased"`
	Pleased        int        `json:"pleased"`
	Neutral        int        `json:"neutral"`
	Displeased     int        `json:"displeased"`
	VeryDispleased int        `json:"very_displeased"`
	TotalScore     float64    `json:"total_score"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ComputeTotalScore returns the weighted satisfaction percentage for the
// survey answer counts: very pleased counts 100, pleased 75, neutral 50,
// displeased 25 and very displeased 0. Zero answers yield a zero score.
func (s *CustomerSatisfaction) ComputeTotalScore() float64 {
	total := s.VeryPleased + s.Pleased + s.Neutral + s.Displeased + s.VeryDispleased
	if total == 0 {
		return 0
	}
	weighted := 100*s.VeryPleased + 75*s.Pleased + 50*s.Neutral + 25*s.Displeased
	return float64(weighted) / float64(total)
}

// Note is a free-form dashboard note
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
