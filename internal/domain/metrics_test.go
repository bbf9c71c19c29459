package domain

import (
	"math"
	"testing"
)

func TestComputeTotalScore(t *testing.T) {
	tests := []struct {
		name string
		row  CustomerSatisfaction
		want float64
	}{
		{
			name: "all very pleased",
			row:  CustomerSatisfaction{VeryPleased: 10},
			want: 100,
		},
		{
			name: "all very displeased",
			row:  CustomerSatisfaction{VeryDispleased: 7},
			want: 0,
		},
		{
			name: "mixed answers",
			row:  CustomerSatisfaction{VeryPleased: 2, Pleased: 1, Neutral: 1},
			want: 81.25,
		},
		{
			name: "even spread",
			row:  CustomerSatisfaction{VeryPleased: 1, Pleased: 1, Neutral: 1, Displeased: 1, VeryDispleased: 1},
			want: 50,
		},
		{
			name: "no answers",
			row:  CustomerSatisfaction{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.row.ComputeTotalScore()
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("ComputeTotalScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidPeriod(t *testing.T) {
	if !ValidPeriod(PeriodWeekly) || !ValidPeriod(PeriodAnnual) {
		t.Error("expected weekly and annual to be valid")
	}
	if ValidPeriod("monthly") || ValidPeriod("") {
		t.Error("expected unknown periods to be invalid")
	}
}

func TestValidServiceCategory(t *testing.T) {
	for _, c := range []ServiceCategory{ServiceCategoryCalls, ServiceCategoryInquiries, ServiceCategoryMaintenance} {
		if !ValidServiceCategory(c) {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if ValidServiceCategory("billing") {
		t.Error("expected billing to be invalid")
	}
}
