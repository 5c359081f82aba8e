package reports_test

import (
	"testing"

	"github.com/valeriaulyamaeva/finance-tracker/internal/reports"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func TestBuildForecastEstimation(t *testing.T) {
	// 30 прошедших дней, накоплено 300: темп 10/день, осталось 700
	goals := []models.GoalRow{goalRow(1, "Отпуск", 1000, 300, models.GoalActive, -30, 70)}

	report := reports.BuildForecast(goals, testNow)

	if len(report.Forecasts) != 1 {
		t.Fatalf("прогнозов %d, хотели 1", len(report.Forecasts))
	}
	f := report.Forecasts[0]
	if f.RemainingAmount != 700 {
		t.Errorf("RemainingAmount = %v, хотели 700", f.RemainingAmount)
	}
	if f.EstimatedDaysToComplete == nil || *f.EstimatedDaysToComplete != 70 {
		t.Fatalf("EstimatedDaysToComplete = %v, хотели 70", f.EstimatedDaysToComplete)
	}
	wantDate := testNow.AddDate(0, 0, 70)
	if f.EstimatedCompletionDate == nil || !f.EstimatedCompletionDate.Equal(wantDate) {
		t.Errorf("EstimatedCompletionDate = %v, хотели %v", f.EstimatedCompletionDate, wantDate)
	}
}

func TestBuildForecastVerySlowGoal(t *testing.T) {
	// Темп 1/день при остатке почти в миллиард: оценка в сотни тысяч лет
	// должна оставаться датой в будущем, а не заворачиваться в прошлое
	goals := []models.GoalRow{goalRow(1, "g", 1e9, 1, models.GoalActive, -1, 30)}

	report := reports.BuildForecast(goals, testNow)

	f := report.Forecasts[0]
	if f.EstimatedDaysToComplete == nil || *f.EstimatedDaysToComplete != 999999999 {
		t.Fatalf("EstimatedDaysToComplete = %v, хотели 999999999", f.EstimatedDaysToComplete)
	}
	if f.EstimatedCompletionDate == nil || !f.EstimatedCompletionDate.After(testNow) {
		t.Errorf("EstimatedCompletionDate = %v, дата не в будущем", f.EstimatedCompletionDate)
	}
	wantDate := testNow.AddDate(0, 0, 999999999)
	if !f.EstimatedCompletionDate.Equal(wantDate) {
		t.Errorf("EstimatedCompletionDate = %v, хотели %v", f.EstimatedCompletionDate, wantDate)
	}
}

func TestBuildForecastProbability(t *testing.T) {
	tests := []struct {
		name  string
		saved float64
		want  string
	}{
		// старт 30 дней назад, дедлайн через 70
		{"темп достаточный", 300, "high"},
		{"темп чуть ниже требуемого", 270, "medium"},
		{"темп далеко от требуемого", 30, "low"},
		{"взносов не было", 0, "low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := []models.GoalRow{goalRow(1, "g", 1000, tt.saved, models.GoalActive, -30, 70)}
			report := reports.BuildForecast(goals, testNow)
			if got := report.Forecasts[0].CompletionProbability; got != tt.want {
				t.Errorf("CompletionProbability = %q, хотели %q", got, tt.want)
			}
		})
	}
}

func TestBuildForecastZeroRate(t *testing.T) {
	goals := []models.GoalRow{goalRow(1, "g", 1000, 0, models.GoalActive, -30, 70)}

	report := reports.BuildForecast(goals, testNow)

	f := report.Forecasts[0]
	if f.EstimatedDaysToComplete != nil || f.EstimatedCompletionDate != nil {
		t.Errorf("при нулевом темпе оценка должна отсутствовать: %+v", f)
	}
}

func TestBuildForecastReachedGoal(t *testing.T) {
	goals := []models.GoalRow{goalRow(1, "g", 1000, 1200, models.GoalActive, -30, 70)}

	report := reports.BuildForecast(goals, testNow)

	f := report.Forecasts[0]
	if f.RemainingAmount != 0 {
		t.Errorf("RemainingAmount = %v, хотели 0", f.RemainingAmount)
	}
	if f.EstimatedDaysToComplete != nil {
		t.Errorf("достигнутой цели оценка не нужна")
	}
	if f.CompletionProbability != "high" {
		t.Errorf("CompletionProbability = %q, хотели high", f.CompletionProbability)
	}
}

func TestBuildForecastSummary(t *testing.T) {
	goals := []models.GoalRow{
		goalRow(1, "a", 1000, 300, models.GoalActive, -30, 70), // high, 70 дней
		goalRow(2, "b", 1000, 270, models.GoalActive, -30, 70), // medium, ceil(730/9) = 82
		goalRow(3, "c", 1000, 0, models.GoalActive, -30, 70),   // low, без оценки
	}

	report := reports.BuildForecast(goals, testNow)

	s := report.Summary
	if s.TotalGoals != 3 || s.OnTrackGoals != 1 {
		t.Errorf("сводка: %+v", s)
	}
	if s.HighProbability != 1 || s.MediumProbability != 1 || s.LowProbability != 1 {
		t.Errorf("распределение вероятностей: %+v", s)
	}
	// Среднее только по целям с оценкой: (70 + 82) / 2
	if s.AverageEstimatedDays != 76 {
		t.Errorf("AverageEstimatedDays = %v, хотели 76", s.AverageEstimatedDays)
	}
}
