package reports_test

import (
	"testing"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/internal/reports"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func contribRow(goalID int, amount float64, date time.Time) models.ContributionRow {
	return models.ContributionRow{GoalID: goalID, Amount: amount, Date: date}
}

func TestBuildContributionTrends(t *testing.T) {
	rows := []models.ContributionRow{
		contribRow(1, 100, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		contribRow(1, 50, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)),
		contribRow(2, 200, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
	}

	trends := reports.BuildContributionTrends(rows, testNow)

	if trends.TotalMonths != 2 {
		t.Fatalf("TotalMonths = %d, хотели 2", trends.TotalMonths)
	}
	if trends.MonthlyTrends[0].Month != "2024-05" || trends.MonthlyTrends[1].Month != "2024-06" {
		t.Errorf("порядок месяцев: %+v", trends.MonthlyTrends)
	}
	if trends.MonthlyTrends[0].Total != 150 || trends.MonthlyTrends[0].Count != 2 {
		t.Errorf("май: %+v", trends.MonthlyTrends[0])
	}
	if trends.AverageMonthlyContribution != 175 {
		t.Errorf("AverageMonthlyContribution = %v, хотели 175", trends.AverageMonthlyContribution)
	}
}

func TestContributionTrendsRecentActivity(t *testing.T) {
	// Граница окна: 30 дней до testNow — 2024-05-16
	rows := []models.ContributionRow{
		contribRow(1, 100, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),  // вне окна
		contribRow(1, 40, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)),  // внутри
		contribRow(2, 200, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)), // внутри
	}

	trends := reports.BuildContributionTrends(rows, testNow)

	if trends.RecentActivity.Count != 2 {
		t.Fatalf("RecentActivity.Count = %d, хотели 2", trends.RecentActivity.Count)
	}
	if trends.RecentActivity.Total != 240 {
		t.Errorf("RecentActivity.Total = %v, хотели 240", trends.RecentActivity.Total)
	}
	if trends.RecentActivity.Average != 120 {
		t.Errorf("RecentActivity.Average = %v, хотели 120", trends.RecentActivity.Average)
	}
}

func TestContributionTrendsEmpty(t *testing.T) {
	trends := reports.BuildContributionTrends(nil, testNow)

	if trends.TotalMonths != 0 || trends.AverageMonthlyContribution != 0 {
		t.Errorf("пустой ввод дал ненулевую динамику: %+v", trends)
	}
	if trends.MonthlyTrends == nil {
		t.Errorf("MonthlyTrends должен быть пустым срезом, не nil")
	}
}
