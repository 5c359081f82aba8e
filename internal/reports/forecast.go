package reports

import (
	"math"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// BuildForecast оценивает дату достижения каждой цели по фактическому
// темпу накоплений. При нулевом темпе дата не определена (nil).
func BuildForecast(goals []models.GoalRow, now time.Time) models.GoalForecastReport {
	report := models.GoalForecastReport{Forecasts: []models.GoalForecast{}}

	var totalEstimatedDays float64
	var estimatedCount int

	for _, goal := range goals {
		m := computeMetrics(goal, now)
		remaining := goal.GoalAmount - goal.SavedAmount
		if remaining < 0 {
			remaining = 0
		}

		forecast := models.GoalForecast{
			GoalID:               goal.ID,
			GoalName:             goal.Name,
			GoalAmount:           round2(goal.GoalAmount),
			SavedAmount:          round2(goal.SavedAmount),
			RemainingAmount:      round2(remaining),
			Progress:             round2(m.progress),
			DaysRemaining:        m.daysRemaining,
			ActualDailyAverage:   round2(m.actualDailyAverage),
			RequiredDailySavings: round2(m.requiredDailySavings),
			IsOnTrack:            m.isOnTrack,
		}

		if m.actualDailyAverage > 0 && remaining > 0 {
			days := int(math.Ceil(remaining / m.actualDailyAverage))
			// Дата считается по календарным дням: time.Duration в наносекундах
			// переполняется уже примерно на 292 годах
			completion := now.AddDate(0, 0, days)
			forecast.EstimatedDaysToComplete = &days
			forecast.EstimatedCompletionDate = &completion

			totalEstimatedDays += float64(days)
			estimatedCount++
		}

		switch {
		case m.isOnTrack:
			forecast.CompletionProbability = "high"
		case m.actualDailyAverage > m.requiredDailySavings*0.8:
			forecast.CompletionProbability = "medium"
		default:
			forecast.CompletionProbability = "low"
		}

		report.Forecasts = append(report.Forecasts, forecast)

		report.Summary.TotalGoals++
		if m.isOnTrack {
			report.Summary.OnTrackGoals++
		}
		switch forecast.CompletionProbability {
		case "high":
			report.Summary.HighProbability++
		case "medium":
			report.Summary.MediumProbability++
		default:
			report.Summary.LowProbability++
		}
	}

	if estimatedCount > 0 {
		report.Summary.AverageEstimatedDays = round2(totalEstimatedDays / float64(estimatedCount))
	}
	return report
}
