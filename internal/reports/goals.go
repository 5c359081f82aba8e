package reports

import (
	"math"
	"sort"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const (
	topGoalsLimit       = 5
	atRiskDaysThreshold = 30
	atRiskProgressLimit = 50
	criticalRiskDays    = 7
	hoursPerDay         = 24
)

// Единое определение «цель идет по графику»: фактический средний темп
// накоплений не ниже требуемого (actualDailyAverage >= requiredDailySavings).
// Исторический вариант с долей прошедшего срока не используется.

// Progress возвращает процент выполнения цели; 0 при нулевой целевой сумме.
func Progress(goalAmount, savedAmount float64) float64 {
	if goalAmount == 0 {
		return 0
	}
	return savedAmount / goalAmount * 100
}

// DaysRemaining — дней до дедлайна, округление вверх, не меньше нуля.
func DaysRemaining(endDate, now time.Time) int {
	days := int(math.Ceil(endDate.Sub(now).Hours() / hoursPerDay))
	if days < 0 {
		return 0
	}
	return days
}

// goalMetrics — общие производные показатели одной цели.
type goalMetrics struct {
	progress             float64
	daysRemaining        int
	isOverdue            bool
	actualDailyAverage   float64
	requiredDailySavings float64
	isOnTrack            bool
}

func computeMetrics(goal models.GoalRow, now time.Time) goalMetrics {
	m := goalMetrics{
		progress:      Progress(goal.GoalAmount, goal.SavedAmount),
		daysRemaining: DaysRemaining(goal.EndDate, now),
	}
	m.isOverdue = now.After(goal.EndDate) && m.daysRemaining == 0 && goal.SavedAmount < goal.GoalAmount

	elapsedDays := now.Sub(goal.StartDate).Hours() / hoursPerDay
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	m.actualDailyAverage = goal.SavedAmount / elapsedDays

	remaining := goal.GoalAmount - goal.SavedAmount
	if remaining <= 0 {
		m.requiredDailySavings = 0
		m.isOnTrack = true
		return m
	}
	days := m.daysRemaining
	if days < 1 {
		days = 1
	}
	m.requiredDailySavings = remaining / float64(days)
	m.isOnTrack = m.actualDailyAverage >= m.requiredDailySavings
	return m
}

// BuildGoalOverview — сводный отчет по целям: прогресс каждой, лидеры,
// цели под угрозой срыва и итоговые показатели.
func BuildGoalOverview(goals []models.GoalRow, now time.Time) models.GoalOverview {
	overview := models.GoalOverview{
		Goals:              []models.GoalReportEntry{},
		TopPerformingGoals: []models.GoalReportEntry{},
		GoalsAtRisk:        []models.AtRiskGoal{},
	}

	var totalTarget, totalSaved float64
	for _, goal := range goals {
		m := computeMetrics(goal, now)

		entry := models.GoalReportEntry{
			GoalID:        goal.ID,
			GoalName:      goal.Name,
			GoalAmount:    round2(goal.GoalAmount),
			SavedAmount:   round2(goal.SavedAmount),
			Status:        goal.Status,
			Progress:      round2(m.progress),
			DaysRemaining: m.daysRemaining,
			IsOverdue:     m.isOverdue,
			IsOnTrack:     m.isOnTrack,
		}
		overview.Goals = append(overview.Goals, entry)

		overview.Summary.TotalGoals++
		switch goal.Status {
		case models.GoalActive:
			overview.Summary.ActiveGoals++
		case models.GoalCompleted:
			overview.Summary.CompletedGoals++
		}
		totalTarget += goal.GoalAmount
		totalSaved += goal.SavedAmount

		if goal.Status == models.GoalActive && m.daysRemaining <= atRiskDaysThreshold && m.progress < atRiskProgressLimit {
			overview.GoalsAtRisk = append(overview.GoalsAtRisk, models.AtRiskGoal{
				GoalID:               goal.ID,
				GoalName:             goal.Name,
				GoalAmount:           round2(goal.GoalAmount),
				SavedAmount:          round2(goal.SavedAmount),
				Progress:             round2(m.progress),
				DaysRemaining:        m.daysRemaining,
				IsOverdue:            m.isOverdue,
				RequiredDailySavings: round2(m.requiredDailySavings),
				RiskLevel:            riskLevel(m.daysRemaining),
			})
		}
	}

	overview.Summary.TotalTarget = round2(totalTarget)
	overview.Summary.TotalSaved = round2(totalSaved)
	overview.Summary.OverallProgress = round2(Progress(totalTarget, totalSaved))

	overview.TopPerformingGoals = topPerforming(overview.Goals)

	sort.SliceStable(overview.GoalsAtRisk, func(i, j int) bool {
		return overview.GoalsAtRisk[i].DaysRemaining < overview.GoalsAtRisk[j].DaysRemaining
	})
	for _, goal := range overview.GoalsAtRisk {
		overview.AtRiskSummary.TotalAtRisk++
		switch goal.RiskLevel {
		case "critical":
			overview.AtRiskSummary.CriticalRisk++
		case "high":
			overview.AtRiskSummary.HighRisk++
		default:
			overview.AtRiskSummary.MediumRisk++
		}
	}
	return overview
}

// topPerforming — пять активных целей с наибольшим прогрессом.
func topPerforming(entries []models.GoalReportEntry) []models.GoalReportEntry {
	active := make([]models.GoalReportEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == models.GoalActive {
			active = append(active, entry)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Progress > active[j].Progress
	})
	if len(active) > topGoalsLimit {
		active = active[:topGoalsLimit]
	}
	return active
}

func riskLevel(daysRemaining int) string {
	switch {
	case daysRemaining <= criticalRiskDays:
		return "critical"
	case daysRemaining <= atRiskDaysThreshold:
		return "high"
	default:
		return "medium"
	}
}

// BuildGoalProgress — темповый отчет: фактическая и требуемая дневная
// скорость накоплений по каждой цели.
func BuildGoalProgress(goals []models.GoalRow, now time.Time) []models.GoalProgress {
	result := make([]models.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		m := computeMetrics(goal, now)
		result = append(result, models.GoalProgress{
			GoalID:               goal.ID,
			GoalName:             goal.Name,
			GoalAmount:           round2(goal.GoalAmount),
			SavedAmount:          round2(goal.SavedAmount),
			Progress:             round2(m.progress),
			DaysRemaining:        m.daysRemaining,
			ActualDailyAverage:   round2(m.actualDailyAverage),
			RequiredDailySavings: round2(m.requiredDailySavings),
			IsOnTrack:            m.isOnTrack,
		})
	}
	return result
}
