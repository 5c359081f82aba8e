package reports

import (
	"sort"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const recentActivityDays = 30

// BuildContributionTrends — динамика взносов по месяцам и активность
// за последние 30 дней.
func BuildContributionTrends(rows []models.ContributionRow, now time.Time) models.ContributionTrends {
	trends := models.ContributionTrends{MonthlyTrends: []models.MonthContribution{}}

	totals := make(map[string]*models.MonthContribution)
	recentCutoff := now.AddDate(0, 0, -recentActivityDays)

	var monthlySum float64
	for _, row := range rows {
		month := row.Date.Format("2006-01")
		entry, ok := totals[month]
		if !ok {
			entry = &models.MonthContribution{Month: month}
			totals[month] = entry
		}
		entry.Total += row.Amount
		entry.Count++
		monthlySum += row.Amount

		if !row.Date.Before(recentCutoff) {
			trends.RecentActivity.Count++
			trends.RecentActivity.Total += row.Amount
		}
	}

	for _, entry := range totals {
		entry.Total = round2(entry.Total)
		trends.MonthlyTrends = append(trends.MonthlyTrends, *entry)
	}
	sort.Slice(trends.MonthlyTrends, func(i, j int) bool {
		return trends.MonthlyTrends[i].Month < trends.MonthlyTrends[j].Month
	})

	trends.TotalMonths = len(trends.MonthlyTrends)
	if trends.TotalMonths > 0 {
		trends.AverageMonthlyContribution = round2(monthlySum / float64(trends.TotalMonths))
	}
	trends.RecentActivity.Total = round2(trends.RecentActivity.Total)
	if trends.RecentActivity.Count > 0 {
		trends.RecentActivity.Average = round2(trends.RecentActivity.Total / float64(trends.RecentActivity.Count))
	}
	return trends
}
