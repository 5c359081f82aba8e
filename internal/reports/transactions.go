package reports

import (
	"sort"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const (
	topCategoriesLimit  = 10
	largestTxLimit      = 5
	trailingTrendMonths = 12
)

// BuildTransactionReport собирает финансовый отчет по строкам транзакций.
// now нужен только для 12-месячного тренда.
func BuildTransactionReport(rows []models.TransactionRow, now time.Time) models.TransactionReport {
	report := models.TransactionReport{
		Summary:             buildSummary(rows),
		ByCategory:          groupByCategory(rows),
		ByMonth:             groupByMonth(rows),
		LargestTransactions: largestTransactions(rows),
		MonthlyTrend:        trailingTrend(rows, now),
	}
	report.TopCategories = topCategories(report.ByCategory)
	return report
}

func buildSummary(rows []models.TransactionRow) models.TransactionSummary {
	var summary models.TransactionSummary
	for _, row := range rows {
		if row.Type == models.TransactionIncome {
			summary.TotalIncome += row.Amount
			summary.IncomeCount++
		} else {
			summary.TotalExpense += row.Amount
			summary.ExpenseCount++
		}
	}
	summary.NetBalance = summary.TotalIncome - summary.TotalExpense
	if summary.IncomeCount > 0 {
		summary.AvgIncome = summary.TotalIncome / float64(summary.IncomeCount)
	}
	if summary.ExpenseCount > 0 {
		summary.AvgExpense = summary.TotalExpense / float64(summary.ExpenseCount)
	}

	summary.TotalIncome = round2(summary.TotalIncome)
	summary.TotalExpense = round2(summary.TotalExpense)
	summary.NetBalance = round2(summary.NetBalance)
	summary.AvgIncome = round2(summary.AvgIncome)
	summary.AvgExpense = round2(summary.AvgExpense)
	return summary
}

func groupByCategory(rows []models.TransactionRow) []models.CategoryTotal {
	type key struct {
		categoryID int
		txType     string
	}
	totals := make(map[key]*models.CategoryTotal)
	for _, row := range rows {
		k := key{row.CategoryID, row.Type}
		entry, ok := totals[k]
		if !ok {
			entry = &models.CategoryTotal{CategoryID: row.CategoryID, Name: row.CategoryName, Type: row.Type}
			totals[k] = entry
		}
		entry.Total += row.Amount
		entry.Count++
	}

	result := make([]models.CategoryTotal, 0, len(totals))
	for _, entry := range totals {
		entry.Total = round2(entry.Total)
		result = append(result, *entry)
	}
	// Стабильный порядок: по убыванию суммы, при равенстве по id
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		if result[i].CategoryID != result[j].CategoryID {
			return result[i].CategoryID < result[j].CategoryID
		}
		return result[i].Type < result[j].Type
	})
	return result
}

func topCategories(byCategory []models.CategoryTotal) []models.CategoryTotal {
	if len(byCategory) <= topCategoriesLimit {
		return append([]models.CategoryTotal(nil), byCategory...)
	}
	return append([]models.CategoryTotal(nil), byCategory[:topCategoriesLimit]...)
}

func groupByMonth(rows []models.TransactionRow) []models.MonthTotal {
	totals := make(map[string]*models.MonthTotal)
	for _, row := range rows {
		month := row.Date.Format("2006-01")
		entry, ok := totals[month]
		if !ok {
			entry = &models.MonthTotal{Month: month}
			totals[month] = entry
		}
		if row.Type == models.TransactionIncome {
			entry.Income += row.Amount
		} else {
			entry.Expense += row.Amount
		}
	}

	result := make([]models.MonthTotal, 0, len(totals))
	for _, entry := range totals {
		entry.Income = round2(entry.Income)
		entry.Expense = round2(entry.Expense)
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

func largestTransactions(rows []models.TransactionRow) []models.TransactionRow {
	sorted := append([]models.TransactionRow(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Amount != sorted[j].Amount {
			return sorted[i].Amount > sorted[j].Amount
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > largestTxLimit {
		sorted = sorted[:largestTxLimit]
	}
	for i := range sorted {
		sorted[i].Amount = round2(sorted[i].Amount)
	}
	return sorted
}

// trailingTrend — последние 12 календарных месяцев, включая пустые.
func trailingTrend(rows []models.TransactionRow, now time.Time) []models.MonthTotal {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingTrendMonths - 1), 0)

	index := make(map[string]int, trailingTrendMonths)
	trend := make([]models.MonthTotal, trailingTrendMonths)
	for i := 0; i < trailingTrendMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		trend[i] = models.MonthTotal{Month: month}
		index[month] = i
	}

	for _, row := range rows {
		i, ok := index[row.Date.Format("2006-01")]
		if !ok {
			continue
		}
		if row.Type == models.TransactionIncome {
			trend[i].Income += row.Amount
		} else {
			trend[i].Expense += row.Amount
		}
	}
	for i := range trend {
		trend[i].Income = round2(trend[i].Income)
		trend[i].Expense = round2(trend[i].Expense)
	}
	return trend
}

// BuildComparison — сравнение доходов и расходов по готовому отчету.
func BuildComparison(report models.TransactionReport) models.IncomeExpenseComparison {
	s := report.Summary
	comparison := models.IncomeExpenseComparison{
		Income:     models.IncomeExpenseSide{Total: s.TotalIncome, Count: s.IncomeCount, Average: s.AvgIncome},
		Expense:    models.IncomeExpenseSide{Total: s.TotalExpense, Count: s.ExpenseCount, Average: s.AvgExpense},
		NetBalance: s.NetBalance,
	}
	if s.TotalExpense > 0 {
		comparison.Ratio = round2(s.TotalIncome / s.TotalExpense)
	}
	return comparison
}

// BuildCategoryAnalysis делит категории отчета на доходные и расходные.
func BuildCategoryAnalysis(report models.TransactionReport) models.CategoryAnalysis {
	analysis := models.CategoryAnalysis{
		IncomeCategories:  []models.CategoryTotal{},
		ExpenseCategories: []models.CategoryTotal{},
	}
	for _, cat := range report.ByCategory {
		if cat.Type == models.TransactionIncome {
			analysis.IncomeCategories = append(analysis.IncomeCategories, cat)
		} else {
			analysis.ExpenseCategories = append(analysis.ExpenseCategories, cat)
		}
	}
	analysis.TopIncomeCategories = headCategories(analysis.IncomeCategories, 5)
	analysis.TopExpenseCategories = headCategories(analysis.ExpenseCategories, 5)
	analysis.TotalCategories = len(report.ByCategory)
	return analysis
}

func headCategories(categories []models.CategoryTotal, n int) []models.CategoryTotal {
	if len(categories) <= n {
		return append([]models.CategoryTotal(nil), categories...)
	}
	return append([]models.CategoryTotal(nil), categories[:n]...)
}

// BuildMonthlyTrends — сводка месячной динамики по готовому отчету.
func BuildMonthlyTrends(report models.TransactionReport) models.MonthlyTrends {
	trends := models.MonthlyTrends{
		MonthlyData: report.ByMonth,
		TotalMonths: len(report.ByMonth),
	}
	if len(report.ByMonth) == 0 {
		return trends
	}
	var income, expense float64
	for _, month := range report.ByMonth {
		income += month.Income
		expense += month.Expense
	}
	trends.AverageMonthlyIncome = round2(income / float64(len(report.ByMonth)))
	trends.AverageMonthlyExpense = round2(expense / float64(len(report.ByMonth)))
	return trends
}

// BuildSpendingInsights — сводные наблюдения о тратах.
func BuildSpendingInsights(report models.TransactionReport) models.SpendingInsights {
	s := report.Summary
	insights := models.SpendingInsights{
		LargestTransactions: report.LargestTransactions,
		TopCategories:       report.TopCategories,
		AvgIncomeSize:       s.AvgIncome,
		AvgExpenseSize:      s.AvgExpense,
		IncomeCount:         s.IncomeCount,
		ExpenseCount:        s.ExpenseCount,
		TotalSpent:          s.TotalExpense,
		TotalEarned:         s.TotalIncome,
	}
	if s.TotalIncome > 0 {
		insights.SavingsRate = round2((s.TotalIncome - s.TotalExpense) / s.TotalIncome * 100)
	}
	return insights
}
