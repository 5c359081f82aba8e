package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/reports"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Отчеты: база отдает строки, агрегатор считает, обработчик сериализует.

func fetchTransactionReport(pool *pgxpool.Pool, c *gin.Context) (models.TransactionReport, bool) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondError(c, err)
		return models.TransactionReport{}, false
	}
	rows, err := database.GetTransactionRows(pool, filter)
	if err != nil {
		respondError(c, err)
		return models.TransactionReport{}, false
	}
	return reports.BuildTransactionReport(rows, time.Now()), true
}

// FinancialReport — полный финансовый отчет по транзакциям.
func FinancialReport(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchTransactionReport(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// IncomeExpenseComparison — сравнение доходов и расходов.
func IncomeExpenseComparison(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchTransactionReport(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, reports.BuildComparison(report))
	}
}

// CategoryAnalysis — разбивка категорий на доходные и расходные.
func CategoryAnalysis(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchTransactionReport(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, reports.BuildCategoryAnalysis(report))
	}
}

// MonthlyTrends — месячная динамика доходов и расходов.
func MonthlyTrends(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchTransactionReport(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, reports.BuildMonthlyTrends(report))
	}
}

// SpendingInsights — сводные наблюдения о тратах.
func SpendingInsights(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchTransactionReport(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, reports.BuildSpendingInsights(report))
	}
}

func fetchGoalRows(pool *pgxpool.Pool, c *gin.Context) ([]models.GoalRow, bool) {
	filter, err := parseGoalFilter(c)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	rows, err := database.GetGoalRows(pool, filter)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return rows, true
}

// GoalOverview — сводный отчет по целям.
func GoalOverview(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := fetchGoalRows(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, reports.BuildGoalOverview(rows, time.Now()))
	}
}

// GoalProgress — темп накоплений по каждой цели.
func GoalProgress(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := fetchGoalRows(pool, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"progressData": reports.BuildGoalProgress(rows, time.Now())})
	}
}

// GoalsAtRisk — только активные цели под угрозой срыва.
func GoalsAtRisk(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseGoalFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}
		// Под угрозой могут быть только активные цели
		filter.Status = models.GoalActive

		rows, err := database.GetGoalRows(pool, filter)
		if err != nil {
			respondError(c, err)
			return
		}

		overview := reports.BuildGoalOverview(rows, time.Now())
		c.JSON(http.StatusOK, gin.H{
			"atRiskGoals":  overview.GoalsAtRisk,
			"totalAtRisk":  overview.AtRiskSummary.TotalAtRisk,
			"criticalRisk": overview.AtRiskSummary.CriticalRisk,
			"highRisk":     overview.AtRiskSummary.HighRisk,
			"mediumRisk":   overview.AtRiskSummary.MediumRisk,
		})
	}
}

// TopPerformingGoals — активные цели с наибольшим прогрессом.
func TopPerformingGoals(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := fetchGoalRows(pool, c)
		if !ok {
			return
		}

		overview := reports.BuildGoalOverview(rows, time.Now())
		var averageProgress float64
		for _, goal := range overview.TopPerformingGoals {
			averageProgress += goal.Progress
		}
		if len(overview.TopPerformingGoals) > 0 {
			averageProgress = math.Round(averageProgress/float64(len(overview.TopPerformingGoals))*100) / 100
		}

		c.JSON(http.StatusOK, gin.H{
			"topPerformers":      overview.TopPerformingGoals,
			"totalTopPerformers": len(overview.TopPerformingGoals),
			"averageProgress":    averageProgress,
		})
	}
}

// ContributionTrends — динамика взносов по месяцам.
func ContributionTrends(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseGoalFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}

		rows, err := database.GetContributionRows(pool, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports.BuildContributionTrends(rows, time.Now()))
	}
}

// CompletionForecast — прогноз достижения активных целей.
func CompletionForecast(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseGoalFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}
		// Прогнозируются только активные цели
		filter.Status = models.GoalActive

		rows, err := database.GetGoalRows(pool, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports.BuildForecast(rows, time.Now()))
	}
}
