package models

import "time"

// Входные строки агрегатора. Выборку делает internal/database, расчеты —
// internal/reports, без обращений к базе.

type TransactionRow struct {
	ID           int       `json:"id"`
	CategoryID   int       `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
	Note         string    `json:"note,omitempty"`
}

type GoalRow struct {
	ID                int
	Name              string
	GoalAmount        float64
	SavedAmount       float64
	Status            string
	StartDate         time.Time
	EndDate           time.Time
	ContributionCount int
	TotalContributed  float64
}

type ContributionRow struct {
	GoalID int
	Amount float64
	Date   time.Time
}

// Финансовый отчет по транзакциям.

type TransactionSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`
	IncomeCount  int     `json:"incomeCount"`
	ExpenseCount int     `json:"expenseCount"`
	AvgIncome    float64 `json:"avgIncome"`
	AvgExpense   float64 `json:"avgExpense"`
}

type CategoryTotal struct {
	CategoryID int     `json:"categoryId"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

type MonthTotal struct {
	Month   string  `json:"month"` // формат 2006-01
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type TransactionReport struct {
	Summary             TransactionSummary `json:"summary"`
	ByCategory          []CategoryTotal    `json:"byCategory"`
	ByMonth             []MonthTotal       `json:"byMonth"`
	TopCategories       []CategoryTotal    `json:"topCategories"`
	LargestTransactions []TransactionRow   `json:"largestTransactions"`
	MonthlyTrend        []MonthTotal       `json:"monthlyTrend"`
}

type IncomeExpenseSide struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type IncomeExpenseComparison struct {
	Income     IncomeExpenseSide `json:"income"`
	Expense    IncomeExpenseSide `json:"expense"`
	NetBalance float64           `json:"netBalance"`
	Ratio      float64           `json:"ratio"`
}

type CategoryAnalysis struct {
	IncomeCategories     []CategoryTotal `json:"incomeCategories"`
	ExpenseCategories    []CategoryTotal `json:"expenseCategories"`
	TopIncomeCategories  []CategoryTotal `json:"topIncomeCategories"`
	TopExpenseCategories []CategoryTotal `json:"topExpenseCategories"`
	TotalCategories      int             `json:"totalCategories"`
}

type MonthlyTrends struct {
	MonthlyData           []MonthTotal `json:"monthlyData"`
	TotalMonths           int          `json:"totalMonths"`
	AverageMonthlyIncome  float64      `json:"averageMonthlyIncome"`
	AverageMonthlyExpense float64      `json:"averageMonthlyExpense"`
}

type SpendingInsights struct {
	LargestTransactions []TransactionRow `json:"largestTransactions"`
	TopCategories       []CategoryTotal  `json:"topCategories"`
	AvgIncomeSize       float64          `json:"avgIncomeSize"`
	AvgExpenseSize      float64          `json:"avgExpenseSize"`
	IncomeCount         int              `json:"incomeCount"`
	ExpenseCount        int              `json:"expenseCount"`
	TotalSpent          float64          `json:"totalSpent"`
	TotalEarned         float64          `json:"totalEarned"`
	SavingsRate         float64          `json:"savingsRate"`
}

// Отчеты по целям.

type GoalReportEntry struct {
	GoalID        int     `json:"goalId"`
	GoalName      string  `json:"goalName"`
	GoalAmount    float64 `json:"goalAmount"`
	SavedAmount   float64 `json:"savedAmount"`
	Status        string  `json:"status"`
	Progress      float64 `json:"progress"`
	DaysRemaining int     `json:"daysRemaining"`
	IsOverdue     bool    `json:"isOverdue"`
	IsOnTrack     bool    `json:"isOnTrack"`
}

type AtRiskGoal struct {
	GoalID               int     `json:"goalId"`
	GoalName             string  `json:"goalName"`
	GoalAmount           float64 `json:"goalAmount"`
	SavedAmount          float64 `json:"savedAmount"`
	Progress             float64 `json:"progress"`
	DaysRemaining        int     `json:"daysRemaining"`
	IsOverdue            bool    `json:"isOverdue"`
	RequiredDailySavings float64 `json:"requiredDailySavings"`
	RiskLevel            string  `json:"riskLevel"`
}

type AtRiskSummary struct {
	TotalAtRisk  int `json:"totalAtRisk"`
	CriticalRisk int `json:"criticalRisk"`
	HighRisk     int `json:"highRisk"`
	MediumRisk   int `json:"mediumRisk"`
}

type GoalOverviewSummary struct {
	TotalGoals      int     `json:"totalGoals"`
	ActiveGoals     int     `json:"activeGoals"`
	CompletedGoals  int     `json:"completedGoals"`
	TotalTarget     float64 `json:"totalTarget"`
	TotalSaved      float64 `json:"totalSaved"`
	OverallProgress float64 `json:"overallProgress"`
}

type GoalOverview struct {
	Summary            GoalOverviewSummary `json:"summary"`
	Goals              []GoalReportEntry   `json:"goals"`
	TopPerformingGoals []GoalReportEntry   `json:"topPerformingGoals"`
	GoalsAtRisk        []AtRiskGoal        `json:"goalsAtRisk"`
	AtRiskSummary      AtRiskSummary       `json:"atRiskSummary"`
}

type GoalProgress struct {
	GoalID               int     `json:"goalId"`
	GoalName             string  `json:"goalName"`
	GoalAmount           float64 `json:"goalAmount"`
	SavedAmount          float64 `json:"savedAmount"`
	Progress             float64 `json:"progress"`
	DaysRemaining        int     `json:"daysRemaining"`
	ActualDailyAverage   float64 `json:"actualDailyAverage"`
	RequiredDailySavings float64 `json:"requiredDailySavings"`
	IsOnTrack            bool    `json:"isOnTrack"`
}

type GoalForecast struct {
	GoalID                  int        `json:"goalId"`
	GoalName                string     `json:"goalName"`
	GoalAmount              float64    `json:"goalAmount"`
	SavedAmount             float64    `json:"savedAmount"`
	RemainingAmount         float64    `json:"remainingAmount"`
	Progress                float64    `json:"progress"`
	DaysRemaining           int        `json:"daysRemaining"`
	ActualDailyAverage      float64    `json:"actualDailyAverage"`
	RequiredDailySavings    float64    `json:"requiredDailySavings"`
	EstimatedCompletionDate *time.Time `json:"estimatedCompletionDate"`
	EstimatedDaysToComplete *int       `json:"estimatedDaysToComplete"`
	IsOnTrack               bool       `json:"isOnTrack"`
	CompletionProbability   string     `json:"completionProbability"`
}

type ForecastSummary struct {
	TotalGoals           int     `json:"totalGoals"`
	OnTrackGoals         int     `json:"onTrackGoals"`
	HighProbability      int     `json:"highProbability"`
	MediumProbability    int     `json:"mediumProbability"`
	LowProbability       int     `json:"lowProbability"`
	AverageEstimatedDays float64 `json:"averageEstimatedDays"`
}

type GoalForecastReport struct {
	Forecasts []GoalForecast  `json:"forecasts"`
	Summary   ForecastSummary `json:"summary"`
}

type MonthContribution struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type RecentActivity struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

type ContributionTrends struct {
	MonthlyTrends              []MonthContribution `json:"monthlyTrends"`
	AverageMonthlyContribution float64             `json:"averageMonthlyContribution"`
	TotalMonths                int                 `json:"totalMonths"`
	RecentActivity             RecentActivity      `json:"recentActivity"`
}
