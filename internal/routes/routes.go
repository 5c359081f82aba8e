package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/internal/handlers"
	"github.com/valeriaulyamaeva/finance-tracker/internal/middleware"
)

// SetupRouter собирает все маршруты API. Все, кроме регистрации и входа,
// закрыто JWT-авторизацией.
func SetupRouter(pool *pgxpool.Pool, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS())

	r.POST("/register", handlers.Register(pool))
	r.POST("/login", handlers.Login(pool, jwtSecret))

	api := r.Group("/api", middleware.Auth(jwtSecret))

	api.GET("/users", handlers.ListUsers(pool))
	api.GET("/users/:id", handlers.GetUser(pool))
	api.PUT("/users/:id", handlers.UpdateUser(pool))
	api.DELETE("/users/:id", handlers.DeleteUser(pool))

	api.POST("/categories", handlers.CreateCategory(pool))
	api.GET("/categories", handlers.ListCategories(pool))
	api.GET("/categories/:id", handlers.GetCategory(pool))
	api.PUT("/categories/:id", handlers.UpdateCategory(pool))
	api.DELETE("/categories/:id", handlers.DeleteCategory(pool))

	api.POST("/transactions", handlers.CreateTransaction(pool))
	api.GET("/transactions", handlers.ListTransactions(pool))
	api.GET("/transactions/export", handlers.ExportTransactions(pool))
	api.GET("/transactions/:id", handlers.GetTransaction(pool))
	api.PUT("/transactions/:id", handlers.UpdateTransaction(pool))
	api.DELETE("/transactions/:id", handlers.DeleteTransaction(pool))

	api.POST("/goals", handlers.CreateGoal(pool))
	api.GET("/goals", handlers.ListGoals(pool))
	api.GET("/goals/:id", handlers.GetGoal(pool))
	api.PUT("/goals/:id", handlers.UpdateGoal(pool))
	api.DELETE("/goals/:id", handlers.DeleteGoal(pool))
	api.GET("/goals/:id/contributions", handlers.ListContributions(pool))

	api.POST("/contributions", handlers.AddContribution(pool))
	api.PUT("/contributions/:id", handlers.UpdateContribution(pool))
	api.DELETE("/contributions/:id", handlers.DeleteContribution(pool))

	reports := api.Group("/reports")
	reports.GET("/financial", handlers.FinancialReport(pool))
	reports.GET("/comparison", handlers.IncomeExpenseComparison(pool))
	reports.GET("/categories", handlers.CategoryAnalysis(pool))
	reports.GET("/monthly-trends", handlers.MonthlyTrends(pool))
	reports.GET("/insights", handlers.SpendingInsights(pool))

	goalReports := api.Group("/goal-reports")
	goalReports.GET("/overview", handlers.GoalOverview(pool))
	goalReports.GET("/progress", handlers.GoalProgress(pool))
	goalReports.GET("/at-risk", handlers.GoalsAtRisk(pool))
	goalReports.GET("/top-performers", handlers.TopPerformingGoals(pool))
	goalReports.GET("/contribution-trends", handlers.ContributionTrends(pool))
	goalReports.GET("/forecast", handlers.CompletionForecast(pool))

	return r
}
