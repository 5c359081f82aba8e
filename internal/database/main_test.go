package database_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// testPool подключается к тестовой БД из .env. Без настроенной базы
// интеграционные тесты пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("переменные БД не заданы, пропускаем интеграционный тест")
	}
	pool, err := database.ConnectDB()
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := database.RunMigrations(pool); err != nil {
		t.Fatalf("ошибка применения миграций: %v", err)
	}
	return pool
}

func createTestGoal(t *testing.T, pool *pgxpool.Pool, goalAmount int64) *models.Goal {
	t.Helper()
	goal := &models.Goal{
		GoalAmount: decimal.NewFromInt(goalAmount),
		Name:       fmt.Sprintf("тестовая цель %d", time.Now().UnixNano()),
		StartDate:  time.Now().AddDate(0, 0, -30),
		EndDate:    time.Now().AddDate(0, 0, 60),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteGoal(pool, goal.ID) })
	return goal
}

func addTestContribution(t *testing.T, pool *pgxpool.Pool, goalID int, amount int64) *models.Contribution {
	t.Helper()
	contribution := &models.Contribution{
		GoalID: goalID,
		Amount: decimal.NewFromInt(amount),
		Date:   time.Now(),
	}
	if err := database.AddContribution(pool, contribution); err != nil {
		t.Fatalf("ошибка добавления взноса: %v", err)
	}
	return contribution
}

func savedAmount(t *testing.T, pool *pgxpool.Pool, goalID int) decimal.Decimal {
	t.Helper()
	goal, err := database.GetGoalByID(pool, goalID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	return goal.SavedAmount
}

// assertLedgerInvariant проверяет равенство кэша цели и суммы её взносов.
func assertLedgerInvariant(t *testing.T, pool *pgxpool.Pool, goalID int) {
	t.Helper()
	saved := savedAmount(t, pool, goalID)
	contributions, err := database.GetContributionsByGoal(pool, goalID)
	if err != nil {
		t.Fatalf("ошибка получения взносов: %v", err)
	}
	total := decimal.Zero
	for _, c := range contributions {
		total = total.Add(c.Amount)
	}
	if !saved.Equal(total) {
		t.Errorf("кэш цели %d разошелся с леджером: saved_amount = %s, сумма взносов = %s",
			goalID, saved, total)
	}
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	suffix := time.Now().UnixNano()
	user, err := database.RegisterUser(pool, models.RegisterRequest{
		Name:     "Тестовый Пользователь",
		Username: fmt.Sprintf("testuser%d", suffix),
		Email:    fmt.Sprintf("testuser.%d@example.com", suffix),
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("ошибка регистрации пользователя: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteUser(pool, user.ID) })
	return user
}

func createTestCategory(t *testing.T, pool *pgxpool.Pool) *models.Category {
	t.Helper()
	category := &models.Category{
		Name: fmt.Sprintf("тестовая категория %d", time.Now().UnixNano()),
	}
	if err := database.CreateCategory(pool, category); err != nil {
		t.Fatalf("ошибка создания категории: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteCategory(pool, category.ID) })
	return category
}
