package utils

import (
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Генерация тестовых данных для локальной разработки.

func GenerateTestUsers(pool *pgxpool.Pool, numUsers int) []int {
	ids := make([]int, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		req := models.RegisterRequest{
			Name:     gofakeit.Name(),
			Username: gofakeit.Username(),
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, false, false, 10),
		}
		user, err := database.RegisterUser(pool, req)
		if err != nil {
			log.Fatalf("ошибка при добавлении пользователя: %v", err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func GenerateTestCategories(pool *pgxpool.Pool, numCategories int) []int {
	ids := make([]int, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		category := &models.Category{Name: gofakeit.BuzzWord()}
		if err := database.CreateCategory(pool, category); err != nil {
			log.Fatalf("ошибка при добавлении категории: %v", err)
		}
		ids = append(ids, category.ID)
	}
	return ids
}

func GenerateTestTransactions(pool *pgxpool.Pool, userIDs, categoryIDs []int, numTransactions int) {
	for i := 0; i < numTransactions; i++ {
		transaction := &models.Transaction{
			UserID:     userIDs[rand.Intn(len(userIDs))],
			CategoryID: categoryIDs[rand.Intn(len(categoryIDs))],
			Amount:     decimal.NewFromFloat(gofakeit.Price(1, 1000)),
			Type:       randomTransactionType(),
			Date:       gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
			Note:       gofakeit.Sentence(4),
		}
		if err := database.CreateTransaction(pool, transaction); err != nil {
			log.Fatalf("ошибка при добавлении транзакции: %v", err)
		}
	}
}

func randomTransactionType() string {
	if rand.Intn(2) == 0 {
		return models.TransactionExpense
	}
	return models.TransactionIncome
}

// GenerateTestGoals создает цели и наполняет их взносами через леджер,
// чтобы кэш saved_amount оставался согласованным.
func GenerateTestGoals(pool *pgxpool.Pool, numGoals, contributionsPerGoal int) {
	for i := 0; i < numGoals; i++ {
		start := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		goal := &models.Goal{
			GoalAmount:  decimal.NewFromFloat(gofakeit.Price(500, 10000)),
			SavedAmount: decimal.Zero,
			Name:        gofakeit.ProductName(),
			Description: gofakeit.Sentence(6),
			Status:      models.GoalActive,
			StartDate:   start,
			EndDate:     start.AddDate(1, 0, 0),
		}
		if err := database.CreateGoal(pool, goal); err != nil {
			log.Fatalf("ошибка при добавлении цели: %v", err)
		}

		for j := 0; j < contributionsPerGoal; j++ {
			contribution := &models.Contribution{
				GoalID: goal.ID,
				Amount: decimal.NewFromFloat(gofakeit.Price(10, 300)),
				Date:   gofakeit.DateRange(start, time.Now()),
			}
			if err := database.AddContribution(pool, contribution); err != nil {
				log.Fatalf("ошибка при добавлении взноса: %v", err)
			}
		}
	}
}
