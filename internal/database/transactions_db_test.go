package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func createTestTransaction(t *testing.T, pool *pgxpool.Pool, userID, categoryID int, amount int64, txType string) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(amount),
		Type:       txType,
		Date:       time.Now(),
		Note:       "тестовая транзакция",
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteTransaction(pool, transaction.ID) })
	return transaction
}

func TestCreateTransaction(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool)

	transaction := createTestTransaction(t, pool, user.ID, category.ID, 250, models.TransactionExpense)

	stored, err := database.GetTransactionByID(pool, transaction.ID)
	if err != nil {
		t.Fatalf("ошибка получения транзакции: %v", err)
	}
	if stored.UserID != user.ID || stored.CategoryID != category.ID {
		t.Errorf("связи транзакции не совпадают: %+v", stored)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(250)) || stored.Type != models.TransactionExpense {
		t.Errorf("данные транзакции не совпадают: %+v", stored)
	}
}

func TestCreateTransactionBadReferences(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool)

	transaction := &models.Transaction{
		UserID:     -1,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(10),
		Type:       models.TransactionExpense,
		Date:       time.Now(),
	}
	if err := database.CreateTransaction(pool, transaction); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("несуществующий пользователь: получили %v, хотели ErrNotFound", err)
	}

	transaction.UserID = user.ID
	transaction.CategoryID = -1
	if err := database.CreateTransaction(pool, transaction); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("несуществующая категория: получили %v, хотели ErrNotFound", err)
	}
}

func TestGetTransactionsFilter(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	other := createTestUser(t, pool)
	category := createTestCategory(t, pool)

	createTestTransaction(t, pool, user.ID, category.ID, 100, models.TransactionIncome)
	createTestTransaction(t, pool, user.ID, category.ID, 40, models.TransactionExpense)
	createTestTransaction(t, pool, other.ID, category.ID, 999, models.TransactionExpense)

	transactions, err := database.GetTransactions(pool,
		models.TransactionFilter{UserIDs: []int{user.ID}},
		models.ListParams{Limit: 100})
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("транзакций %d, хотели 2", len(transactions))
	}
	for _, transaction := range transactions {
		if transaction.UserID != user.ID {
			t.Errorf("фильтр пропустил чужую транзакцию: %+v", transaction)
		}
	}

	total, err := database.GetTransactionsCount(pool, models.TransactionFilter{UserIDs: []int{user.ID}})
	if err != nil {
		t.Fatalf("ошибка подсчета транзакций: %v", err)
	}
	if total != 2 {
		t.Errorf("счетчик = %d, хотели 2", total)
	}
}

func TestUpdateTransaction(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool)
	transaction := createTestTransaction(t, pool, user.ID, category.ID, 100, models.TransactionExpense)

	transaction.Amount = decimal.NewFromInt(175)
	transaction.Note = "после правки"
	if err := database.UpdateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка обновления транзакции: %v", err)
	}

	stored, err := database.GetTransactionByID(pool, transaction.ID)
	if err != nil {
		t.Fatalf("ошибка получения транзакции: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(175)) || stored.Note != "после правки" {
		t.Errorf("обновление не применилось: %+v", stored)
	}
}

func TestDeleteTransaction(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool)
	transaction := createTestTransaction(t, pool, user.ID, category.ID, 100, models.TransactionExpense)

	if err := database.DeleteTransaction(pool, transaction.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	if _, err := database.GetTransactionByID(pool, transaction.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("транзакция существует после удаления: %v", err)
	}
}

func TestDeleteUserCascadesTransactions(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool)
	transaction := createTestTransaction(t, pool, user.ID, category.ID, 100, models.TransactionExpense)

	if err := database.DeleteUser(pool, user.ID); err != nil {
		t.Fatalf("ошибка удаления пользователя: %v", err)
	}
	if _, err := database.GetTransactionByID(pool, transaction.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("транзакция пережила удаление пользователя: %v", err)
	}
}
