package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func CreateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, type, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := pool.QueryRow(context.Background(), query,
		transaction.UserID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Type,
		transaction.Date,
		transaction.Note).Scan(&transaction.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("пользователь или категория не существуют: %w", models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при добавлении транзакции: %w", models.ErrStorage)
	}
	return nil
}

func GetTransactionByID(pool *pgxpool.Pool, id int) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, type, date, COALESCE(note, '')
		FROM transactions
		WHERE id = $1`

	var transaction models.Transaction
	err := pool.QueryRow(context.Background(), query, id).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.CategoryID,
		&transaction.Amount,
		&transaction.Type,
		&transaction.Date,
		&transaction.Note,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("транзакция с ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении транзакции: %w", models.ErrStorage)
	}
	return &transaction, nil
}

var transactionSortColumns = map[string]bool{
	"id": true, "date": true, "amount": true, "type": true,
}

// GetTransactions возвращает страницу транзакций по фильтрам.
// Сортировка по допустимым колонкам, иначе по id.
func GetTransactions(pool *pgxpool.Pool, filter models.TransactionFilter, params models.ListParams) ([]models.Transaction, error) {
	where, args := buildTransactionFilter(filter)

	sort := params.Sort
	if !transactionSortColumns[sort] {
		sort = "id"
	}
	order := "ASC"
	if strings.EqualFold(params.Order, "DESC") {
		order = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, category_id, amount, type, date, COALESCE(note, '')
		FROM transactions %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, sort, order, len(args)+1, len(args)+2)
	args = append(args, params.LimitOrDefault(), params.Offset())

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении транзакций: %w", models.ErrStorage)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Date, &t.Note); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании транзакции: %w", models.ErrStorage)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func GetTransactionsCount(pool *pgxpool.Pool, filter models.TransactionFilter) (int, error) {
	where, args := buildTransactionFilter(filter)
	var total int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете транзакций: %w", models.ErrStorage)
	}
	return total, nil
}

func buildTransactionFilter(filter models.TransactionFilter) (string, []any) {
	var conditions []string
	var args []any
	if len(filter.UserIDs) > 0 {
		args = append(args, filter.UserIDs)
		conditions = append(conditions, fmt.Sprintf("user_id = ANY($%d)", len(args)))
	}
	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		conditions = append(conditions, fmt.Sprintf("category_id = ANY($%d)", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func UpdateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET user_id = $1, category_id = $2, amount = $3, type = $4, date = $5, note = $6
		WHERE id = $7`
	result, err := pool.Exec(context.Background(), query,
		transaction.UserID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Type,
		transaction.Date,
		transaction.Note,
		transaction.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("пользователь или категория не существуют: %w", models.ErrNotFound)
		}
		return fmt.Errorf("ошибка обновления транзакции: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d: %w", transaction.ID, models.ErrNotFound)
	}
	return nil
}

func DeleteTransaction(pool *pgxpool.Pool, id int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления транзакции: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d: %w", id, models.ErrNotFound)
	}
	return nil
}
