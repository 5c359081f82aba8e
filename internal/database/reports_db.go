package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Выборки строк для агрегатора отчетов (internal/reports). Здесь только
// SQL: все расчеты делает сам агрегатор над полученными строками.

// GetTransactionRows возвращает транзакции с именем категории по фильтрам.
func GetTransactionRows(pool *pgxpool.Pool, filter models.TransactionFilter) ([]models.TransactionRow, error) {
	// Колонки фильтра есть только в transactions, алиас не нужен
	where, args := buildTransactionFilter(filter)

	query := fmt.Sprintf(`
		SELECT t.id, t.category_id, c.name, t.amount::float8, t.type, t.date, COALESCE(t.note, '')
		FROM transactions t
		JOIN categories c ON c.id = t.category_id %s
		ORDER BY t.date, t.id`, where)

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки транзакций для отчета: %w", models.ErrStorage)
	}
	defer rows.Close()

	var result []models.TransactionRow
	for rows.Next() {
		var r models.TransactionRow
		if err := rows.Scan(&r.ID, &r.CategoryID, &r.CategoryName, &r.Amount, &r.Type, &r.Date, &r.Note); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчета: %w", models.ErrStorage)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetGoalRows возвращает цели со статистикой взносов для отчетов.
func GetGoalRows(pool *pgxpool.Pool, filter models.GoalFilter) ([]models.GoalRow, error) {
	where, args := buildGoalFilter(filter)

	query := fmt.Sprintf(`
		SELECT g.id, g.name, g.goal_amount::float8, g.saved_amount::float8, g.status, g.start_date, g.end_date,
			COUNT(c.id), COALESCE(SUM(c.amount), 0)::float8
		FROM goals g
		LEFT JOIN contributions c ON c.goal_id = g.id %s
		GROUP BY g.id
		ORDER BY g.id`, where)

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки целей для отчета: %w", models.ErrStorage)
	}
	defer rows.Close()

	var result []models.GoalRow
	for rows.Next() {
		var r models.GoalRow
		if err := rows.Scan(&r.ID, &r.Name, &r.GoalAmount, &r.SavedAmount, &r.Status, &r.StartDate, &r.EndDate,
			&r.ContributionCount, &r.TotalContributed); err != nil {
			return nil, fmt.Errorf("ошибка сканирования цели для отчета: %w", models.ErrStorage)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetContributionRows возвращает взносы целей, попавших под фильтр,
// для анализа трендов.
func GetContributionRows(pool *pgxpool.Pool, filter models.GoalFilter) ([]models.ContributionRow, error) {
	where, args := buildGoalFilter(filter)

	query := fmt.Sprintf(`
		SELECT c.goal_id, c.amount::float8, c.date
		FROM contributions c
		JOIN goals g ON g.id = c.goal_id %s
		ORDER BY c.date, c.id`, where)

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки взносов для отчета: %w", models.ErrStorage)
	}
	defer rows.Close()

	var result []models.ContributionRow
	for rows.Next() {
		var r models.ContributionRow
		if err := rows.Scan(&r.GoalID, &r.Amount, &r.Date); err != nil {
			return nil, fmt.Errorf("ошибка сканирования взноса для отчета: %w", models.ErrStorage)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
