package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// CreateGoal добавляет новую цель накоплений.
func CreateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	if goal.Status == "" {
		goal.Status = models.GoalActive
	}
	query := `
		INSERT INTO goals (goal_amount, saved_amount, name, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		goal.GoalAmount,
		goal.SavedAmount,
		goal.Name,
		goal.Description,
		goal.Status,
		goal.StartDate,
		goal.EndDate).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("недопустимый статус цели: %w", models.ErrInvalidInput)
		}
		return fmt.Errorf("ошибка при добавлении цели: %w", models.ErrStorage)
	}
	return nil
}

// CreateGoalWithInitialContribution создает цель вместе со стартовым
// взносом в одной транзакции: либо появляются и цель, и взнос, либо
// ничего. Кэш saved_amount сразу равен сумме леджера.
func CreateGoalWithInitialContribution(pool *pgxpool.Pool, goal *models.Goal, initial decimal.Decimal) error {
	if !initial.IsPositive() {
		return fmt.Errorf("стартовая сумма должна быть положительной: %w", models.ErrInvalidInput)
	}
	if goal.Status == "" {
		goal.Status = models.GoalActive
	}

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", models.ErrStorage)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO goals (goal_amount, saved_amount, name, description, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, query,
		goal.GoalAmount,
		initial,
		goal.Name,
		goal.Description,
		goal.Status,
		goal.StartDate,
		goal.EndDate).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("недопустимый статус цели: %w", models.ErrInvalidInput)
		}
		return fmt.Errorf("ошибка при добавлении цели: %w", models.ErrStorage)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO contributions (goal_id, amount, date) VALUES ($1, $2, $3)`,
		goal.ID, initial, goal.StartDate)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении стартового взноса: %w", models.ErrStorage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", models.ErrStorage)
	}
	goal.SavedAmount = initial
	return nil
}

// GetGoalByID извлекает цель по ID.
func GetGoalByID(pool *pgxpool.Pool, id int) (*models.Goal, error) {
	query := `
		SELECT id, goal_amount, saved_amount, name, COALESCE(description, ''), status, start_date, end_date, created_at
		FROM goals
		WHERE id = $1`

	var goal models.Goal
	err := pool.QueryRow(context.Background(), query, id).Scan(
		&goal.ID,
		&goal.GoalAmount,
		&goal.SavedAmount,
		&goal.Name,
		&goal.Description,
		&goal.Status,
		&goal.StartDate,
		&goal.EndDate,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("цель с ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении цели: %w", models.ErrStorage)
	}
	return &goal, nil
}

var goalSortColumns = map[string]bool{
	"id": true, "name": true, "goal_amount": true, "saved_amount": true,
	"start_date": true, "end_date": true, "status": true,
}

// GetGoals возвращает страницу целей по фильтрам статуса и дат.
func GetGoals(pool *pgxpool.Pool, filter models.GoalFilter, params models.ListParams) ([]models.Goal, error) {
	where, args := buildGoalFilter(filter)

	sort := params.Sort
	if !goalSortColumns[sort] {
		sort = "id"
	}
	order := "ASC"
	if strings.EqualFold(params.Order, "DESC") {
		order = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, goal_amount, saved_amount, name, COALESCE(description, ''), status, start_date, end_date, created_at
		FROM goals %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, sort, order, len(args)+1, len(args)+2)
	args = append(args, params.LimitOrDefault(), params.Offset())

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %w", models.ErrStorage)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.GoalAmount, &goal.SavedAmount, &goal.Name, &goal.Description,
			&goal.Status, &goal.StartDate, &goal.EndDate, &goal.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании цели: %w", models.ErrStorage)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func GetGoalsCount(pool *pgxpool.Pool, filter models.GoalFilter) (int, error) {
	where, args := buildGoalFilter(filter)
	var total int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM goals `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете целей: %w", models.ErrStorage)
	}
	return total, nil
}

func buildGoalFilter(filter models.GoalFilter) (string, []any) {
	var conditions []string
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("end_date <= $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// UpdateGoal обновляет цель. Кэш saved_amount трогает только леджер
// взносов, поэтому здесь он не изменяется.
func UpdateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET goal_amount = $1, name = $2, description = $3, status = $4, start_date = $5, end_date = $6, updated_at = NOW()
		WHERE id = $7`
	result, err := pool.Exec(context.Background(), query,
		goal.GoalAmount,
		goal.Name,
		goal.Description,
		goal.Status,
		goal.StartDate,
		goal.EndDate,
		goal.ID)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("недопустимый статус цели: %w", models.ErrInvalidInput)
		}
		return fmt.Errorf("ошибка обновления цели: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d: %w", goal.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteGoal удаляет цель; взносы удаляются каскадом.
func DeleteGoal(pool *pgxpool.Pool, id int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d: %w", id, models.ErrNotFound)
	}
	return nil
}
