package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Леджер взносов. Инвариант: goals.saved_amount всегда равен сумме
// взносов цели. Каждая мутация выполняется в одной транзакции: строка
// цели блокируется FOR UPDATE до чтения кэша, поэтому два параллельных
// изменения одной цели не теряют обновления.

// AddContribution добавляет взнос и увеличивает кэш цели на его сумму.
func AddContribution(pool *pgxpool.Pool, contribution *models.Contribution) error {
	if !contribution.Amount.IsPositive() {
		return fmt.Errorf("сумма взноса должна быть положительной: %w", models.ErrInvalidInput)
	}

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", models.ErrStorage)
	}
	defer tx.Rollback(ctx)

	if err := lockGoal(ctx, tx, contribution.GoalID); err != nil {
		return err
	}

	query := `
		INSERT INTO contributions (goal_id, amount, date)
		VALUES ($1, $2, $3)
		RETURNING id`
	err = tx.QueryRow(ctx, query,
		contribution.GoalID,
		contribution.Amount,
		contribution.Date).Scan(&contribution.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении взноса: %w", models.ErrStorage)
	}

	_, err = tx.Exec(ctx,
		`UPDATE goals SET saved_amount = saved_amount + $1, updated_at = NOW() WHERE id = $2`,
		contribution.Amount, contribution.GoalID)
	if err != nil {
		return fmt.Errorf("ошибка обновления кэша цели: %w", models.ErrStorage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", models.ErrStorage)
	}
	return nil
}

// UpdateContribution меняет сумму, дату или цель взноса. Если цель та же,
// кэш корректируется на разницу сумм; при переносе между целями старая
// цель уменьшается на старую сумму, новая увеличивается на новую.
func UpdateContribution(pool *pgxpool.Pool, id int, update models.ContributionUpdate) (*models.Contribution, error) {
	if update.Amount != nil && !update.Amount.IsPositive() {
		return nil, fmt.Errorf("сумма взноса должна быть положительной: %w", models.ErrInvalidInput)
	}

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %w", models.ErrStorage)
	}
	defer tx.Rollback(ctx)

	var current models.Contribution
	current.ID = id
	err = tx.QueryRow(ctx,
		`SELECT goal_id, amount, date FROM contributions WHERE id = $1 FOR UPDATE`,
		id).Scan(&current.GoalID, &current.Amount, &current.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("взнос с ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении взноса: %w", models.ErrStorage)
	}

	updated := current
	if update.GoalID != nil {
		updated.GoalID = *update.GoalID
	}
	if update.Amount != nil {
		updated.Amount = *update.Amount
	}
	if update.Date != nil {
		updated.Date = *update.Date
	}

	// Затронутые цели блокируются в порядке возрастания id,
	// чтобы встречные переносы не взаимоблокировались.
	if updated.GoalID == current.GoalID {
		if err := lockGoal(ctx, tx, current.GoalID); err != nil {
			return nil, err
		}
	} else {
		if err := lockGoals(ctx, tx, current.GoalID, updated.GoalID); err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE contributions SET goal_id = $1, amount = $2, date = $3 WHERE id = $4`,
		updated.GoalID, updated.Amount, updated.Date, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления взноса: %w", models.ErrStorage)
	}

	if updated.GoalID == current.GoalID {
		diff := updated.Amount.Sub(current.Amount)
		_, err = tx.Exec(ctx,
			`UPDATE goals SET saved_amount = saved_amount + $1, updated_at = NOW() WHERE id = $2`,
			diff, current.GoalID)
		if err != nil {
			return nil, fmt.Errorf("ошибка обновления кэша цели: %w", models.ErrStorage)
		}
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE goals SET saved_amount = saved_amount - $1, updated_at = NOW() WHERE id = $2`,
			current.Amount, current.GoalID)
		if err != nil {
			return nil, fmt.Errorf("ошибка обновления кэша старой цели: %w", models.ErrStorage)
		}
		_, err = tx.Exec(ctx,
			`UPDATE goals SET saved_amount = saved_amount + $1, updated_at = NOW() WHERE id = $2`,
			updated.Amount, updated.GoalID)
		if err != nil {
			return nil, fmt.Errorf("ошибка обновления кэша новой цели: %w", models.ErrStorage)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %w", models.ErrStorage)
	}
	return &updated, nil
}

// DeleteContribution удаляет взнос и уменьшает кэш цели на его сумму.
func DeleteContribution(pool *pgxpool.Pool, id int) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", models.ErrStorage)
	}
	defer tx.Rollback(ctx)

	var contribution models.Contribution
	err = tx.QueryRow(ctx,
		`SELECT goal_id, amount FROM contributions WHERE id = $1 FOR UPDATE`,
		id).Scan(&contribution.GoalID, &contribution.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("взнос с ID %d: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при получении взноса: %w", models.ErrStorage)
	}

	if err := lockGoal(ctx, tx, contribution.GoalID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE goals SET saved_amount = saved_amount - $1, updated_at = NOW() WHERE id = $2`,
		contribution.Amount, contribution.GoalID)
	if err != nil {
		return fmt.Errorf("ошибка обновления кэша цели: %w", models.ErrStorage)
	}

	_, err = tx.Exec(ctx, `DELETE FROM contributions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления взноса: %w", models.ErrStorage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", models.ErrStorage)
	}
	return nil
}

// GetContributionsByGoal возвращает взносы цели: свежие даты первыми,
// при равной дате — больший id первым.
func GetContributionsByGoal(pool *pgxpool.Pool, goalID int) ([]models.Contribution, error) {
	if _, err := GetGoalByID(pool, goalID); err != nil {
		return nil, err
	}

	rows, err := pool.Query(context.Background(),
		`SELECT id, goal_id, amount, date FROM contributions WHERE goal_id = $1 ORDER BY date DESC, id DESC`,
		goalID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении взносов: %w", models.ErrStorage)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &c.Date); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании взноса: %w", models.ErrStorage)
		}
		contributions = append(contributions, c)
	}
	return contributions, rows.Err()
}

func lockGoal(ctx context.Context, tx pgx.Tx, goalID int) error {
	var id int
	err := tx.QueryRow(ctx, `SELECT id FROM goals WHERE id = $1 FOR UPDATE`, goalID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("цель с ID %d: %w", goalID, models.ErrNotFound)
		}
		return fmt.Errorf("ошибка блокировки цели: %w", models.ErrStorage)
	}
	return nil
}

func lockGoals(ctx context.Context, tx pgx.Tx, first, second int) error {
	rows, err := tx.Query(ctx,
		`SELECT id FROM goals WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
		[]int{first, second})
	if err != nil {
		return fmt.Errorf("ошибка блокировки целей: %w", models.ErrStorage)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("ошибка блокировки целей: %w", models.ErrStorage)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка блокировки целей: %w", models.ErrStorage)
	}
	if locked != 2 {
		return fmt.Errorf("цель не существует: %w", models.ErrNotFound)
	}
	return nil
}
