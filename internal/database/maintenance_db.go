package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// Регламентные задачи, запускаемые по cron из main.

// CompleteReachedGoals переводит активные цели, накопившие целевую
// сумму, в статус completed. Возвращает число обновленных целей.
func CompleteReachedGoals(pool *pgxpool.Pool) (int, error) {
	result, err := pool.Exec(context.Background(), `
		UPDATE goals
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'active' AND goal_amount > 0 AND saved_amount >= goal_amount`)
	if err != nil {
		return 0, fmt.Errorf("ошибка завершения достигнутых целей: %w", models.ErrStorage)
	}
	return int(result.RowsAffected()), nil
}

// ReconcileGoalTotals пересчитывает кэш saved_amount из сумм взносов.
// Леджер обязан поддерживать равенство сам; задача — контрольная
// сверка, возвращающая число целей с расхождением.
func ReconcileGoalTotals(pool *pgxpool.Pool) (int, error) {
	result, err := pool.Exec(context.Background(), `
		UPDATE goals g
		SET saved_amount = s.total, updated_at = NOW()
		FROM (
			SELECT g2.id, COALESCE(SUM(c.amount), 0) AS total
			FROM goals g2
			LEFT JOIN contributions c ON c.goal_id = g2.id
			GROUP BY g2.id
		) s
		WHERE g.id = s.id AND g.saved_amount <> s.total`)
	if err != nil {
		return 0, fmt.Errorf("ошибка сверки кэша целей: %w", models.ErrStorage)
	}
	return int(result.RowsAffected()), nil
}
