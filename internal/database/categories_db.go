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

func CreateCategory(pool *pgxpool.Pool, category *models.Category) error {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query, category.Name).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении категории: %w", models.ErrStorage)
	}
	return nil
}

func GetCategoryByID(pool *pgxpool.Pool, id int) (*models.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`

	var category models.Category
	err := pool.QueryRow(context.Background(), query, id).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("категория с ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", models.ErrStorage)
	}
	return &category, nil
}

var categorySortColumns = map[string]bool{"id": true, "name": true}

func GetCategories(pool *pgxpool.Pool, params models.ListParams) ([]models.Category, error) {
	sort := params.Sort
	if !categorySortColumns[sort] {
		sort = "id"
	}
	order := "ASC"
	if strings.EqualFold(params.Order, "DESC") {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT id, name, created_at FROM categories ORDER BY %s %s LIMIT $1 OFFSET $2`, sort, order)
	rows, err := pool.Query(context.Background(), query, params.LimitOrDefault(), params.Offset())
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", models.ErrStorage)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании категории: %w", models.ErrStorage)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func GetCategoriesCount(pool *pgxpool.Pool) (int, error) {
	var total int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM categories`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете категорий: %w", models.ErrStorage)
	}
	return total, nil
}

func UpdateCategory(pool *pgxpool.Pool, category *models.Category) error {
	query := `UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2`
	result, err := pool.Exec(context.Background(), query, category.Name, category.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления категории: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("категория с ID %d: %w", category.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteCategory удаляет категорию. Категория, на которую ссылаются
// транзакции, не удаляется — возвращается models.ErrConflict.
func DeleteCategory(pool *pgxpool.Pool, id int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("категория используется транзакциями: %w", models.ErrConflict)
		}
		return fmt.Errorf("ошибка удаления категории: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("категория с ID %d: %w", id, models.ErrNotFound)
	}
	return nil
}
