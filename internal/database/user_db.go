package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// RegisterUser регистрирует нового пользователя с хешированием пароля.
// Дубликат username или email дает models.ErrConflict.
func RegisterUser(pool *pgxpool.Pool, req models.RegisterRequest) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	}
	query := `
		INSERT INTO users (name, username, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err = pool.QueryRow(context.Background(), query,
		req.Name, req.Username, req.Email, string(hashedPassword)).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("пользователь с таким username или email уже существует: %w", models.ErrConflict)
		}
		return nil, fmt.Errorf("ошибка при добавлении пользователя: %w", models.ErrStorage)
	}
	return user, nil
}

// AuthenticateUser проверяет пару username/пароль и возвращает пользователя.
func AuthenticateUser(pool *pgxpool.Pool, username, password string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, username, email, password, created_at FROM users WHERE username = $1`
	err := pool.QueryRow(context.Background(), query, username).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь %s: %w", username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", models.ErrStorage)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("неверный пароль: %w", models.ErrInvalidInput)
	}

	user.Password = ""
	return &user, nil
}

func GetUserByID(pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `SELECT id, name, username, email, created_at FROM users WHERE id = $1`

	var user models.User
	err := pool.QueryRow(context.Background(), query, id).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка получения пользователя по id: %w", models.ErrStorage)
	}
	return &user, nil
}

var userSortColumns = map[string]bool{
	"id": true, "name": true, "username": true, "email": true,
}

// GetUsers возвращает страницу пользователей с фильтрами по подстроке.
// Неизвестная колонка сортировки молча заменяется на id.
func GetUsers(pool *pgxpool.Pool, filter models.UserFilter, params models.ListParams) ([]models.User, error) {
	where, args := buildUserFilter(filter)

	sort := params.Sort
	if !userSortColumns[sort] {
		sort = "id"
	}
	order := "ASC"
	if strings.EqualFold(params.Order, "DESC") {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT id, name, username, email, created_at FROM users %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, sort, order, len(args)+1, len(args)+2)
	args = append(args, params.LimitOrDefault(), params.Offset())

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", models.ErrStorage)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании пользователя: %w", models.ErrStorage)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func GetUsersCount(pool *pgxpool.Pool, filter models.UserFilter) (int, error) {
	where, args := buildUserFilter(filter)
	var total int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM users `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете пользователей: %w", models.ErrStorage)
	}
	return total, nil
}

func buildUserFilter(filter models.UserFilter) (string, []any) {
	var conditions []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Username != "" {
		args = append(args, "%"+filter.Username+"%")
		conditions = append(conditions, fmt.Sprintf("username ILIKE $%d", len(args)))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		conditions = append(conditions, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// UpdateUser обновляет профиль частично: пустые поля сохраняют текущие
// значения, пустой пароль оставляет старый хеш.
func UpdateUser(pool *pgxpool.Pool, id int, req models.UpdateUserRequest) error {
	password := ""
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("ошибка хеширования пароля: %w", err)
		}
		password = string(hashedPassword)
	}

	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
			username = COALESCE(NULLIF($2, ''), username),
			email = COALESCE(NULLIF($3, ''), email),
			password = COALESCE(NULLIF($4, ''), password),
			updated_at = NOW()
		WHERE id = $5`
	result, err := pool.Exec(context.Background(), query, req.Name, req.Username, req.Email, password, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username или email уже заняты: %w", models.ErrConflict)
		}
		return fmt.Errorf("ошибка обновления пользователя: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("пользователь с ID %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeleteUser удаляет пользователя; его транзакции удаляются каскадом.
func DeleteUser(pool *pgxpool.Pool, id int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", models.ErrStorage)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("пользователь с ID %d: %w", id, models.ErrNotFound)
	}
	return nil
}
