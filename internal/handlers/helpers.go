package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// respondError переводит доменную ошибку в HTTP-статус.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	default:
		log.Printf("внутренняя ошибка: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("некорректный идентификатор %s: %w", name, models.ErrInvalidInput)
	}
	return id, nil
}

// parseDate принимает дату в формате 2006-01-02.
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректная дата %q: %w", value, models.ErrInvalidInput)
	}
	return date, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// parseListParams читает page/limit/sort/order из query-строки.
// Некорректные значения заменяются значениями по умолчанию.
func parseListParams(c *gin.Context) models.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return models.ListParams{
		Page:  page,
		Limit: limit,
		Sort:  c.DefaultQuery("sort", "id"),
		Order: c.DefaultQuery("order", "ASC"),
	}
}

func parseIDList(value string) []int {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseTransactionFilter(c *gin.Context) (models.TransactionFilter, error) {
	startDate, err := parseOptionalDate(c.Query("startDate"))
	if err != nil {
		return models.TransactionFilter{}, err
	}
	endDate, err := parseOptionalDate(c.Query("endDate"))
	if err != nil {
		return models.TransactionFilter{}, err
	}
	return models.TransactionFilter{
		UserIDs:     parseIDList(c.Query("userIds")),
		CategoryIDs: parseIDList(c.Query("categoryIds")),
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

func parseGoalFilter(c *gin.Context) (models.GoalFilter, error) {
	startDate, err := parseOptionalDate(c.Query("startDate"))
	if err != nil {
		return models.GoalFilter{}, err
	}
	endDate, err := parseOptionalDate(c.Query("endDate"))
	if err != nil {
		return models.GoalFilter{}, err
	}
	return models.GoalFilter{
		Status:    c.Query("status"),
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}
