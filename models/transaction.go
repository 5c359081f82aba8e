package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	ID         int             `json:"id" db:"id"`
	UserID     int             `json:"user_id" db:"user_id"`
	CategoryID int             `json:"category_id" db:"category_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Type       string          `json:"type" db:"type"`
	Date       time.Time       `json:"date" db:"date"`
	Note       string          `json:"note" db:"note"`
}

type TransactionRequest struct {
	UserID     int             `json:"user_id" binding:"required"`
	CategoryID int             `json:"category_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=income expense"`
	Date       string          `json:"date" binding:"required"`
	Note       string          `json:"note"`
}

// TransactionFilter — фильтры выборки транзакций для списков и отчетов.
type TransactionFilter struct {
	UserIDs     []int
	CategoryIDs []int
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListParams — пагинация и сортировка. Неизвестная колонка сортировки
// заменяется на колонку по умолчанию, а не отклоняется.
type ListParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

func (p ListParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.LimitOrDefault()
}

func (p ListParams) LimitOrDefault() int {
	if p.Limit < 1 {
		return 10
	}
	return p.Limit
}
