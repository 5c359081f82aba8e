package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalCancelled = "cancelled"
)

type Goal struct {
	ID          int             `json:"id" db:"id"`
	GoalAmount  decimal.Decimal `json:"goal_amount" db:"goal_amount"`
	SavedAmount decimal.Decimal `json:"saved_amount" db:"saved_amount"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Status      string          `json:"status" db:"status"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

func (g *Goal) RemainingAmount() decimal.Decimal {
	return g.GoalAmount.Sub(g.SavedAmount)
}

type GoalRequest struct {
	GoalAmount  decimal.Decimal `json:"goal_amount" binding:"required"`
	SavedAmount decimal.Decimal `json:"saved_amount"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date" binding:"required"`
}

// GoalFilter — фильтры выборки целей.
type GoalFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}
