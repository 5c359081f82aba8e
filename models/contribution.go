package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution — один взнос в копилку цели. Сумма всегда положительная,
// кэш цели saved_amount равен сумме её взносов.
type Contribution struct {
	ID     int             `json:"id" db:"id"`
	GoalID int             `json:"goal_id" db:"goal_id"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
	Date   time.Time       `json:"date" db:"date"`
}

type ContributionRequest struct {
	GoalID int             `json:"goal_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   string          `json:"date" binding:"required"`
}

// ContributionUpdate — частичное обновление взноса: nil означает
// «поле не менять».
type ContributionUpdate struct {
	GoalID *int
	Amount *decimal.Decimal
	Date   *time.Time
}
