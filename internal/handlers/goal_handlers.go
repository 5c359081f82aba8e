package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// CreateGoal создает цель. Ненулевой стартовый взнос проводится записью
// леджера в той же транзакции, чтобы кэш совпадал с суммой взносов.
func CreateGoal(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат цели"})
			return
		}

		if !req.GoalAmount.IsPositive() {
			respondError(c, fmt.Errorf("целевая сумма должна быть положительной: %w", models.ErrInvalidInput))
			return
		}
		if req.SavedAmount.IsNegative() {
			respondError(c, fmt.Errorf("стартовая сумма не может быть отрицательной: %w", models.ErrInvalidInput))
			return
		}

		endDate, err := parseDate(req.EndDate)
		if err != nil {
			respondError(c, err)
			return
		}

		startDate := time.Now().Truncate(24 * time.Hour)
		if req.StartDate != "" {
			startDate, err = parseDate(req.StartDate)
			if err != nil {
				respondError(c, err)
				return
			}
		}

		goal := &models.Goal{
			GoalAmount:  req.GoalAmount,
			SavedAmount: decimal.Zero,
			Name:        req.Name,
			Description: req.Description,
			Status:      req.Status,
			StartDate:   startDate,
			EndDate:     endDate,
		}
		if req.SavedAmount.IsPositive() {
			err = database.CreateGoalWithInitialContribution(pool, goal, req.SavedAmount)
		} else {
			err = database.CreateGoal(pool, goal)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, goal)
	}
}

func GetGoal(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		goal, err := database.GetGoalByID(pool, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

func ListGoals(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseGoalFilter(c)
		if err != nil {
			respondError(c, err)
			return
		}
		params := parseListParams(c)

		goals, err := database.GetGoals(pool, filter, params)
		if err != nil {
			respondError(c, err)
			return
		}
		total, err := database.GetGoalsCount(pool, filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"goals": goals, "total": total})
	}
}

// UpdateGoal меняет описание цели; кэш saved_amount не трогает.
func UpdateGoal(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		var req models.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат цели"})
			return
		}
		if !req.GoalAmount.IsPositive() {
			respondError(c, fmt.Errorf("целевая сумма должна быть положительной: %w", models.ErrInvalidInput))
			return
		}

		current, err := database.GetGoalByID(pool, id)
		if err != nil {
			respondError(c, err)
			return
		}

		goal := &models.Goal{
			ID:          id,
			GoalAmount:  req.GoalAmount,
			Name:        req.Name,
			Description: req.Description,
			Status:      current.Status,
			StartDate:   current.StartDate,
			EndDate:     current.EndDate,
		}
		if req.Status != "" {
			goal.Status = req.Status
		}
		if req.StartDate != "" {
			goal.StartDate, err = parseDate(req.StartDate)
			if err != nil {
				respondError(c, err)
				return
			}
		}
		if req.EndDate != "" {
			goal.EndDate, err = parseDate(req.EndDate)
			if err != nil {
				respondError(c, err)
				return
			}
		}

		if err := database.UpdateGoal(pool, goal); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно обновлена"})
	}
}

// DeleteGoal удаляет цель; её взносы удаляются каскадом.
func DeleteGoal(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		if err := database.DeleteGoal(pool, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно удалена"})
	}
}

// AddContribution добавляет взнос к цели через леджер.
func AddContribution(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ContributionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат взноса"})
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			respondError(c, err)
			return
		}

		contribution := &models.Contribution{
			GoalID: req.GoalID,
			Amount: req.Amount,
			Date:   date,
		}
		if err := database.AddContribution(pool, contribution); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, contribution)
	}
}

// UpdateContributionRequest — частичное обновление взноса.
type UpdateContributionRequest struct {
	GoalID *int             `json:"goal_id"`
	Amount *decimal.Decimal `json:"amount"`
	Date   *string          `json:"date"`
}

func UpdateContribution(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		var req UpdateContributionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат взноса"})
			return
		}

		update := models.ContributionUpdate{
			GoalID: req.GoalID,
			Amount: req.Amount,
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				respondError(c, err)
				return
			}
			update.Date = &date
		}

		contribution, err := database.UpdateContribution(pool, id, update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, contribution)
	}
}

func DeleteContribution(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		if err := database.DeleteContribution(pool, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Взнос успешно удален"})
	}
}

// ListContributions возвращает историю взносов цели.
func ListContributions(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		goalID, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}

		contributions, err := database.GetContributionsByGoal(pool, goalID)
		if err != nil {
			respondError(c, err)
			return
		}
		if contributions == nil {
			contributions = []models.Contribution{}
		}
		c.JSON(http.StatusOK, contributions)
	}
}
