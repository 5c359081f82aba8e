package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func TestCreateAndGetGoal(t *testing.T) {
	pool := testPool(t)

	goal := createTestGoal(t, pool, 1500)
	if goal.ID == 0 {
		t.Fatalf("цель создана без ID")
	}
	if goal.Status != models.GoalActive {
		t.Errorf("статус по умолчанию = %q, хотели active", goal.Status)
	}

	stored, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if stored.Name != goal.Name || !stored.GoalAmount.Equal(goal.GoalAmount) {
		t.Errorf("данные цели не совпадают: получили %+v, хотели %+v", stored, goal)
	}
	if !stored.SavedAmount.IsZero() {
		t.Errorf("новая цель с ненулевым кэшем: %s", stored.SavedAmount)
	}
}

func TestCreateGoalWithInitialContribution(t *testing.T) {
	pool := testPool(t)

	goal := &models.Goal{
		GoalAmount: decimal.NewFromInt(1000),
		Name:       fmt.Sprintf("тестовая цель %d", time.Now().UnixNano()),
		StartDate:  time.Now().AddDate(0, 0, -10),
		EndDate:    time.Now().AddDate(0, 0, 60),
	}
	if err := database.CreateGoalWithInitialContribution(pool, goal, decimal.NewFromInt(200)); err != nil {
		t.Fatalf("ошибка создания цели со стартовым взносом: %v", err)
	}
	t.Cleanup(func() { _ = database.DeleteGoal(pool, goal.ID) })

	if !goal.SavedAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("saved_amount в ответе = %s, хотели 200", goal.SavedAmount)
	}
	if saved := savedAmount(t, pool, goal.ID); !saved.Equal(decimal.NewFromInt(200)) {
		t.Errorf("saved_amount = %s, хотели 200", saved)
	}
	contributions, err := database.GetContributionsByGoal(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения взносов: %v", err)
	}
	if len(contributions) != 1 || !contributions[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("стартовый взнос не попал в леджер: %+v", contributions)
	}
	assertLedgerInvariant(t, pool, goal.ID)
}

func TestCreateGoalWithInvalidInitialContribution(t *testing.T) {
	pool := testPool(t)

	goal := &models.Goal{
		GoalAmount: decimal.NewFromInt(1000),
		Name:       fmt.Sprintf("тестовая цель %d", time.Now().UnixNano()),
		StartDate:  time.Now(),
		EndDate:    time.Now().AddDate(0, 0, 60),
	}
	err := database.CreateGoalWithInitialContribution(pool, goal, decimal.Zero)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("нулевой стартовый взнос: получили %v, хотели ErrInvalidInput", err)
	}
	if goal.ID != 0 {
		t.Errorf("цель создана несмотря на отвергнутый стартовый взнос: id %d", goal.ID)
	}
}

func TestUpdateGoalKeepsSavedAmount(t *testing.T) {
	pool := testPool(t)
	goal := createTestGoal(t, pool, 1000)
	addTestContribution(t, pool, goal.ID, 200)

	goal.Name = "обновленная цель"
	goal.GoalAmount = decimal.NewFromInt(2000)
	// Попытка подменить кэш мимо леджера игнорируется
	goal.SavedAmount = decimal.NewFromInt(999)
	if err := database.UpdateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка обновления цели: %v", err)
	}

	stored, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if stored.Name != "обновленная цель" || !stored.GoalAmount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("обновление не применилось: %+v", stored)
	}
	if !stored.SavedAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("saved_amount = %s, хотели 200", stored.SavedAmount)
	}
	assertLedgerInvariant(t, pool, goal.ID)
}

func TestDeleteGoalCascadesContributions(t *testing.T) {
	pool := testPool(t)
	goal := createTestGoal(t, pool, 1000)
	contribution := addTestContribution(t, pool, goal.ID, 50)

	if err := database.DeleteGoal(pool, goal.ID); err != nil {
		t.Fatalf("ошибка удаления цели: %v", err)
	}

	if _, err := database.GetGoalByID(pool, goal.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("цель существует после удаления: %v", err)
	}
	if _, err := database.UpdateContribution(pool, contribution.ID, models.ContributionUpdate{}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("взнос пережил удаление цели: %v", err)
	}
}

func TestGetGoalsStatusFilter(t *testing.T) {
	pool := testPool(t)
	goal := createTestGoal(t, pool, 1000)
	goal.Status = models.GoalCancelled
	if err := database.UpdateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка обновления цели: %v", err)
	}

	goals, err := database.GetGoals(pool, models.GoalFilter{Status: models.GoalCancelled}, models.ListParams{Limit: 1000})
	if err != nil {
		t.Fatalf("ошибка получения целей: %v", err)
	}
	found := false
	for _, g := range goals {
		if g.Status != models.GoalCancelled {
			t.Errorf("фильтр по статусу пропустил цель %+v", g)
		}
		if g.ID == goal.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("отмененная цель не попала в выборку")
	}
}

func TestGoalStatusCheckConstraint(t *testing.T) {
	pool := testPool(t)
	goal := createTestGoal(t, pool, 1000)

	goal.Status = "paused"
	err := database.UpdateGoal(pool, goal)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("недопустимый статус: получили %v, хотели ErrInvalidInput", err)
	}
}

func TestCompleteReachedGoals(t *testing.T) {
	pool := testPool(t)
	reached := createTestGoal(t, pool, 100)
	addTestContribution(t, pool, reached.ID, 100)
	pending := createTestGoal(t, pool, 100)
	addTestContribution(t, pool, pending.ID, 60)

	if _, err := database.CompleteReachedGoals(pool); err != nil {
		t.Fatalf("ошибка завершения целей: %v", err)
	}

	stored, err := database.GetGoalByID(pool, reached.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if stored.Status != models.GoalCompleted {
		t.Errorf("достигнутая цель в статусе %q, хотели completed", stored.Status)
	}

	stored, err = database.GetGoalByID(pool, pending.ID)
	if err != nil {
		t.Fatalf("ошибка получения цели: %v", err)
	}
	if stored.Status != models.GoalActive {
		t.Errorf("недостигнутая цель в статусе %q, хотели active", stored.Status)
	}
}

func TestReconcileGoalTotals(t *testing.T) {
	pool := testPool(t)
	goal := createTestGoal(t, pool, 1000)
	addTestContribution(t, pool, goal.ID, 100)

	// Ломаем кэш напрямую, минуя леджер
	if _, err := pool.Exec(context.Background(),
		`UPDATE goals SET saved_amount = 777 WHERE id = $1`, goal.ID); err != nil {
		t.Fatalf("не удалось испортить кэш: %v", err)
	}

	fixed, err := database.ReconcileGoalTotals(pool)
	if err != nil {
		t.Fatalf("ошибка сверки: %v", err)
	}
	if fixed < 1 {
		t.Errorf("сверка не заметила расхождение")
	}

	if saved := savedAmount(t, pool, goal.ID); !saved.Equal(decimal.NewFromInt(100)) {
		t.Errorf("saved_amount после сверки = %s, хотели 100", saved)
	}
	assertLedgerInvariant(t, pool, goal.ID)
}
