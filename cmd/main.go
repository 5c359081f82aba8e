package main

import (
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/routes"
	"github.com/valeriaulyamaeva/finance-tracker/utils"
)

// ScheduleGoalMaintenance запускает регламент по целям: завершение
// достигнутых и контрольную сверку кэша saved_amount с леджером.
func ScheduleGoalMaintenance(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		completed, err := database.CompleteReachedGoals(pool)
		if err != nil {
			log.Printf("Ошибка завершения достигнутых целей: %v", err)
		} else if completed > 0 {
			log.Printf("Целей переведено в completed: %d", completed)
		}

		fixed, err := database.ReconcileGoalTotals(pool)
		if err != nil {
			log.Printf("Ошибка сверки кэша целей: %v", err)
		} else if fixed > 0 {
			// Леджер обязан не допускать расхождений, поэтому любое
			// исправление здесь — повод разбираться
			log.Printf("ВНИМАНИЕ: исправлено расхождений кэша целей: %d", fixed)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи обслуживания целей: %v", err)
	}
	c.Start()
}

func main() {
	seed := flag.Bool("seed", false, "наполнить базу тестовыми данными и выйти")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не загружен: %v", err)
	}

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("Ошибка миграции схемы: %v", err)
	}

	if *seed {
		userIDs := utils.GenerateTestUsers(pool, 10)
		categoryIDs := utils.GenerateTestCategories(pool, 8)
		utils.GenerateTestTransactions(pool, userIDs, categoryIDs, 200)
		utils.GenerateTestGoals(pool, 5, 12)
		log.Println("Тестовые данные успешно сгенерированы")
		return
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Не задан JWT_SECRET")
	}

	ScheduleGoalMaintenance(pool)

	r := routes.SetupRouter(pool, jwtSecret)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Сервер запущен на %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
