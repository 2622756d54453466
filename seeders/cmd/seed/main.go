package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"calibration-tracker/pkg/config"
	"calibration-tracker/pkg/database/postgresql"
	"calibration-tracker/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Создать администратора из SEED_ADMIN_*")
	runEquipment := flag.Bool("equipment", false, "Наполнить реестр демонстрационным оборудованием")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -admin -equipment)")

	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, zap.NewNop())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, zap.NewNop()); err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runAdmin {
		seeders.SeedAdmin(ctx, dbPool, &cfg.Seed)
		log.Println("======================================================")
	}

	if *runAll || *runEquipment {
		seeders.SeedEquipment(ctx, dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
