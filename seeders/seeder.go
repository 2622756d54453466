package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-tracker/pkg/config"
)

// SeedAdmin создаёт первого администратора, если его ещё нет.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.SeedConfig) {
	log.Println("▶️  Создание администратора...")
	if err := seedAdminUser(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор готов!")
}

// SeedEquipment наполняет реестр демонстрационным оборудованием.
func SeedEquipment(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  Наполнение демонстрационного оборудования...")
	if err := seedEquipment(ctx, db, demoEquipment); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	log.Println("✅ Наполнение оборудования завершено!")
}
