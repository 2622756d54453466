package seeders

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"calibration-tracker/pkg/config"
	"calibration-tracker/pkg/constants"
	"calibration-tracker/pkg/utils"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, cfg *config.SeedConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("не заданы SEED_ADMIN_EMAIL или SEED_ADMIN_PASSWORD")
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, email, password, role)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT DO NOTHING`
	tag, err := db.Exec(ctx, query, cfg.AdminUsername, email, hashedPassword, string(constants.RoleAdmin))
	if err != nil {
		return fmt.Errorf("не удалось создать администратора %s: %w", email, err)
	}

	if tag.RowsAffected() == 0 {
		log.Printf("    - Пользователь %s уже существует. Пропускаем.", email)
		return nil
	}
	log.Printf("    - Создан администратор %s", email)
	return nil
}
