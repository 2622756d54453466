package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipment(ctx context.Context, db *pgxpool.Pool, items []equipmentSeed) error {
	now := time.Now().UTC()

	query := `INSERT INTO equipments
                (name, serial_number, model_number, manufacturer, location, status,
                 calibration_frequency_months, next_calibration_date)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              ON CONFLICT (serial_number) DO NOTHING`

	created := 0
	for _, item := range items {
		var next *time.Time
		if item.NextInDays != nil {
			d := now.AddDate(0, 0, *item.NextInDays)
			next = &d
		}

		tag, err := db.Exec(ctx, query,
			item.Name, item.SerialNumber, item.Model, item.Manufacturer, item.Location,
			string(item.Status), item.Frequency, next,
		)
		if err != nil {
			return fmt.Errorf("не удалось вставить оборудование %s: %w", item.SerialNumber, err)
		}
		created += int(tag.RowsAffected())
	}

	log.Printf("    - Добавлено %d из %d единиц оборудования", created, len(items))
	return nil
}
