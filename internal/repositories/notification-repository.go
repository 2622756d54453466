package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
)

const notificationTable = "notifications"

const notificationReturning = "RETURNING id, type, message, equipment_id, read, created_at"

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entities.Notification) (*entities.Notification, error)
	ExistsUnreadOverdue(ctx context.Context, equipmentID uint64) (bool, error)
	GetNotifications(ctx context.Context) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id uint64) (*entities.Notification, error)
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	psql    sq.StatementBuilderType
}

func NewNotificationRepository(storage *pgxpool.Pool, logger *zap.Logger) NotificationRepositoryInterface {
	return &NotificationRepository{
		storage: storage,
		logger:  logger,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanNotification(row pgx.Row) (*entities.Notification, error) {
	var n entities.Notification
	if err := row.Scan(&n.ID, &n.Type, &n.Message, &n.EquipmentID, &n.Read, &n.CreatedAt); err != nil {
		return nil, mapPgError(err, "ошибка сканирования уведомления")
	}
	return &n, nil
}

// Create сохраняет уведомление; CreatedAt берётся из сущности, если задан.
func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) (*entities.Notification, error) {
	columns := []string{"type", "message", "equipment_id", "read"}
	values := []interface{}{string(n.Type), n.Message, n.EquipmentID, n.Read}
	if !n.CreatedAt.IsZero() {
		columns = append(columns, "created_at")
		values = append(values, n.CreatedAt)
	}

	query, args, err := r.psql.Insert(notificationTable).
		Columns(columns...).
		Values(values...).
		Suffix(notificationReturning).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanNotification(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	created.Equipment = n.Equipment
	return created, nil
}

func (r *NotificationRepository) ExistsUnreadOverdue(ctx context.Context, equipmentID uint64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE equipment_id = $1 AND type = $2 AND read = FALSE)`, notificationTable)

	var exists bool
	if err := r.storage.QueryRow(ctx, query, equipmentID, string(constants.NotificationOverdue)).Scan(&exists); err != nil {
		return false, mapPgError(err, "ошибка проверки непрочитанных уведомлений")
	}
	return exists, nil
}

// GetNotifications - все уведомления с именем и серийным номером оборудования, новые сверху.
func (r *NotificationRepository) GetNotifications(ctx context.Context) ([]entities.Notification, error) {
	query, args, err := r.psql.
		Select("n.id", "n.type", "n.message", "n.equipment_id", "n.read", "n.created_at", "e.name", "e.serial_number").
		From(notificationTable+" AS n").
		LeftJoin("equipments e ON e.id = n.equipment_id").
		OrderBy("n.created_at DESC", "n.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "ошибка получения уведомлений")
	}
	defer rows.Close()

	list := make([]entities.Notification, 0)
	for rows.Next() {
		var n entities.Notification
		var name, serial *string
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.EquipmentID, &n.Read, &n.CreatedAt, &name, &serial); err != nil {
			return nil, mapPgError(err, "ошибка сканирования уведомления")
		}
		if name != nil {
			n.Equipment = &entities.EquipmentRef{ID: n.EquipmentID, Name: *name}
			if serial != nil {
				n.Equipment.SerialNumber = *serial
			}
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint64) (*entities.Notification, error) {
	query := fmt.Sprintf(`UPDATE %s SET read = TRUE WHERE id = $1 %s`, notificationTable, notificationReturning)
	return scanNotification(r.storage.QueryRow(ctx, query, id))
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET read = TRUE WHERE read = FALSE`, notificationTable)

	result, err := r.storage.Exec(ctx, query)
	if err != nil {
		return 0, mapPgError(err, "ошибка отметки уведомлений")
	}
	return result.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, notificationTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err, "ошибка удаления уведомления")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
