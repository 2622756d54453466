package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	db "calibration-tracker/internal/infrastructure/bd"
	"calibration-tracker/internal/lifecycle"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/types"
)

const equipmentTable = "equipments"

var equipmentColumns = []string{
	"e.id", "e.name", "e.serial_number", "e.model_number", "e.manufacturer", "e.location", "e.status",
	"e.last_calibration_date", "e.next_calibration_date", "e.calibration_frequency_months",
	"e.calibration_sent_date", "e.calibration_lab", "e.calibration_return_date",
	"e.assigned_to", "e.documents", "e.created_at", "e.updated_at",
}

// json-имя поля -> колонка (фильтр + сортировка)
var equipmentMap = map[string]string{
	"id":                  "e.id",
	"name":                "e.name",
	"serialNumber":        "e.serial_number",
	"manufacturer":        "e.manufacturer",
	"location":            "e.location",
	"status":              "e.status",
	"assignedTo":          "e.assigned_to",
	"lastCalibrationDate": "e.last_calibration_date",
	"nextCalibrationDate": "e.next_calibration_date",
	"createdAt":           "e.created_at",
	"updatedAt":           "e.updated_at",
}

var equipmentSearchColumns = []string{"e.name", "e.serial_number", "e.model_number", "e.manufacturer", "e.location"}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	ListAll(ctx context.Context) ([]entities.Equipment, error)
	FindOverdueCandidates(ctx context.Context, now time.Time) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	FindBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *entities.Equipment) (*entities.Equipment, error)
	ApplyScheduleInTx(ctx context.Context, tx pgx.Tx, id uint64, update lifecycle.ScheduleUpdate) error
	AddDocument(ctx context.Context, id uint64, document entities.Document) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	psql    sq.StatementBuilderType
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
		logger:  logger,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.ModelNumber, &e.Manufacturer, &e.Location, &e.Status,
		&e.LastCalibrationDate, &e.NextCalibrationDate, &e.CalibrationFrequencyInMonths,
		&e.CalibrationSentDate, &e.CalibrationLab, &e.CalibrationReturnDate,
		&e.AssignedTo, &e.Documents, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err, "ошибка сканирования оборудования")
	}
	if e.Documents == nil {
		e.Documents = []entities.Document{}
	}
	return &e, nil
}

func (r *EquipmentRepository) selectBuilder() sq.SelectBuilder {
	return r.psql.Select(equipmentColumns...).From(equipmentTable + " AS e")
}

func (r *EquipmentRepository) queryList(ctx context.Context, builder sq.SelectBuilder) ([]entities.Equipment, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("SQL", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "ошибка получения оборудования")
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	// 1. COUNT
	countBuilder := r.psql.Select("COUNT(e.id)").From(equipmentTable + " AS e")
	countBuilder = db.ApplySearch(countBuilder, filter.Search, equipmentSearchColumns...)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, equipmentMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, mapPgError(err, "ошибка подсчёта оборудования")
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	// 2. SELECT
	builder := db.ApplySearch(r.selectBuilder(), filter.Search, equipmentSearchColumns...)
	if !db.HasSort(filter, equipmentMap) {
		builder = builder.OrderBy("e.created_at DESC")
	}
	builder = db.ApplyListParams(builder, filter, equipmentMap)

	list, err := r.queryList(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *EquipmentRepository) ListAll(ctx context.Context) ([]entities.Equipment, error) {
	return r.queryList(ctx, r.selectBuilder().OrderBy("e.id"))
}

// FindOverdueCandidates - next < now и статус из отслеживаемых (Active, Inactive).
func (r *EquipmentRepository) FindOverdueCandidates(ctx context.Context, now time.Time) ([]entities.Equipment, error) {
	tracked := []string{string(constants.EquipmentActive), string(constants.EquipmentInactive)}
	builder := r.selectBuilder().
		Where(sq.Lt{"e.next_calibration_date": now}).
		Where(sq.Eq{"e.status": tracked}).
		OrderBy("e.next_calibration_date ASC")
	return r.queryList(ctx, builder)
}

func (r *EquipmentRepository) findOne(ctx context.Context, querier Querier, where sq.Sqlizer, forUpdate bool) (*entities.Equipment, error) {
	builder := r.selectBuilder().Where(where)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(querier.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"e.id": id}, false)
}

// FindEquipmentInTx блокирует строку до конца транзакции.
func (r *EquipmentRepository) FindEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, tx, sq.Eq{"e.id": id}, true)
}

func (r *EquipmentRepository) FindBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"e.serial_number": serialNumber}, false)
}

func documentsOrEmpty(docs []entities.Document) []entities.Document {
	if docs == nil {
		return []entities.Document{}
	}
	return docs
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	query, args, err := r.psql.Insert(equipmentTable).
		Columns(
			"name", "serial_number", "model_number", "manufacturer", "location", "status",
			"last_calibration_date", "next_calibration_date", "calibration_frequency_months",
			"calibration_sent_date", "calibration_lab", "calibration_return_date",
			"assigned_to", "documents",
		).
		Values(
			e.Name, e.SerialNumber, e.ModelNumber, e.Manufacturer, e.Location, string(e.Status),
			e.LastCalibrationDate, e.NextCalibrationDate, e.CalibrationFrequencyInMonths,
			e.CalibrationSentDate, e.CalibrationLab, e.CalibrationReturnDate,
			e.AssignedTo, documentsOrEmpty(e.Documents),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, mapPgError(err, "ошибка создания оборудования")
	}
	return r.FindEquipment(ctx, id)
}

// UpdateEquipment перезаписывает все изменяемые поля; слияние с запросом делает сервис.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	query, args, err := r.psql.Update(equipmentTable).
		SetMap(map[string]interface{}{
			"name":                         e.Name,
			"serial_number":                e.SerialNumber,
			"model_number":                 e.ModelNumber,
			"manufacturer":                 e.Manufacturer,
			"location":                     e.Location,
			"status":                       string(e.Status),
			"last_calibration_date":        e.LastCalibrationDate,
			"next_calibration_date":        e.NextCalibrationDate,
			"calibration_frequency_months": e.CalibrationFrequencyInMonths,
			"calibration_sent_date":        e.CalibrationSentDate,
			"calibration_lab":              e.CalibrationLab,
			"calibration_return_date":      e.CalibrationReturnDate,
			"assigned_to":                  e.AssignedTo,
			"documents":                    documentsOrEmpty(e.Documents),
			"updated_at":                   sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "ошибка обновления оборудования")
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindEquipment(ctx, e.ID)
}

// ApplyScheduleInTx записывает ровно три поля, которые меняет калибровка.
func (r *EquipmentRepository) ApplyScheduleInTx(ctx context.Context, tx pgx.Tx, id uint64, update lifecycle.ScheduleUpdate) error {
	query, args, err := r.psql.Update(equipmentTable).
		Set("last_calibration_date", update.LastCalibrationDate).
		Set("next_calibration_date", update.NextCalibrationDate).
		Set("status", string(update.Status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err, "ошибка обновления графика калибровки")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddDocument дописывает документ в конец JSONB-массива одним UPDATE.
func (r *EquipmentRepository) AddDocument(ctx context.Context, id uint64, document entities.Document) (*entities.Equipment, error) {
	query := fmt.Sprintf(`UPDATE %s SET documents = documents || $1::jsonb, updated_at = NOW() WHERE id = $2`, equipmentTable)

	result, err := r.storage.Exec(ctx, query, []entities.Document{document}, id)
	if err != nil {
		return nil, mapPgError(err, "ошибка добавления документа")
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindEquipment(ctx, id)
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return mapPgError(err, "ошибка удаления оборудования")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
