package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"calibration-tracker/internal/entities"
	db "calibration-tracker/internal/infrastructure/bd"
	"calibration-tracker/pkg/types"
)

const calibrationTable = "calibrations"

var calibrationColumns = []string{
	"c.id", "c.equipment_id", "c.date", "c.performed_by", "c.certificate_number",
	"c.status", "c.notes", "c.next_calibration_date", "c.created_at",
}

var calibrationMap = map[string]string{
	"equipmentId":  "c.equipment_id",
	"status":       "c.status",
	"performedBy":  "c.performed_by",
	"date":         "c.date",
	"createdAt":    "c.created_at",
	"serialNumber": "e.serial_number",
}

type CalibrationRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, calibration *entities.Calibration) (*entities.Calibration, error)
	GetCalibrations(ctx context.Context, filter types.Filter) ([]entities.Calibration, uint64, error)
	FindByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Calibration, error)
}

type CalibrationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	psql    sq.StatementBuilderType
}

func NewCalibrationRepository(storage *pgxpool.Pool, logger *zap.Logger) CalibrationRepositoryInterface {
	return &CalibrationRepository{
		storage: storage,
		logger:  logger,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanCalibration(row pgx.Row, withEquipment bool) (*entities.Calibration, error) {
	var c entities.Calibration
	dest := []interface{}{
		&c.ID, &c.EquipmentID, &c.Date, &c.PerformedBy, &c.CertificateNumber,
		&c.Status, &c.Notes, &c.NextCalibrationDate, &c.CreatedAt,
	}
	var ref entities.EquipmentRef
	if withEquipment {
		dest = append(dest, &ref.Name, &ref.SerialNumber)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, mapPgError(err, "ошибка сканирования калибровки")
	}
	if withEquipment {
		ref.ID = c.EquipmentID
		c.Equipment = &ref
	}
	return &c, nil
}

// CreateInTx добавляет запись журнала. Вызывается только внутри транзакции записи калибровки.
func (r *CalibrationRepository) CreateInTx(ctx context.Context, tx pgx.Tx, c *entities.Calibration) (*entities.Calibration, error) {
	query, args, err := r.psql.Insert(calibrationTable).
		Columns("equipment_id", "date", "performed_by", "certificate_number", "status", "notes", "next_calibration_date").
		Values(c.EquipmentID, c.Date, c.PerformedBy, c.CertificateNumber, string(c.Status), c.Notes, c.NextCalibrationDate).
		Suffix("RETURNING id, equipment_id, date, performed_by, certificate_number, status, notes, next_calibration_date, created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCalibration(tx.QueryRow(ctx, query, args...), false)
}

func (r *CalibrationRepository) query(ctx context.Context, builder sq.SelectBuilder, withEquipment bool) ([]entities.Calibration, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("SQL", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "ошибка получения журнала калибровок")
	}
	defer rows.Close()

	list := make([]entities.Calibration, 0)
	for rows.Next() {
		c, err := scanCalibration(rows, withEquipment)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// GetCalibrations - общий журнал с именем и серийным номером оборудования, по умолчанию новые сверху.
func (r *CalibrationRepository) GetCalibrations(ctx context.Context, filter types.Filter) ([]entities.Calibration, uint64, error) {
	from := calibrationTable + " AS c"
	join := "equipments e ON e.id = c.equipment_id"

	countBuilder := r.psql.Select("COUNT(c.id)").From(from).Join(join)
	countBuilder = db.ApplySearch(countBuilder, filter.Search, "e.name", "e.serial_number", "c.performed_by", "c.certificate_number")
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, calibrationMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, mapPgError(err, "ошибка подсчёта калибровок")
	}
	if total == 0 {
		return []entities.Calibration{}, 0, nil
	}

	builder := r.psql.Select(append(calibrationColumns, "e.name", "e.serial_number")...).From(from).Join(join)
	builder = db.ApplySearch(builder, filter.Search, "e.name", "e.serial_number", "c.performed_by", "c.certificate_number")
	if !db.HasSort(filter, calibrationMap) {
		builder = builder.OrderBy("c.date DESC", "c.id DESC")
	}
	builder = db.ApplyListParams(builder, filter, calibrationMap)

	list, err := r.query(ctx, builder, true)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindByEquipment - история одного прибора, новые сверху.
func (r *CalibrationRepository) FindByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Calibration, error) {
	builder := r.psql.Select(calibrationColumns...).
		From(calibrationTable+" AS c").
		Where(sq.Eq{"c.equipment_id": equipmentID}).
		OrderBy("c.date DESC", "c.id DESC")
	return r.query(ctx, builder, false)
}
