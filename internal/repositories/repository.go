package repositories

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "calibration-tracker/pkg/errors"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgFKViolation     = "23503"
)

// mapPgError переводит ошибки драйвера в ошибки приложения; остальное оборачивается как есть.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewHttpError(http.StatusBadRequest, uniqueMessage(pgErr.ConstraintName), fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.Detail), nil)
		case pgCheckViolation:
			return apperrors.NewHttpError(http.StatusBadRequest, "Значение не входит в допустимый список", fmt.Errorf("%w: %s", apperrors.ErrInvalidEnum, pgErr.ConstraintName), nil)
		case pgFKViolation:
			return apperrors.NewHttpError(http.StatusBadRequest, "Ссылка на несуществующую запись", fmt.Errorf("%w: %s", apperrors.ErrBadRequest, pgErr.ConstraintName), nil)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func uniqueMessage(constraint string) string {
	switch constraint {
	case "equipments_serial_number_key":
		return "Оборудование с таким серийным номером уже существует"
	case "users_email_key":
		return "Пользователь с таким email уже существует"
	case "users_username_key":
		return "Пользователь с таким именем уже существует"
	}
	return "Запись с такими данными уже существует"
}
