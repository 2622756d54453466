package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/utils"
)

// idParam разбирает числовой параметр пути; ошибка уже готова для ErrorResponse.
func idParam(ctx echo.Context, name string) (uint64, error) {
	raw := ctx.Param(name)
	id, err := utils.ParseIDParam(raw)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			err,
			map[string]interface{}{"param": name, "value": raw},
		)
	}
	return id, nil
}

func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil)
	}
	return ctx.Validate(payload)
}
